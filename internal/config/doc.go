// Package config provides configuration structures and utilities for giteki.
// It defines where the equipment list is fetched from, which categories are
// downloaded by default, and where downloads and the database live.
package config

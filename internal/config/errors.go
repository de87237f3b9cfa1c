package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrEmptyIndexURL is returned when no list page URL is configured.
	ErrEmptyIndexURL = errors.New("invalid index URL: must not be empty")

	// ErrEmptyBaseURL is returned when no base URL is configured.
	// Links on the list page are relative and cannot be fetched without it.
	ErrEmptyBaseURL = errors.New("invalid base URL: must not be empty")

	// ErrEmptyDownloadDir is returned when --dst is set to an empty string.
	ErrEmptyDownloadDir = errors.New("invalid destination directory: must not be empty")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")
)

// Package model defines the data structures shared by giteki's commands.
//
// This package contains the following main types:
//   - DownloadResult: One spreadsheet saved by the download command
//   - Equipment: One certified radio equipment record imported by the load command
//
// The models live in their own package so that the crawler, report, importer,
// database and server packages can exchange them without import cycles.
package model

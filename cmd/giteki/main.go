// Package main provides the entry point for the giteki CLI.
//
// giteki downloads the list of radio equipment certified under the Japanese
// Radio Act, converts the published spreadsheets to JSON, and serves them
// from a local database.
//
// Usage:
//
//	giteki download [--all] [--update]
//	giteki read --src downloads/2015_01.xls
//	giteki load && giteki serve
//
// See --help for all available options.
package main

// main is the entry point for giteki.
func main() {
	Execute()
}

package config

import "time"

// File represents the structure of the .giteki configuration file.
// Every field is optional.
type File struct {
	// BaseURL overrides DefaultBaseURL.
	BaseURL string `yaml:"baseURL,omitempty"`

	// IndexURL overrides DefaultIndexURL.
	IndexURL string `yaml:"indexURL,omitempty"`

	// DownloadDir overrides DefaultDownloadDir.
	DownloadDir string `yaml:"downloadDir,omitempty"`

	// UserAgent overrides DefaultUserAgent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Encoding forces the page encoding, e.g. "shift_jis".
	Encoding string `yaml:"encoding,omitempty"`

	// Timeout is the HTTP client timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// DBPath overrides the database location.
	DBPath string `yaml:"dbPath,omitempty"`

	// DownloadTargets adds to or overrides the default category map.
	DownloadTargets map[string]bool `yaml:"downloadTargets,omitempty"`
}

package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "giteki"

	// DefaultBaseURL is prepended to the relative links found on the list page.
	DefaultBaseURL = "http://www.tele.soumu.go.jp"

	// DefaultIndexURL is the page listing the certified equipment spreadsheets.
	DefaultIndexURL = "http://www.tele.soumu.go.jp/j/sys/equ/tech/tech/index.htm"

	// DefaultDownloadDir is the destination directory for spreadsheets,
	// relative to the working directory.
	DefaultDownloadDir = "downloads"

	// DefaultDBFile is the database file name inside the XDG data directory.
	DefaultDBFile = "giteki.db"

	// DefaultBind is the listen address of the serve command.
	DefaultBind = ":8000"

	// DefaultTimeout of zero disables the HTTP client timeout; a stalled
	// response blocks until the process is terminated.
	DefaultTimeout time.Duration = 0

	// DefaultUserAgent identifies giteki in HTTP requests.
	DefaultUserAgent = "giteki/1.0 (+https://github.com/nao1215/giteki)"
)

// Category labels of the top-level (h2) groups on the list page.
const (
	// CategoryDomestic lists equipment certified by Japanese bodies.
	CategoryDomestic = "1.国内"

	// CategoryForeign lists equipment certified under mutual recognition agreements.
	CategoryForeign = "2.外国(相互承認)"
)

// DefaultDownloadTargets returns the categories downloaded without --all.
// A category missing from the map is not downloaded.
func DefaultDownloadTargets() map[string]bool {
	return map[string]bool{
		CategoryDomestic: true,
		CategoryForeign:  false,
	}
}

// Config holds all configuration options for one giteki run.
// It is populated from the config file and CLI flags and passed to
// components explicitly.
type Config struct {
	// BaseURL is joined with relative hrefs to build absolute URLs.
	BaseURL string

	// IndexURL is the page the crawl starts from.
	IndexURL string

	// DownloadDir is where spreadsheets and the summary file are written.
	DownloadDir string

	// DownloadAll follows links to past-list index pages and ignores
	// DownloadTargets.
	DownloadAll bool

	// Update overwrites spreadsheets that already exist in DownloadDir.
	Update bool

	// DownloadTargets maps top-level category labels to whether they are
	// downloaded when DownloadAll is false.
	DownloadTargets map[string]bool

	// Timeout is the HTTP client timeout. Zero means no timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Encoding forces the character encoding of fetched pages
	// (an HTML encoding label such as "shift_jis"). Empty means detect it
	// from the Content-Type header and the document itself.
	Encoding string

	// DBPath is the SQLite database file used by load and serve.
	DBPath string

	// Bind is the listen address of the serve command.
	Bind string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path given with --config, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		IndexURL:        DefaultIndexURL,
		DownloadDir:     DefaultDownloadDir,
		DownloadTargets: DefaultDownloadTargets(),
		Timeout:         DefaultTimeout,
		UserAgent:       DefaultUserAgent,
		DBPath:          filepath.Join(XDGDataDir(), DefaultDBFile),
		Bind:            DefaultBind,
	}
}

// Apply overlays the values set in a config file onto c.
// Zero values in f leave c unchanged; DownloadTargets entries are merged.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.IndexURL != "" {
		c.IndexURL = f.IndexURL
	}
	if f.DownloadDir != "" {
		c.DownloadDir = f.DownloadDir
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Encoding != "" {
		c.Encoding = f.Encoding
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.DBPath != "" {
		c.DBPath = f.DBPath
	}
	if len(f.DownloadTargets) > 0 {
		if c.DownloadTargets == nil {
			c.DownloadTargets = make(map[string]bool)
		}
		for k, v := range f.DownloadTargets {
			c.DownloadTargets[k] = v
		}
	}
}

// XDGDataDir returns the XDG data directory for giteki.
// On Linux: ~/.local/share/giteki
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for giteki.
// On Linux: ~/.config/giteki
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.IndexURL == "" {
		return ErrEmptyIndexURL
	}
	if c.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	if c.DownloadDir == "" {
		return ErrEmptyDownloadDir
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

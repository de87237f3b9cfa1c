package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with the documented defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default index URL is the MIC list page", func(t *testing.T) {
		t.Parallel()
		if cfg.IndexURL != "http://www.tele.soumu.go.jp/j/sys/equ/tech/tech/index.htm" {
			t.Errorf("unexpected IndexURL %q", cfg.IndexURL)
		}
	})

	t.Run("default base URL", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "http://www.tele.soumu.go.jp" {
			t.Errorf("unexpected BaseURL %q", cfg.BaseURL)
		}
	})

	t.Run("default destination is downloads", func(t *testing.T) {
		t.Parallel()
		if cfg.DownloadDir != "downloads" {
			t.Errorf("expected 'downloads', got %q", cfg.DownloadDir)
		}
	})

	t.Run("default timeout is disabled", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 0 {
			t.Errorf("expected 0, got %v", cfg.Timeout)
		}
	})

	t.Run("domestic category is downloaded by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.DownloadTargets["1.国内"] {
			t.Error("expected 1.国内 to be a download target")
		}
	})

	t.Run("foreign category is not downloaded by default", func(t *testing.T) {
		t.Parallel()
		v, ok := cfg.DownloadTargets["2.外国(相互承認)"]
		if !ok || v {
			t.Errorf("expected 2.外国(相互承認) to be present and false, got %v (present=%v)", v, ok)
		}
	})

	t.Run("database lives in the XDG data directory", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(cfg.DBPath) != "giteki.db" {
			t.Errorf("expected giteki.db, got %q", cfg.DBPath)
		}
		if !strings.HasPrefix(cfg.DBPath, XDGDataDir()) {
			t.Errorf("expected DBPath under %q, got %q", XDGDataDir(), cfg.DBPath)
		}
	})

	t.Run("download flags are off", func(t *testing.T) {
		t.Parallel()
		if cfg.DownloadAll || cfg.Update {
			t.Error("expected DownloadAll and Update to be false")
		}
	})
}

// TestDefaultDownloadTargets_ReturnsCopy ensures callers cannot mutate the defaults.
func TestDefaultDownloadTargets_ReturnsCopy(t *testing.T) {
	t.Parallel()

	m := DefaultDownloadTargets()
	m[CategoryForeign] = true

	if DefaultDownloadTargets()[CategoryForeign] {
		t.Error("expected a fresh map on every call")
	}
}

// TestConfigValidate tests each validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", modify: func(*Config) {}, wantErr: nil},
		{name: "empty index URL", modify: func(c *Config) { c.IndexURL = "" }, wantErr: ErrEmptyIndexURL},
		{name: "empty base URL", modify: func(c *Config) { c.BaseURL = "" }, wantErr: ErrEmptyBaseURL},
		{name: "empty download dir", modify: func(c *Config) { c.DownloadDir = "" }, wantErr: ErrEmptyDownloadDir},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "positive timeout", modify: func(c *Config) { c.Timeout = 30 * time.Second }, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigApply tests overlaying a config file onto defaults.
func TestConfigApply(t *testing.T) {
	t.Parallel()

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Apply(nil)
		if cfg.IndexURL != DefaultIndexURL {
			t.Errorf("expected default index URL, got %q", cfg.IndexURL)
		}
	})

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Apply(&File{
			BaseURL:   "http://localhost:8080",
			IndexURL:  "http://localhost:8080/index.htm",
			Encoding:  "shift_jis",
			Timeout:   10 * time.Second,
			UserAgent: "test-agent",
			DBPath:    "/tmp/x.db",
		})
		if cfg.BaseURL != "http://localhost:8080" {
			t.Errorf("unexpected BaseURL %q", cfg.BaseURL)
		}
		if cfg.IndexURL != "http://localhost:8080/index.htm" {
			t.Errorf("unexpected IndexURL %q", cfg.IndexURL)
		}
		if cfg.Encoding != "shift_jis" {
			t.Errorf("unexpected Encoding %q", cfg.Encoding)
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("unexpected Timeout %v", cfg.Timeout)
		}
		if cfg.UserAgent != "test-agent" {
			t.Errorf("unexpected UserAgent %q", cfg.UserAgent)
		}
		if cfg.DBPath != "/tmp/x.db" {
			t.Errorf("unexpected DBPath %q", cfg.DBPath)
		}
	})

	t.Run("download targets are merged", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Apply(&File{DownloadTargets: map[string]bool{CategoryForeign: true, "3.その他": true}})
		if !cfg.DownloadTargets[CategoryDomestic] {
			t.Error("expected domestic default to survive the merge")
		}
		if !cfg.DownloadTargets[CategoryForeign] {
			t.Error("expected foreign to be overridden to true")
		}
		if !cfg.DownloadTargets["3.その他"] {
			t.Error("expected new category to be added")
		}
	})

	t.Run("empty fields leave defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Apply(&File{})
		if cfg.BaseURL != DefaultBaseURL || cfg.DownloadDir != DefaultDownloadDir {
			t.Errorf("expected defaults to remain, got %+v", cfg)
		}
	})
}

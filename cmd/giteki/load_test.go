package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/giteki/internal/database"
)

func TestRunLoadCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty directory creates the database", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "db", "giteki.db")

		var stderr bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"load", "-s", dir, "--db", dbPath})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(dbPath, database.Options{})
		if err != nil {
			t.Fatalf("expected database to exist: %v", err)
		}
		defer db.Close()
		if err := db.Ping(context.Background()); err != nil {
			t.Errorf("ping: %v", err)
		}
		if !strings.Contains(stderr.String(), `msg="done load" files=0 inserted=0 skipped=0`) {
			t.Errorf("expected load totals, got %q", stderr.String())
		}
	})

	t.Run("missing source directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		cmd := NewRootCmd()
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"load", "-s", filepath.Join(dir, "none"), "--db", filepath.Join(dir, "giteki.db")})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing source directory")
		}
	})

	t.Run("files other than xls are ignored", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "download_summary_20240401.csv"), []byte("a.xls,x,y\r\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewRootCmd()
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"load", "-s", dir, "--db", filepath.Join(dir, "giteki.db")})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

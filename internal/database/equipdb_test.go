package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/giteki/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *EquipmentDB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "giteki.db"), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newEquipment(name, modelName, file string) *model.Equipment {
	return &model.Equipment{
		CertifiedName: name,
		EquipmentType: "第2条第19号",
		Model:         modelName,
		AuthNumber:    "001-A00001",
		RadioType:     "F1D 2400MHz",
		AuthDate:      time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC),
		File:          file,
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "newdir", "subdir", "giteki.db")
		db, err := Open(path, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != path {
			t.Errorf("Path() = %q, want %q", db.Path(), path)
		}
		if err := db.Ping(context.Background()); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("CreateIfNotExists=false fails for missing database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.db")
		if _, err := Open(path, Options{CreateIfNotExists: false}); err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopen keeps data", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "giteki.db")
		db, err := Open(path, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if _, err := db.InsertEquipment(context.Background(), newEquipment("A", "M1", "a.xls")); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		_ = db.Close()

		db, err = Open(path, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()
		n, err := db.CountByFile(context.Background(), "a.xls")
		if err != nil || n != 1 {
			t.Errorf("CountByFile = %d, %v; want 1", n, err)
		}
	})
}

// TestInsertEquipment tests inserts and duplicate detection.
func TestInsertEquipment(t *testing.T) {
	t.Parallel()

	t.Run("assigns an ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		eq := newEquipment("株式会社A", "M1", "a.xls")
		id, err := db.InsertEquipment(context.Background(), eq)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == 0 || eq.ID != id {
			t.Errorf("id = %d, eq.ID = %d", id, eq.ID)
		}
	})

	t.Run("identical record is a duplicate", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		if _, err := db.InsertEquipment(ctx, newEquipment("A", "M1", "a.xls")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := db.InsertEquipment(ctx, newEquipment("A", "M1", "b.xls"))
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("different model is not a duplicate", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		if _, err := db.InsertEquipment(ctx, newEquipment("A", "M1", "a.xls")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := db.InsertEquipment(ctx, newEquipment("A", "M2", "a.xls")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestListEquipment tests filtering and paging.
func TestListEquipment(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	for _, eq := range []*model.Equipment{
		newEquipment("株式会社A", "WX-100", "a.xls"),
		newEquipment("株式会社B", "WX-200", "a.xls"),
		newEquipment("100%無線", "ZZ_1", "b.xls"),
	} {
		if _, err := db.InsertEquipment(ctx, eq); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "all in insertion order", filter: Filter{}, want: []string{"WX-100", "WX-200", "ZZ_1"}},
		{name: "query matches model", filter: Filter{Query: "WX-2"}, want: []string{"WX-200"}},
		{name: "query matches name", filter: Filter{Query: "株式会社"}, want: []string{"WX-100", "WX-200"}},
		{name: "percent is literal", filter: Filter{Query: "100%"}, want: []string{"ZZ_1"}},
		{name: "underscore is literal", filter: Filter{Query: "X_1"}, want: []string{}},
		{name: "file filter", filter: Filter{File: "b.xls"}, want: []string{"ZZ_1"}},
		{name: "limit and offset", filter: Filter{Limit: 1, Offset: 1}, want: []string{"WX-200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := db.ListEquipment(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i, eq := range got {
				if eq.Model != tt.want[i] {
					t.Errorf("record %d model = %q, want %q", i, eq.Model, tt.want[i])
				}
			}
		})
	}

	t.Run("auth date round-trips", func(t *testing.T) {
		t.Parallel()

		got, err := db.ListEquipment(ctx, Filter{Limit: 1})
		if err != nil || len(got) != 1 {
			t.Fatalf("unexpected result %v, %v", got, err)
		}
		if got[0].AuthDate.Format(model.AuthDateLayout) != "2015-03-01" {
			t.Errorf("AuthDate = %v", got[0].AuthDate)
		}
	})
}

// Package importer loads downloaded spreadsheets into the equipment
// database.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nao1215/giteki/internal/database"
	"github.com/nao1215/giteki/internal/log"
	"github.com/nao1215/giteki/internal/metrics"
	"github.com/nao1215/giteki/internal/model"
	"github.com/nao1215/giteki/internal/workbook"
)

// HeaderName is the first header cell of every list spreadsheet.
const HeaderName = "工事設計認証を受けた者の氏名又は名称"

// minColumns is the number of columns of a list row.
const minColumns = 8

// Store is the subset of database.EquipmentDB used by the importer.
type Store interface {
	InsertEquipment(ctx context.Context, eq *model.Equipment) (int64, error)
	CountByFile(ctx context.Context, file string) (int, error)
}

// ReadFunc reads the coerced rows of a spreadsheet.
type ReadFunc func(path string) ([][]workbook.Value, error)

// Importer converts spreadsheet rows to equipment records.
type Importer struct {
	store   Store
	read    ReadFunc
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithMetrics records row outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(i *Importer) {
		i.metrics = m
	}
}

// WithReader replaces the spreadsheet reader.
func WithReader(read ReadFunc) Option {
	return func(i *Importer) {
		i.read = read
	}
}

// New creates an Importer writing to store.
func New(store Store, opts ...Option) *Importer {
	i := &Importer{
		store:  store,
		read:   workbook.ReadFile,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// FileResult summarizes the import of one spreadsheet.
type FileResult struct {
	File       string
	Inserted   int
	Duplicates int
	Skipped    int

	// AlreadyLoaded is true when the file was skipped because the database
	// already holds records from it.
	AlreadyLoaded bool
}

// ImportDir imports every .xls file directly inside dir, in name order.
// A file that cannot be read is logged and skipped.
func (i *Importer) ImportDir(ctx context.Context, dir string) ([]FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".xls") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := i.ImportFile(ctx, filepath.Join(dir, name))
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			i.logger.Error("failed to import", "file", name, "error", err)
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

// ImportFile imports one spreadsheet. Records are keyed by the file's
// base name.
func (i *Importer) ImportFile(ctx context.Context, path string) (FileResult, error) {
	name := filepath.Base(path)
	res := FileResult{File: name}

	n, err := i.store.CountByFile(ctx, name)
	if err != nil {
		return res, err
	}
	if n > 0 {
		i.logger.Info("already loaded", "file", name, "records", n)
		res.AlreadyLoaded = true
		return res, nil
	}

	i.logger.Info("load", "file", name)
	rows, err := i.read(path)
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", name, err)
	}

	for _, row := range rows {
		eq, ok := rowToEquipment(row, name)
		if !ok {
			res.Skipped++
			continue
		}
		_, err := i.store.InsertEquipment(ctx, eq)
		switch {
		case errors.Is(err, database.ErrDuplicate):
			i.logger.Debug("duplicate", "file", name, "auth_number", eq.AuthNumber, "model", eq.Model)
			res.Duplicates++
		case err != nil:
			return res, err
		default:
			res.Inserted++
		}
	}

	i.metrics.ObserveImportedRows(metrics.StatusOK, res.Inserted)
	i.metrics.ObserveImportedRows(metrics.StatusSkipped, res.Skipped+res.Duplicates)
	i.logger.Info("loaded", "file", name,
		"inserted", res.Inserted, "duplicates", res.Duplicates, "skipped", res.Skipped)
	return res, nil
}

// rowToEquipment converts a list row. The header row, short rows and rows
// whose authorization date is not YYYY-MM-DD are rejected.
func rowToEquipment(row []workbook.Value, file string) (*model.Equipment, bool) {
	if len(row) < minColumns {
		return nil, false
	}
	cols := make([]string, minColumns)
	for idx := range cols {
		cols[idx] = valueString(row[idx])
	}
	if cols[0] == HeaderName {
		return nil, false
	}

	authDate, err := time.Parse(model.AuthDateLayout, cols[6])
	if err != nil {
		return nil, false
	}

	return &model.Equipment{
		CertifiedName: cols[0],
		EquipmentType: cols[1],
		Model:         cols[2],
		AuthNumber:    cols[3],
		RadioType:     cols[4],
		IsApplied1421: cols[5],
		AuthDate:      authDate,
		Note:          cols[7],
		File:          file,
	}, true
}

func valueString(v workbook.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return fmt.Sprint(x)
	}
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/giteki/internal/model"
)

// ErrDuplicate is returned by InsertEquipment when an identical record
// already exists.
var ErrDuplicate = errors.New("equipment already exists")

// DefaultListLimit caps ListEquipment when Filter.Limit is zero.
const DefaultListLimit = 1000

// EquipmentDB provides SQLite-based storage for equipment records.
type EquipmentDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the path to the SQLite database file.
	path string
}

// Options configures EquipmentDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file and its directory if
	// they do not exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging so the server can read while
	// the loader writes.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the database file at path.
func Open(path string, opts Options) (*EquipmentDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run \"giteki load\" first)", path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	mode := "rw"
	if opts.CreateIfNotExists {
		mode = "rwc"
	}
	db, err := sql.Open("sqlite", path+"?mode="+mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	edb := &EquipmentDB{db: db, path: path}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := edb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return edb, nil
}

// Path returns the database file path.
func (e *EquipmentDB) Path() string {
	return e.path
}

// Close closes the database connection.
func (e *EquipmentDB) Close() error {
	return e.db.Close()
}

// Ping checks that the database is reachable.
func (e *EquipmentDB) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

func (e *EquipmentDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS equipments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		certified_name TEXT NOT NULL,
		equipment_type TEXT NOT NULL,
		model TEXT NOT NULL,
		auth_number TEXT NOT NULL,
		radio_type TEXT NOT NULL,
		is_applied_1421 TEXT NOT NULL DEFAULT '',
		auth_date TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		file TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(certified_name, equipment_type, model, auth_number, radio_type, auth_date)
	);

	CREATE INDEX IF NOT EXISTS idx_equipments_file ON equipments(file);
	CREATE INDEX IF NOT EXISTS idx_equipments_auth_number ON equipments(auth_number);
	`

	_, err := e.db.ExecContext(context.Background(), schema)
	return err
}

// InsertEquipment stores eq and returns its ID. An identical record
// yields ErrDuplicate.
func (e *EquipmentDB) InsertEquipment(ctx context.Context, eq *model.Equipment) (int64, error) {
	query := `
	INSERT OR IGNORE INTO equipments
		(certified_name, equipment_type, model, auth_number, radio_type, is_applied_1421, auth_date, note, file)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := e.db.ExecContext(ctx, query,
		eq.CertifiedName,
		eq.EquipmentType,
		eq.Model,
		eq.AuthNumber,
		eq.RadioType,
		eq.IsApplied1421,
		eq.AuthDate.Format(model.AuthDateLayout),
		eq.Note,
		eq.File,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert equipment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return 0, ErrDuplicate
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	eq.ID = id
	return id, nil
}

// CountByFile returns the number of records imported from file.
func (e *EquipmentDB) CountByFile(ctx context.Context, file string) (int, error) {
	var count int
	err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM equipments WHERE file = ?", file).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count equipments: %w", err)
	}
	return count, nil
}

// Filter narrows ListEquipment.
type Filter struct {
	// Query matches a substring of the certified name or the model.
	Query string

	// File restricts results to one source spreadsheet.
	File string

	// Limit caps the number of records; zero means DefaultListLimit.
	Limit int

	// Offset skips that many records.
	Offset int
}

// ListEquipment returns records matching f in insertion order.
func (e *EquipmentDB) ListEquipment(ctx context.Context, f Filter) ([]model.Equipment, error) {
	var (
		where []string
		args  []any
	)
	if f.Query != "" {
		where = append(where, "(certified_name LIKE ? ESCAPE '\\' OR model LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(f.Query) + "%"
		args = append(args, pattern, pattern)
	}
	if f.File != "" {
		where = append(where, "file = ?")
		args = append(args, f.File)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
	SELECT id, certified_name, equipment_type, model, auth_number, radio_type,
	       is_applied_1421, auth_date, note, file
	FROM equipments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, max(f.Offset, 0))

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipments: %w", err)
	}
	defer rows.Close()

	results := make([]model.Equipment, 0)
	for rows.Next() {
		var (
			eq       model.Equipment
			authDate string
		)
		if err := rows.Scan(
			&eq.ID,
			&eq.CertifiedName,
			&eq.EquipmentType,
			&eq.Model,
			&eq.AuthNumber,
			&eq.RadioType,
			&eq.IsApplied1421,
			&authDate,
			&eq.Note,
			&eq.File,
		); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		eq.AuthDate = parseAuthDate(authDate)
		results = append(results, eq)
	}
	return results, rows.Err()
}

// parseAuthDate parses a stored auth date, returning the zero time for
// malformed values.
func parseAuthDate(s string) time.Time {
	t, err := time.Parse(model.AuthDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

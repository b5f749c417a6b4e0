// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preset persists a single filter preset in SQLite. Saving
// overwrites the slot; loading an empty slot fails with types.ErrNotFound.
package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/spotifynd/pkg/types"
)

const (
	appDir = "spotifynd"
	dbFile = "presets.db"

	// slotID is the primary key of the only row the table ever holds.
	slotID = 1
)

// Info describes the preset currently in the slot.
type Info struct {
	ID      string    `json:"id" yaml:"id"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
}

// Store manages the preset SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns $XDG_DATA_HOME/spotifynd/presets.db, creating the
// parent directory when needed.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appDir, dbFile))
}

// NewStore opens or creates the preset database at cfg.DBPath, falling back
// to DefaultPath when unset, and creates the schema if it does not exist.
func NewStore(cfg types.PresetConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving preset path: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating preset directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	cols := make([]string, len(types.AllFeatures))
	for i, f := range types.AllFeatures {
		cols[i] = string(f) + " TEXT"
	}
	stmt := `CREATE TABLE IF NOT EXISTS preset (
		slot INTEGER PRIMARY KEY CHECK (slot = 1),
		id TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		` + strings.Join(cols, ",\n\t\t") + `
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

func featureColumns() string {
	names := make([]string, len(types.AllFeatures))
	for i, f := range types.AllFeatures {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Save overwrites the slot with set. Unset features are stored as NULL.
// Each save is stamped with a fresh id.
func (s *Store) Save(ctx context.Context, set types.FilterSet) (Info, error) {
	info := Info{ID: uuid.NewString(), SavedAt: s.now().UTC().Truncate(time.Second)}

	args := []any{slotID, info.ID, info.SavedAt.Format(time.RFC3339)}
	for _, f := range types.AllFeatures {
		var v sql.NullString
		if c := set.Get(f); c.IsSet() {
			v = sql.NullString{String: string(c), Valid: true}
		}
		args = append(args, v)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	stmt := `INSERT OR REPLACE INTO preset (slot, id, saved_at, ` + featureColumns() + `)
		VALUES (` + placeholders + `)`
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return Info{}, fmt.Errorf("saving preset: %w", err)
	}
	return info, nil
}

// Load returns the saved preset. An empty slot fails with types.ErrNotFound.
func (s *Store) Load(ctx context.Context) (types.FilterSet, error) {
	vals := make([]sql.NullString, len(types.AllFeatures))
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT `+featureColumns()+` FROM preset WHERE slot = ?`, slotID,
	).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no saved preset: %w", types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading preset: %w", err)
	}

	set := types.FilterSet{}
	for i, f := range types.AllFeatures {
		if vals[i].Valid {
			set.Set(f, types.Criterion(vals[i].String))
		}
	}
	return set, nil
}

// Info returns the id and save time of the stored preset, or
// types.ErrNotFound when the slot is empty.
func (s *Store) Info(ctx context.Context) (Info, error) {
	var info Info
	var savedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, saved_at FROM preset WHERE slot = ?`, slotID,
	).Scan(&info.ID, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("no saved preset: %w", types.ErrNotFound)
	}
	if err != nil {
		return Info{}, fmt.Errorf("reading preset info: %w", err)
	}

	info.SavedAt, err = time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return Info{}, fmt.Errorf("parsing saved_at %q: %w", savedAt, err)
	}
	return info, nil
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preset WHERE slot = ?`, slotID); err != nil {
		return fmt.Errorf("clearing preset: %w", err)
	}
	return nil
}

package presets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a preset lookup misses.
var ErrNotFound = errors.New("presets: not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS presets (
	id         TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	name       TEXT NOT NULL,
	values_json TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (model, name)
);
CREATE INDEX IF NOT EXISTS idx_presets_model ON presets (model);
`

// SQLiteStore implements Store on an embedded sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (and initialises) a preset database at path. Use
// ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("presets: open %q: %w", path, err)
	}
	// modernc sqlite serializes access per connection; a single connection
	// avoids table-lock errors under concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("presets: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, preset Preset) (Preset, error) {
	if preset.Model == "" || preset.Name == "" {
		return Preset{}, errors.New("presets: model and name are required")
	}
	if preset.ID == uuid.Nil {
		preset.ID = uuid.New()
	}

	now := time.Now().UTC()
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = now
	}
	preset.UpdatedAt = now

	values, err := json.Marshal(preset.Values)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: encode values: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (id, model, name, values_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (model, name) DO UPDATE SET
			values_json = excluded.values_json,
			updated_at  = excluded.updated_at`,
		preset.ID.String(),
		preset.Model,
		preset.Name,
		string(values),
		preset.CreatedAt.Format(time.RFC3339Nano),
		preset.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: save %q: %w", preset.Name, err)
	}

	// An update keeps the original row id and creation time.
	return s.Get(ctx, preset.Model, preset.Name)
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, model, name string) (Preset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, name, values_json, created_at, updated_at
		FROM presets WHERE model = ? AND name = ?`, model, name)

	preset, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("presets: get %q: %w", name, err)
	}
	return preset, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, model string) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, name, values_json, created_at, updated_at
		FROM presets WHERE model = ? ORDER BY updated_at DESC, name ASC`, model)
	if err != nil {
		return nil, fmt.Errorf("presets: list %q: %w", model, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Preset
	for rows.Next() {
		preset, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("presets: list %q: %w", model, err)
		}
		out = append(out, preset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("presets: list %q: %w", model, err)
	}
	return out, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, model, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE model = ? AND name = ?`, model, name); err != nil {
		return fmt.Errorf("presets: delete %q: %w", name, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (Preset, error) {
	var (
		preset     Preset
		id         string
		valuesJSON string
		createdAt  string
		updatedAt  string
	)
	if err := row.Scan(&id, &preset.Model, &preset.Name, &valuesJSON, &createdAt, &updatedAt); err != nil {
		return Preset{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Preset{}, fmt.Errorf("parse id: %w", err)
	}
	preset.ID = parsed

	if err := json.Unmarshal([]byte(valuesJSON), &preset.Values); err != nil {
		return Preset{}, fmt.Errorf("decode values: %w", err)
	}
	if preset.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Preset{}, fmt.Errorf("parse created_at: %w", err)
	}
	if preset.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return Preset{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return preset, nil
}

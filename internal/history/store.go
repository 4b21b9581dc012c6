package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gifify/internal/gifbuild"
)

// Conversion is one completed GIF conversion.
type Conversion struct {
	ID          int64
	Source      string
	OutputPath  string
	OutputBytes int64
	Params      gifbuild.Request
	Elapsed     time.Duration
	Optimized   bool
	CreatedAt   time.Time
}

// Store persists completed conversions in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    output_path TEXT NOT NULL,
    output_bytes INTEGER NOT NULL DEFAULT 0,
    params_json TEXT NOT NULL,
    elapsed_ms INTEGER NOT NULL DEFAULT 0,
    optimized INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at DESC);
`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a completed conversion and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, conv Conversion) (*Conversion, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history store not open")
	}

	paramsJSON, err := json.Marshal(conv.Params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO conversions (
            source, output_path, output_bytes, params_json, elapsed_ms, optimized, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		conv.Source,
		conv.OutputPath,
		conv.OutputBytes,
		string(paramsJSON),
		conv.Elapsed.Milliseconds(),
		boolToInt(conv.Optimized),
		conv.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert conversion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	conv.ID = id
	return &conv, nil
}

// List returns the most recent conversions, newest first. Limit bounds the
// result size; values <= 0 fall back to 50.
func (s *Store) List(ctx context.Context, limit int) ([]Conversion, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history store not open")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, source, output_path, output_bytes, params_json, elapsed_ms, optimized, created_at
         FROM conversions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var result []Conversion
	for rows.Next() {
		var (
			conv       Conversion
			paramsJSON string
			elapsedMS  int64
			optimized  int
			createdAt  string
		)
		if err := rows.Scan(&conv.ID, &conv.Source, &conv.OutputPath, &conv.OutputBytes, &paramsJSON, &elapsedMS, &optimized, &createdAt); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &conv.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params for #%d: %w", conv.ID, err)
		}
		conv.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		conv.Optimized = optimized != 0
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			conv.CreatedAt = parsed
		}
		result = append(result, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return result, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

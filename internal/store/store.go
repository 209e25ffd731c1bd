// Package store records finished smart-cut runs in SQLite so repeated inputs
// can be skipped and past runs listed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no run matches the lookup
var ErrNotFound = errors.New("run not found")

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		createdAt REAL NOT NULL,
		originalDuration REAL NOT NULL,
		finalDuration REAL NOT NULL,
		compressionRatio REAL NOT NULL,
		globalSpeed REAL NOT NULL,
		totalSegments INTEGER NOT NULL,
		keptSegments INTEGER NOT NULL,
		mergedSegments INTEGER NOT NULL,
		resultJson TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(createdAt);
`

// Run is one recorded engine run
type Run struct {
	ID               int64
	Hash             string
	Source           string
	CreatedAt        time.Time
	OriginalDuration float64
	FinalDuration    float64
	CompressionRatio float64
	GlobalSpeed      float64
	TotalSegments    int
	KeptSegments     int
	MergedSegments   int
	ResultJSON       string
}

// Store provides access to the run history database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path. ":memory:" gives a private in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection serialises writers and keeps :memory: on one database
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts the run, replacing any earlier run with the same hash.
func (s *Store) SaveRun(ctx context.Context, r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO runs (hash, source, createdAt, originalDuration, finalDuration,
			compressionRatio, globalSpeed, totalSegments, keptSegments, mergedSegments, resultJson)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			source = excluded.source,
			createdAt = excluded.createdAt,
			originalDuration = excluded.originalDuration,
			finalDuration = excluded.finalDuration,
			compressionRatio = excluded.compressionRatio,
			globalSpeed = excluded.globalSpeed,
			totalSegments = excluded.totalSegments,
			keptSegments = excluded.keptSegments,
			mergedSegments = excluded.mergedSegments,
			resultJson = excluded.resultJson
		RETURNING id
	`, r.Hash, r.Source, unixFromTime(r.CreatedAt), r.OriginalDuration, r.FinalDuration,
		r.CompressionRatio, r.GlobalSpeed, r.TotalSegments, r.KeptSegments, r.MergedSegments, r.ResultJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RunByHash returns the run recorded for hash, or ErrNotFound.
func (s *Store) RunByHash(ctx context.Context, hash string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, source, createdAt, originalDuration, finalDuration,
			compressionRatio, globalSpeed, totalSegments, keptSegments, mergedSegments, resultJson
		FROM runs
		WHERE hash = ?
	`, hash)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, source, createdAt, originalDuration, finalDuration,
			compressionRatio, globalSpeed, totalSegments, keptSegments, mergedSegments, resultJson
		FROM runs
		ORDER BY createdAt DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var r Run
	var createdAt float64
	if err := sc.Scan(&r.ID, &r.Hash, &r.Source, &createdAt, &r.OriginalDuration, &r.FinalDuration,
		&r.CompressionRatio, &r.GlobalSpeed, &r.TotalSegments, &r.KeptSegments, &r.MergedSegments, &r.ResultJSON); err != nil {
		return nil, err
	}
	r.CreatedAt = timeFromUnix(createdAt)
	return &r, nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9))
}

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/rhizotron/rhizosim/internal/grow"
)

// Store keeps finished runs in a local SQLite database: one row per run plus
// the full day-by-day ledger, so past seasons can be listed, re-plotted and
// compared without rerunning them.
type Store struct {
	db *sql.DB
}

// RunMetadata is the summary row of one stored run.
type RunMetadata struct {
	ID          int64
	Plant       string
	Created     time.Time
	Seed        int64
	Dt          float64
	SimTime     float64
	MaxInc      float64
	Growth      string
	FinalLength float64
	LimitedDays int
	Metrics     map[string]float64
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			plant TEXT NOT NULL,
			created TEXT NOT NULL,
			seed INTEGER NOT NULL,
			dt REAL NOT NULL,
			sim_time REAL NOT NULL,
			max_inc REAL NOT NULL,
			growth TEXT NOT NULL DEFAULT '',
			final_length REAL NOT NULL,
			limited_days INTEGER NOT NULL,
			metrics_json TEXT NOT NULL DEFAULT '{}'
		);`,
		`CREATE TABLE IF NOT EXISTS run_days (
			run_id INTEGER NOT NULL,
			day INTEGER NOT NULL,
			time REAL NOT NULL,
			start_length REAL NOT NULL,
			trial_increment REAL NOT NULL,
			budget REAL NOT NULL,
			scale REAL NOT NULL,
			committed_increment REAL NOT NULL,
			end_length REAL NOT NULL,
			limited BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, day),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_run_days_run_id ON run_days(run_id);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// SaveRun stores a finished run and returns its id.
func (s *Store) SaveRun(plant, growth string, cfg grow.Config, result *grow.Result) (int64, error) {
	metrics, err := json.Marshal(result.Metrics)
	if err != nil {
		return 0, fmt.Errorf("failed to encode metrics: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (plant, created, seed, dt, sim_time, max_inc, growth, final_length, limited_days, metrics_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plant, time.Now().UTC().Format(time.RFC3339), cfg.Seed, cfg.Dt, cfg.SimTime, cfg.MaxInc, growth,
		result.FinalLength, result.LimitedDays, string(metrics),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_days (run_id, day, time, start_length, trial_increment, budget, scale, committed_increment, end_length, limited)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range result.Records {
		if _, err := stmt.Exec(id, rec.Day, rec.Time, rec.StartLength, rec.TrialIncrement,
			rec.Budget, rec.Scale, rec.CommittedIncrement, rec.EndLength, rec.Limited); err != nil {
			return 0, fmt.Errorf("failed to insert day %d: %w", rec.Day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns all stored runs, oldest first.
func (s *Store) ListRuns() ([]RunMetadata, error) {
	rows, err := s.db.Query(
		`SELECT id, plant, created, seed, dt, sim_time, max_inc, growth, final_length, limited_days, metrics_json
		 FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// LoadRun returns the summary row of one run.
func (s *Store) LoadRun(id int64) (*RunMetadata, error) {
	row := s.db.QueryRow(
		`SELECT id, plant, created, seed, dt, sim_time, max_inc, growth, final_length, limited_days, metrics_json
		 FROM runs WHERE id = ?`, id)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunMetadata, error) {
	var meta RunMetadata
	var created, metrics string
	err := row.Scan(&meta.ID, &meta.Plant, &created, &meta.Seed, &meta.Dt, &meta.SimTime,
		&meta.MaxInc, &meta.Growth, &meta.FinalLength, &meta.LimitedDays, &metrics)
	if err != nil {
		return RunMetadata{}, err
	}
	if meta.Created, err = time.Parse(time.RFC3339, created); err != nil {
		return RunMetadata{}, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &meta.Metrics); err != nil {
		return RunMetadata{}, fmt.Errorf("failed to decode metrics: %w", err)
	}
	return meta, nil
}

// LoadDays returns the day ledger of one run in day order.
func (s *Store) LoadDays(id int64) ([]grow.DayRecord, error) {
	rows, err := s.db.Query(
		`SELECT day, time, start_length, trial_increment, budget, scale, committed_increment, end_length, limited
		 FROM run_days WHERE run_id = ? ORDER BY day`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]grow.DayRecord, 0)
	for rows.Next() {
		var rec grow.DayRecord
		if err := rows.Scan(&rec.Day, &rec.Time, &rec.StartLength, &rec.TrialIncrement,
			&rec.Budget, &rec.Scale, &rec.CommittedIncrement, &rec.EndLength, &rec.Limited); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

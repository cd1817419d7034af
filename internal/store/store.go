// Package store persists run history and run logs to sqlite. Datasets and
// summary statistics are never persisted; they live in the owning engine and
// are recomputed on demand.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"etl-dashboard/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the sqlite connection used for run history.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the run-history database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT,
		destination TEXT,
		status TEXT,
		failed_stage TEXT,
		records INTEGER,
		output_file TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	logTable := `
	CREATE TABLE IF NOT EXISTS run_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		stage TEXT,
		level TEXT,
		message TEXT,
		rows INTEGER,
		created_at DATETIME
	);
	`
	if _, err := db.Exec(runTable); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(logTable); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun inserts a new run in "pending" state.
func (s *Store) SaveRun(id string, source model.SourceType, dest model.Destination) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, source, destination, status, failed_stage, records, output_file, created_at, updated_at)
		 VALUES (?, ?, ?, ?, '', 0, '', ?, ?)`,
		id, string(source), string(dest), "pending", now, now)
	return err
}

// UpdateRun records the outcome of a finished run.
func (s *Store) UpdateRun(id, status, failedStage string, records int, outputFile string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, failed_stage = ?, records = ?, output_file = ?, updated_at = ? WHERE id = ?`,
		status, failedStage, records, outputFile, now, id)
	return err
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(id string) (model.RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, source, destination, status, failed_stage, records, output_file, created_at, updated_at
		 FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]model.RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, source, destination, status, failed_stage, records, output_file, created_at, updated_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveLogs appends the run's log entries, replacing any earlier entries for
// the same run so a retry starts from a clean log.
func (s *Store) SaveLogs(runID string, logs []model.LogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM run_logs WHERE run_id = ?`, runID); err != nil {
		tx.Rollback()
		return err
	}
	for _, entry := range logs {
		_, err := tx.Exec(
			`INSERT INTO run_logs (run_id, stage, level, message, rows, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, entry.Stage, entry.Level, entry.Message, entry.Rows, entry.Time.UTC())
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetLogs returns up to limit log entries for a run, oldest first.
func (s *Store) GetLogs(runID string, limit int) ([]model.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT stage, level, message, rows, created_at FROM run_logs WHERE run_id = ? ORDER BY id ASC LIMIT ?`,
		runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.LogEntry
	for rows.Next() {
		var entry model.LogEntry
		if err := rows.Scan(&entry.Stage, &entry.Level, &entry.Message, &entry.Rows, &entry.Time); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (model.RunRecord, error) {
	var run model.RunRecord
	var source, dest string
	err := row.Scan(&run.ID, &source, &dest, &run.Status, &run.FailedStage,
		&run.Records, &run.OutputFile, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return model.RunRecord{}, fmt.Errorf("scan run: %w", err)
	}
	run.Source = model.SourceType(source)
	run.Destination = model.Destination(dest)
	return run, nil
}

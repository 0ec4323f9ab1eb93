package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/trip.features/internal/features"
)

// ErrRunNotFound is returned when a feature run does not exist.
var ErrRunNotFound = errors.New("feature run not found")

// Run describes one stored feature matrix.
type Run struct {
	RunID       string `json:"run_id"`
	CreatedAt   int64  `json:"created_at"` // unix nanoseconds
	TripCount   int    `json:"trip_count"`
	ColumnCount int    `json:"column_count"`
	ParamsPath  string `json:"params_path,omitempty"`
}

// Created returns CreatedAt as a time.
func (r Run) Created() time.Time { return time.Unix(0, r.CreatedAt) }

// SaveRun stores a feature matrix in long format, one row per trip and
// feature. A new run ID is generated if run.RunID is empty.
func (db *DB) SaveRun(ctx context.Context, m *features.Matrix, run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = db.Clock.Now().UnixNano()
	}
	run.TripCount = len(m.Rows)
	run.ColumnCount = len(m.Columns)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return run, fmt.Errorf("failed to begin run insert: %w", err)
	}
	defer tx.Rollback()

	var paramsPath interface{}
	if run.ParamsPath != "" {
		paramsPath = run.ParamsPath
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO feature_runs (run_id, created_at, trip_count, column_count, params_path)
		VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedAt, run.TripCount, run.ColumnCount, paramsPath,
	); err != nil {
		return run, fmt.Errorf("failed to insert run %s: %w", run.RunID, err)
	}

	colStmt, err := tx.PrepareContext(ctx, `INSERT INTO feature_columns (run_id, position, name) VALUES (?, ?, ?)`)
	if err != nil {
		return run, err
	}
	defer colStmt.Close()
	for i, c := range m.Columns {
		if _, err := colStmt.ExecContext(ctx, run.RunID, i, c); err != nil {
			return run, fmt.Errorf("failed to insert column %s: %w", c, err)
		}
	}

	valStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trip_features (run_id, row_index, booking_id, feature, value)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return run, err
	}
	defer valStmt.Close()
	for i, r := range m.Rows {
		for j, v := range r.Values {
			if _, err := valStmt.ExecContext(ctx, run.RunID, i, r.TripID, m.Columns[j], v); err != nil {
				return run, fmt.Errorf("failed to insert %s for trip %d: %w", m.Columns[j], r.TripID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("failed to commit run %s: %w", run.RunID, err)
	}
	return run, nil
}

// GetRun returns the metadata of a stored run.
func (db *DB) GetRun(ctx context.Context, runID string) (Run, error) {
	row := db.QueryRowContext(ctx, `
		SELECT run_id, created_at, trip_count, column_count, params_path
		FROM feature_runs
		WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// ListRuns returns every stored run, newest first.
func (db *DB) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT run_id, created_at, trip_count, column_count, params_path
		FROM feature_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun rebuilds the feature matrix of a stored run, with columns and
// rows in their original order.
func (db *DB) LoadRun(ctx context.Context, runID string) (*features.Matrix, Run, error) {
	run, err := db.GetRun(ctx, runID)
	if err != nil {
		return nil, Run{}, err
	}

	columns, err := db.runColumns(ctx, runID)
	if err != nil {
		return nil, run, err
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	rows, err := db.QueryContext(ctx, `
		SELECT row_index, booking_id, feature, value
		FROM trip_features
		WHERE run_id = ?
		ORDER BY row_index`, runID)
	if err != nil {
		return nil, run, fmt.Errorf("query run %s features: %w", runID, err)
	}
	defer rows.Close()

	m := &features.Matrix{Columns: columns, Rows: make([]features.Row, 0, run.TripCount)}
	for rows.Next() {
		var (
			rowIndex int
			tripID   int64
			feature  string
			value    float64
		)
		if err := rows.Scan(&rowIndex, &tripID, &feature, &value); err != nil {
			return nil, run, fmt.Errorf("scan run %s feature: %w", runID, err)
		}
		for len(m.Rows) <= rowIndex {
			m.Rows = append(m.Rows, features.Row{Values: make([]float64, len(columns))})
		}
		ci, ok := index[feature]
		if !ok {
			return nil, run, fmt.Errorf("run %s has value for unknown column %q", runID, feature)
		}
		m.Rows[rowIndex].TripID = tripID
		m.Rows[rowIndex].Values[ci] = value
	}
	if err := rows.Err(); err != nil {
		return nil, run, err
	}
	return m, run, nil
}

func (db *DB) runColumns(ctx context.Context, runID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM feature_columns
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s columns: %w", runID, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// DeleteRun removes a run and its values.
func (db *DB) DeleteRun(ctx context.Context, runID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM feature_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (Run, error) {
	var r Run
	var paramsPath sql.NullString
	if err := s.Scan(&r.RunID, &r.CreatedAt, &r.TripCount, &r.ColumnCount, &paramsPath); err != nil {
		return Run{}, err
	}
	r.ParamsPath = paramsPath.String
	return r, nil
}

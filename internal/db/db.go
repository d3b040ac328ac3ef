// Package db persists analysis runs to SQLite so repeated analyses of the
// same session can be compared without re-keeping loose CSV files around.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/motorlab/tracking.report/internal/metrics"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the SQLite database at path without touching the schema.
// Migrations manage the schema; see NewDB for the common entry point.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{sqlDB}, nil
}

// NewDB opens the database and brings the schema up to date.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Run is one persisted analysis run.
type Run struct {
	ID         string
	SourceFile string
	ParamsJSON string
	CreatedAt  time.Time
}

// CreateRun records a new analysis run and returns its generated ID. The
// parameter bundle is stored as JSON so a stored run documents exactly how
// its metrics were produced.
func (db *DB) CreateRun(sourceFile string, params metrics.Params) (string, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode run params: %w", err)
	}

	runID := uuid.NewString()
	_, err = db.Exec(
		`INSERT INTO runs (run_id, source_file, params_json) VALUES (?, ?, ?)`,
		runID, sourceFile, string(paramsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	return runID, nil
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	var run Run
	err := db.QueryRow(
		`SELECT run_id, source_file, params_json, created_at FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&run.ID, &run.SourceFile, &run.ParamsJSON, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// InsertTrialMetrics stores the per-trial table of a run. Undefined
// metrics are stored as NULL.
func (db *DB) InsertTrialMetrics(runID string, rows []metrics.TrialRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO trial_metrics (
			run_id, participant, condition, trial, tau,
			t_start, t_end, pos_var_start, pos_var_end, y_end_mean, mse_truth
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trial insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(
			runID, r.Participant, r.Condition, r.Trial, r.Tau,
			nullable(r.TStart), nullable(r.TEnd),
			nullable(r.PosVarStart), nullable(r.PosVarEnd),
			nullable(r.YEndMean), nullable(r.MSETruth),
		)
		if err != nil {
			return fmt.Errorf("failed to insert trial metrics: %w", err)
		}
	}
	return tx.Commit()
}

// InsertSummaries stores the per-condition table of a run.
func (db *DB) InsertSummaries(runID string, rows []metrics.ConditionSummary) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO condition_summaries (
			run_id, participant, condition, n_trials,
			t_start_mean, t_start_std, t_end_mean, t_end_std,
			pos_var_start_mean, pos_var_start_std,
			pos_var_end_mean, pos_var_end_std,
			y_end_mean_mean, y_end_mean_std,
			mse_truth_mean, mse_truth_std
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(
			runID, r.Participant, r.Condition, r.NTrials,
			nullable(r.TStartMean), nullable(r.TStartStd),
			nullable(r.TEndMean), nullable(r.TEndStd),
			nullable(r.PosVarStartMean), nullable(r.PosVarStartStd),
			nullable(r.PosVarEndMean), nullable(r.PosVarEndStd),
			nullable(r.YEndMeanMean), nullable(r.YEndMeanStd),
			nullable(r.MSETruthMean), nullable(r.MSETruthStd),
		)
		if err != nil {
			return fmt.Errorf("failed to insert condition summary: %w", err)
		}
	}
	return tx.Commit()
}

// GetTrialMetrics reads back a run's per-trial table in composite-key
// order.
func (db *DB) GetTrialMetrics(runID string) ([]metrics.TrialRow, error) {
	rows, err := db.Query(`
		SELECT participant, condition, trial, tau,
		       t_start, t_end, pos_var_start, pos_var_end, y_end_mean, mse_truth
		FROM trial_metrics
		WHERE run_id = ?
		ORDER BY participant, condition, trial
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial metrics: %w", err)
	}
	defer rows.Close()

	var out []metrics.TrialRow
	for rows.Next() {
		var r metrics.TrialRow
		var tStart, tEnd, posVarStart, posVarEnd, yEndMean, mseTruth sql.NullFloat64
		err := rows.Scan(
			&r.Participant, &r.Condition, &r.Trial, &r.Tau,
			&tStart, &tEnd, &posVarStart, &posVarEnd, &yEndMean, &mseTruth,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial metrics: %w", err)
		}
		r.TStart = fromNull(tStart)
		r.TEnd = fromNull(tEnd)
		r.PosVarStart = fromNull(posVarStart)
		r.PosVarEnd = fromNull(posVarEnd)
		r.YEndMean = fromNull(yEndMean)
		r.MSETruth = fromNull(mseTruth)
		out = append(out, r)
	}
	return out, rows.Err()
}

// nullable converts an optional metric to a driver value, NULL when
// undefined.
func nullable(v metrics.Value) interface{} {
	if f, ok := v.Float64(); ok {
		return f
	}
	return nil
}

func fromNull(v sql.NullFloat64) metrics.Value {
	if !v.Valid {
		return metrics.None()
	}
	return metrics.Some(v.Float64)
}

package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

// ExperimentKey returns a deterministic fingerprint for one experiment of one
// run, so re-ingesting the same results is idempotent.
func ExperimentKey(runID, experimentID, modelID string) (string, error) {
	return FingerprintJSON(map[string]interface{}{
		"run_id":     runID,
		"experiment": experimentID,
		"model_id":   modelID,
	})
}

// IngestResults stores a run with its experiments and evaluations. Rows that
// already exist are left untouched.
func IngestResults(ctx context.Context, db *sql.DB, results runner.Results) error {
	if ctx == nil {
		return errors.New("duckdb: context is nil")
	}
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if results.RunID == "" {
		return errors.New("duckdb: run id is empty")
	}

	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, started_at, finished_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (run_id) DO NOTHING`,
		results.RunID,
		results.StartedAt,
		results.FinishedAt,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, experiment := range results.Experiments {
		key, err := ExperimentKey(results.RunID, experiment.ExperimentID, experiment.ModelID)
		if err != nil {
			return err
		}
		id := uuid.NewString()
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO experiments (experiment_id, experiment_key, run_id, name, type, model_id, model, rule, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (experiment_key) DO NOTHING`,
			id,
			key,
			results.RunID,
			experiment.ExperimentID,
			experiment.Type,
			experiment.ModelID,
			experiment.Model,
			nullableString(experiment.Rule),
			experiment.Status,
		); err != nil {
			return fmt.Errorf("insert experiment: %w", err)
		}
		experimentID, err := lookupID(ctx, db, "experiments", "experiment_id", "experiment_key", key)
		if err != nil {
			return fmt.Errorf("lookup experiment id: %w", err)
		}

		for _, evaluation := range experiment.Evaluations {
			if _, err := db.ExecContext(
				ctx,
				`INSERT INTO evaluations (evaluation_id, experiment_id, evaluation, accuracy, score, trials, switches)
				 VALUES (?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT (experiment_id, evaluation) DO NOTHING`,
				uuid.NewString(),
				experimentID,
				evaluation.Evaluation,
				evaluation.Accuracy,
				evaluation.Score,
				evaluation.Trials,
				evaluation.Switches,
			); err != nil {
				return fmt.Errorf("insert evaluation: %w", err)
			}
		}
	}
	return nil
}

// nullableString converts an optional string into a SQL argument.
func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, db *sql.DB, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

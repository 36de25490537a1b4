package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/analysis"
)

// ModelStats aggregates every stored evaluation by experiment type and model.
func ModelStats(ctx context.Context, db *sql.DB, successesBeforeSwitch int) ([]analysis.ModelStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			e.type,
			e.model,
			count(DISTINCT e.run_id),
			count(v.evaluation_id),
			coalesce(avg(v.accuracy), 0),
			coalesce(stddev_pop(v.accuracy), 0),
			coalesce(min(v.accuracy), 0),
			coalesce(max(v.accuracy), 0),
			coalesce(avg(v.score), 0),
			coalesce(stddev_pop(v.score), 0),
			coalesce(avg(v.trials), 0)
		FROM experiments e
		JOIN evaluations v USING (experiment_id)
		GROUP BY e.type, e.model
		ORDER BY e.type, e.model`)
	if err != nil {
		return nil, fmt.Errorf("query model stats: %w", err)
	}
	defer rows.Close()

	var stats []analysis.ModelStats
	for rows.Next() {
		var stat analysis.ModelStats
		if err := rows.Scan(
			&stat.Experiment,
			&stat.Model,
			&stat.Runs,
			&stat.Evaluations,
			&stat.MeanAccuracy,
			&stat.StdAccuracy,
			&stat.MinAccuracy,
			&stat.MaxAccuracy,
			&stat.MeanScore,
			&stat.StdScore,
			&stat.AvgTrials,
		); err != nil {
			return nil, fmt.Errorf("scan model stats: %w", err)
		}
		stat.Bound = analysis.Bound(analysis.RuleCount(stat.Experiment), successesBeforeSwitch)
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

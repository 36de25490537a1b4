package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/analysis"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/config"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/duckdb"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/report"
)

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		resultsDir := flags.String("results", config.DefaultOutputDir, "Directory holding run outputs")
		dbPath := flags.String("db", "", "DuckDB database path (ingests runs, then queries)")
		switchThreshold := flags.Int("switch", config.DefaultSuccessesBeforeSwitch, "Successes before a rule switch, for the theoretical bound")
		csvOutput := flags.Bool("csv", false, "Emit CSV instead of a table")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		var stats []analysis.ModelStats
		var err error
		if *dbPath != "" {
			stats, err = statsFromDB(context.Background(), *dbPath, *resultsDir, *switchThreshold)
		} else {
			stats, err = analysis.StatsFromDir(*resultsDir, *switchThreshold)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		if len(stats) == 0 {
			fmt.Fprintf(stderr, "No results found in %s\n", *resultsDir)
			return ExitError
		}

		if *csvOutput {
			err = analysis.WriteCSV(stdout, stats)
		} else {
			err = analysis.WriteTable(stdout, stats)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// statsFromDB ingests every run under resultsDir and aggregates in DuckDB.
func statsFromDB(ctx context.Context, dbPath, resultsDir string, switchThreshold int) ([]analysis.ModelStats, error) {
	db, err := duckdb.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := duckdb.EnsureSchema(db); err != nil {
		return nil, err
	}
	if err := ingestRuns(ctx, db, resultsDir); err != nil {
		return nil, err
	}
	return duckdb.ModelStats(ctx, db, switchThreshold)
}

// ingestRuns loads each run's results.json into the database. Ingestion is
// idempotent, so re-running over the same directory is safe.
func ingestRuns(ctx context.Context, db *sql.DB, resultsDir string) error {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return fmt.Errorf("read results directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		resultsPath := filepath.Join(resultsDir, entry.Name(), "results.json")
		if _, err := os.Stat(resultsPath); err != nil {
			continue
		}
		results, err := report.LoadResults(resultsPath)
		if err != nil {
			return fmt.Errorf("load %s: %w", resultsPath, err)
		}
		if err := duckdb.IngestResults(ctx, db, results); err != nil {
			return fmt.Errorf("ingest run %s: %w", results.RunID, err)
		}
	}
	return nil
}

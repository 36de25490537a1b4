package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/config"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		resultsDir := flags.String("results", config.DefaultOutputDir, "Directory holding run outputs")
		runRef := flags.String("run", "", "Run id (default: latest run)")
		outputPath := flags.String("output", "", "Report path (default: <run-dir>/report.html)")
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

		results, runDir, err := report.ResolveRun(*resultsDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}

		target := strings.TrimSpace(*outputPath)
		if target == "" {
			target = filepath.Join(runDir, "report.html")
		}
		if err := report.WriteReport(results, target); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Report: %s\n", target)
		return ExitOK
	}
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/config"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/ui/live"
)

var runAndWrite = runner.RunAndWrite

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for "+config.ConfigFileName+")")
		modelOverride := flags.String("model", "", "Model id override for all experiments")
		outputDir := flags.String("output-dir", "", "Override output directory")
		apiKey := flags.String("api-key", "", "API key (default: provider environment variable)")
		uiMode := flags.String("ui", "auto", "UI mode: auto|live|plain")
		verbose := flags.Bool("verbose", false, "Log each experiment and trial to stderr")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolvedSpec, err := resolveSpecPath(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedSpec)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		selectors, err := runner.ParseSelectors(flags.Args())
		if err != nil {
			fmt.Fprintf(stderr, "Invalid selectors: %v\n", err)
			return ExitUsage
		}
		if err := runner.ValidateSelectors(cfg, selectors); err != nil {
			fmt.Fprintf(stderr, "Invalid selectors: %v\n", err)
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		params := runner.RunParams{
			OutputDir:     *outputDir,
			ModelOverride: *modelOverride,
			APIKey:        *apiKey,
			Selectors:     selectors,
			Verbose:       *verbose,
			VerboseWriter: stderr,
			NoColor:       *noColor,
		}

		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			params.Deps.Observer = controller
		}

		results, paths, err := runAndWrite(context.Background(), cfg, params)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Run %s completed\n", results.RunID)
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		exitCode := ExitOK
		for _, experiment := range results.Experiments {
			if experiment.Status == runner.StatusError {
				fmt.Fprintf(stderr, "Experiment %s failed: %s\n", experiment.ExperimentID, experiment.Error)
				exitCode = ExitError
			}
		}
		return exitCode
	}
}

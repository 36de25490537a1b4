package report

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/analysis"
	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

const pageStyle = `body{font-family:sans-serif;margin:2rem;color:#1a1a1a}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #ccc;padding:0.4rem 0.8rem;text-align:left}
th{background:#f0f0f0}
.completed{color:#0a7d32}.error{color:#b3261e}
.meta{color:#666;font-size:0.9rem}`

// ReportPage renders a run report as an HTML page.
func ReportPage(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>Run %s</title><style>%s</style></head><body>",
			html.EscapeString(results.RunID), pageStyle); err != nil {
			return err
		}
		fmt.Fprintf(w, "<h1>Cognitive flexibility run %s</h1>", html.EscapeString(results.RunID))
		fmt.Fprintf(w, "<p class=\"meta\">Started %s, finished %s. %d experiment(s), %d trial(s).</p>",
			results.StartedAt.Format("2006-01-02 15:04:05 MST"),
			results.FinishedAt.Format("2006-01-02 15:04:05 MST"),
			results.Summary.ExperimentsTotal,
			results.Summary.TrialsTotal)

		fmt.Fprint(w, "<table><tr><th>Experiment</th><th>Type</th><th>Model</th><th>Status</th>"+
			"<th>Evaluations</th><th>Mean accuracy</th><th>Bound</th><th>Parse errors</th></tr>")
		for _, experiment := range results.Experiments {
			bound := analysis.Bound(analysis.RuleCount(experiment.Type), experiment.SwitchAfter)
			fmt.Fprintf(w,
				"<tr><td>%s</td><td>%s</td><td>%s</td><td class=\"%s\">%s</td><td>%d</td><td>%.4f</td><td>%.4f</td><td>%d</td></tr>",
				html.EscapeString(experiment.ExperimentID),
				html.EscapeString(experiment.Type),
				html.EscapeString(experiment.Model),
				html.EscapeString(experiment.Status),
				html.EscapeString(experiment.Status),
				experiment.Summary.Evaluations,
				experiment.Summary.MeanAccuracy,
				bound,
				experiment.Summary.ParseErrors)
		}
		fmt.Fprint(w, "</table>")

		for _, experiment := range results.Experiments {
			if experiment.Error == "" {
				continue
			}
			fmt.Fprintf(w, "<p class=\"error\">%s: %s</p>",
				html.EscapeString(experiment.ExperimentID), html.EscapeString(experiment.Error))
		}

		_, err := fmt.Fprint(w, "</body></html>\n")
		return err
	})
}

package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteTable renders statistics as an aligned text table.
func WriteTable(w io.Writer, stats []ModelStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EXPERIMENT\tMODEL\tRUNS\tEVALS\tACCURACY\tSTD\tMIN\tMAX\tSCORE\tTRIALS\tBOUND")
	for _, stat := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f\t%.1f\t%.4f\n",
			stat.Experiment,
			stat.Model,
			stat.Runs,
			stat.Evaluations,
			stat.MeanAccuracy,
			stat.StdAccuracy,
			stat.MinAccuracy,
			stat.MaxAccuracy,
			stat.MeanScore,
			stat.AvgTrials,
			stat.Bound,
		)
	}
	return tw.Flush()
}

// WriteCSV renders statistics as CSV with a header row.
func WriteCSV(w io.Writer, stats []ModelStats) error {
	writer := csv.NewWriter(w)
	header := []string{
		"experiment", "model", "runs", "evaluations",
		"mean_accuracy", "std_accuracy", "min_accuracy", "max_accuracy",
		"mean_score", "std_score", "avg_trials", "bound",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, stat := range stats {
		row := []string{
			stat.Experiment,
			stat.Model,
			strconv.Itoa(stat.Runs),
			strconv.Itoa(stat.Evaluations),
			formatFloat(stat.MeanAccuracy),
			formatFloat(stat.StdAccuracy),
			formatFloat(stat.MinAccuracy),
			formatFloat(stat.MaxAccuracy),
			formatFloat(stat.MeanScore),
			formatFloat(stat.StdScore),
			formatFloat(stat.AvgTrials),
			formatFloat(stat.Bound),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

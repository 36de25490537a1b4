package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/runner"
)

// formatTrialID returns the display id for a trial row.
func formatTrialID(row TrialRow) string {
	return "T" + pad2(row.Index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatStimulus truncates stimulus text for display.
func formatStimulus(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 40
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row TrialRow, noColor bool) string {
	label := statusLabel(row.Status)
	if noColor {
		return label
	}
	return statusStyle(row.Status).Render(label)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.TrialEventType) string {
	switch status {
	case runner.TrialParseError:
		return "parse error"
	case runner.TrialRuntimeError:
		return "runtime error"
	case "":
		return "pending"
	default:
		return string(status)
	}
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row TrialRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatExperimentEnd formats an experiment completion message.
func formatExperimentEnd(experimentID, status, errText string) string {
	if errText != "" {
		return "Experiment " + experimentID + " " + status + " (" + errText + ")"
	}
	return "Experiment " + experimentID + " " + status
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.TrialEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.TrialCorrect:
		color = lipgloss.Color("42")
	case runner.TrialIncorrect:
		color = lipgloss.Color("220")
	case runner.TrialParseError, runner.TrialRuntimeError:
		color = lipgloss.Color("196")
	case runner.TrialRunning:
		color = lipgloss.Color("33")
	case runner.TrialParsing:
		color = lipgloss.Color("201")
	}
	return lipgloss.NewStyle().Foreground(color)
}

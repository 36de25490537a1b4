package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the trial table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Trial", Width: 6},
		{Title: "Stimulus", Width: 28},
		{Title: "Status", Width: 16},
		{Title: "Time", Width: 8},
	}
}

// columnsForWidth widens the stimulus column on wide terminals.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	extra := width - 6 - 28 - 16 - 8 - 8
	if extra > 0 {
		columns[1].Width += extra
	}
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatTrialID(row),
			formatStimulus(row.Stimulus),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
		})
	}
	return rows
}

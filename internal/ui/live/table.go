package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the sample table layout for a standard terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives the detail column whatever width remains.
func columnsForWidth(width int) []table.Column {
	columns := []table.Column{
		{Title: "Sample", Width: 14},
		{Title: "Task", Width: 24},
		{Title: "Status", Width: 9},
		{Title: "TTFT", Width: 9},
		{Title: "E2E", Width: 9},
	}
	used := 0
	for _, column := range columns {
		used += column.Width + 2
	}
	detail := max(width-used, 12)
	return append(columns, table.Column{Title: "Detail", Width: detail})
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
			formatSampleLabel(row.Index, row.ID),
			formatTaskType(row.TaskType),
			formatStatus(row, noColor),
			formatTTFT(row),
			formatRowDuration(row, now),
			formatDetail(row),
		})
	}
	return rows
}

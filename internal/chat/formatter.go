package chat

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/incidentchat/incidentchat/internal/tickets"
)

// FormatResult renders a query result for chat display: the row count, then
// at most sampleRows rows as a plain-text table inside a fenced block.
func FormatResult(result tickets.Result, sampleRows int) string {
	if sampleRows <= 0 {
		sampleRows = 5
	}
	if len(result.Rows) == 0 {
		return "No records found."
	}

	shown := result.Rows
	if len(shown) > sampleRows {
		shown = shown[:sampleRows]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d records.\n", len(result.Rows))
	if len(result.Rows) > sampleRows {
		fmt.Fprintf(&sb, "Showing first %d records:\n", sampleRows)
	}
	sb.WriteString("```\n")
	sb.WriteString(renderTable(result.Columns, shown))
	sb.WriteString("```")
	return sb.String()
}

func renderTable(columns []string, rows [][]any) string {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, value := range row {
			if value == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprintf("%v", value)
		}
		table.Append(cells)
	}
	table.Render()
	return buf.String()
}

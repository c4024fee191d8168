package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docengine/pkg/docrun"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // STATUS, FILE, MESSAGE
	statusColumnWidth = 4
	minFileWidth     = 20
	minMessageWidth  = 35
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the outcome table.
type TableRow struct {
	File    string
	Message string
	Failed  bool
}

// TableFormatter formats run outcomes as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats a run result as a styled table.
func (t *TableFormatter) FormatTable(result *docrun.Result) string {
	rows := t.collectRows(result)
	if len(rows) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, colWidths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(colWidths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// collectRows converts a run result's file outcomes into table rows.
func (t *TableFormatter) collectRows(result *docrun.Result) []TableRow {
	if result == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		row := TableRow{File: outcome.Path}
		if outcome.Error != nil {
			row.Message = outcome.Error.Error()
			row.Failed = true
		} else {
			row.Message = outcome.Message
		}
		rows = append(rows, row)
	}
	return rows
}

type columnWidths struct {
	file    int
	message int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, message: minMessageWidth}

	for _, row := range rows {
		if len(row.File) > widths.file {
			widths.file = len(row.File)
		}
		if len(row.Message) > widths.message {
			widths.message = len(row.Message)
		}
	}

	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)

		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return statusColumnWidth + widths.file + widths.message + (tablePadding * tableColumnCount)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s ",
		statusColumnWidth, "STAT",
		widths.file, "FILE",
		widths.message, "MESSAGE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	sep := strings.Repeat(char, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	file := truncateFilePath(row.File, widths.file)
	message := truncateString(row.Message, widths.message)

	status := "OK"
	if row.Failed {
		status = "FAIL"
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s ",
		statusColumnWidth, status,
		widths.file, file,
		widths.message, message,
	)

	rowStyle := t.styles.TableErrorRow
	if !row.Failed {
		return content
	}
	return rowStyle.Render(content)
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: FAIL = error processing the file")
	}
	failSample := t.styles.TableErrorRow.Render(" FAIL ")
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error processing the file", failSample))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

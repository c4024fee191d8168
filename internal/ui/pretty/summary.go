package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/docengine/pkg/docrun"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files processed, 1 error".
func (s *Styles) FormatSummaryOneLine(stats docrun.Stats) string {
	if stats.FilesErrored == 0 {
		return s.Success.Render("All files processed") +
			s.Dim.Render(fmt.Sprintf(" (%d files)", stats.FilesProcessed)) + "\n"
	}

	errWord := "error"
	if stats.FilesErrored != 1 {
		errWord = "errors"
	}

	return fmt.Sprintf("%d files processed, %s\n",
		stats.FilesProcessed,
		s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, errWord)),
	)
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats docrun.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered: " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files processed:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:    " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Run completed with errors"))
	} else {
		builder.WriteString(s.Success.Render("Run completed successfully"))
	}
	builder.WriteString("\n")

	return builder.String()
}

package pretty

import (
	"fmt"

	"github.com/yaklabco/docengine/pkg/docrun"
)

// FormatOutcome formats a single file outcome for terminal output.
func (s *Styles) FormatOutcome(outcome docrun.FileOutcome) string {
	if outcome.Error != nil {
		return fmt.Sprintf("%s  %s  %s\n",
			s.Failure.Render("FAIL"),
			s.FilePath.Render(outcome.Path),
			s.Error.Render(outcome.Error.Error()),
		)
	}
	return fmt.Sprintf("%s  %s  %s\n",
		s.Success.Render(" OK "),
		s.FilePath.Render(outcome.Path),
		s.Message.Render(outcome.Message),
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string) string {
	return s.FilePath.Render(path)
}

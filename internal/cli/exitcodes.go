package cli

import "github.com/yaklabco/docengine/pkg/docrun"

// Exit codes for docengine.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitProcessingErrors indicates the run completed but one or more
	// files failed to process.
	ExitProcessingErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on a run result.
func ExitCodeFromResult(result *docrun.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitProcessingErrors
	}
	return ExitSuccess
}

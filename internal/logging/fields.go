// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldSchemaSource = "schema_source"
	FieldFormat       = "format"
	FieldJobs         = "jobs"

	// Import/conversion fields.
	FieldNodesImported  = "nodes_imported"
	FieldMarksResolved  = "marks_resolved"
	FieldCodeLanguage   = "code_language"
	FieldDocsProcessed  = "docs_processed"
	FieldDocsWithErrors = "docs_with_errors"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Schema fields.
	FieldNodeType   = "node_type"
	FieldMarkType   = "mark_type"
	FieldExpression = "expression"
	FieldCacheHit   = "cache_hit"
)

// Package cli provides the Cobra command structure for docengine.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docengine/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root docengine command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "docengine",
		Short: "A schema-constrained rich document engine",
		Long: `docengine builds, validates, and converts rich documents against a
node/mark schema modeled on a structured document tree: an immutable node
tree where every node's children and marks are constrained by a schema,
positions resolve to paths through that tree, and edits apply through a
structural replace over open-ended slices rather than raw text splicing.

It imports Markdown into schema-constrained documents, validates documents
against a schema, and manages compiled-schema caching.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

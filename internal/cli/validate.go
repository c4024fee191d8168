package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docengine/internal/logging"
	"github.com/yaklabco/docengine/pkg/docconfig"
	"github.com/yaklabco/docengine/pkg/docjson"
	"github.com/yaklabco/docengine/pkg/docrun"
	"github.com/yaklabco/docengine/pkg/model"
)

// ErrValidationFailures is returned when one or more documents fail
// schema validation.
var ErrValidationFailures = errors.New("validation failures found")

type validateFlags struct {
	schema string
	ignore []string
	jobs   int
	format string
}

func newValidateCommand() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate JSON documents against a schema",
		Long: `Validate JSON documents against a node/mark schema, checking that every
node type and mark is known to the schema, every node's children satisfy
its content expression, and every mark applied to a node is permitted
there.

By default validates against the schema Markdown import targets. Use
--schema to validate against a different schema document (YAML or TOML).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.schema, "schema", "builtin", "schema to validate against: \"builtin\" or a path to a YAML/TOML schema document")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, text")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, flags *validateFlags) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg := docconfig.NewConfig()
	cfg.Schema.Source = flags.schema
	cfg.Jobs = flags.jobs

	cache, err := openCache(cfg)
	if err != nil {
		return fmt.Errorf("open schema cache: %w", err)
	}

	schema, err := loadSchema(cfg, cache)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	job := func(_ context.Context, path string, _ *docconfig.Config) (string, error) {
		return validateFile(path, schema)
	}

	logger.Debug("starting validate run", "paths", args, "working_dir", workDir, "schema", flags.schema)

	result, err := docrun.New(job).Run(ctx, docrun.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   []string{".json"},
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Config:       cfg,
	})
	if err != nil {
		return fmt.Errorf("validate run failed: %w", err)
	}

	if err := reportRun(cmd, result, flags.format); err != nil {
		return err
	}

	if result.HasErrors() {
		return ErrValidationFailures
	}
	return nil
}

func validateFile(path string, schema *model.Schema) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := docjson.UnmarshalNode(data, schema)
	if err != nil {
		return "", fmt.Errorf("invalid document: %w", err)
	}

	if err := doc.Check(); err != nil {
		return "", fmt.Errorf("structural check failed: %w", err)
	}

	return fmt.Sprintf("valid, %d nodes", countNodes(doc)), nil
}

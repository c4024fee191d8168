package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docengine/internal/logging"
	"github.com/yaklabco/docengine/internal/ui/pretty"
	"github.com/yaklabco/docengine/pkg/docconfig"
	"github.com/yaklabco/docengine/pkg/docjson"
	"github.com/yaklabco/docengine/pkg/docrun"
	"github.com/yaklabco/docengine/pkg/fsutil"
	"github.com/yaklabco/docengine/pkg/mdimport"
	"github.com/yaklabco/docengine/pkg/model"
)

// ErrImportFailures is returned when one or more files failed to import.
var ErrImportFailures = errors.New("import failures found")

type importFlags struct {
	outDir string
	stdout bool
	ignore []string
	jobs   int
	format string
}

func newImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import [paths...]",
		Short: "Convert Markdown files into schema-constrained documents",
		Long: `Import Markdown files into documents constrained by the docengine
node/mark schema, writing one JSON document per input file.

By default writes each README.md to README.json alongside it. Use --out to
redirect output to a separate directory, or --stdout to print JSON to
standard output instead of writing files.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.outDir, "out", "", "write output documents under this directory instead of alongside the input")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print JSON documents to standard output instead of writing files")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, text")

	return cmd
}

func runImport(cmd *cobra.Command, args []string, flags *importFlags) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg := docconfig.NewConfig()
	cfg.Jobs = flags.jobs

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	job := func(ctx context.Context, path string, _ *docconfig.Config) (string, error) {
		return importFile(ctx, path, flags)
	}

	logger.Debug("starting import run", "paths", args, "working_dir", workDir)

	result, err := docrun.New(job).Run(ctx, docrun.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Config:       cfg,
	})
	if err != nil {
		return fmt.Errorf("import run failed: %w", err)
	}

	if err := reportRun(cmd, result, flags.format); err != nil {
		return err
	}

	if result.HasErrors() {
		return ErrImportFailures
	}
	return nil
}

func importFile(ctx context.Context, path string, flags *importFlags) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := mdimport.Import(source)
	if err != nil {
		return "", fmt.Errorf("import %s: %w", path, err)
	}

	data, err := docjson.MarshalNode(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}

	if flags.stdout {
		fmt.Println(string(data))
		return fmt.Sprintf("%d nodes", countNodes(doc)), nil
	}

	outPath := outputPath(path, flags.outDir)
	if err := fsutil.WriteAtomic(ctx, outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}

	return fmt.Sprintf("wrote %s (%d nodes)", filepath.Base(outPath), countNodes(doc)), nil
}

func outputPath(inputPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".json"
	if outDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}
	return filepath.Join(outDir, base)
}

// countNodes counts n and every descendant, including text nodes.
func countNodes(n *model.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	n.ForEach(func(child *model.Node, _, _ int) {
		count += countNodes(child)
	})
	return count
}

func reportRun(cmd *cobra.Command, result *docrun.Result, format string) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	switch format {
	case "text":
		for _, outcome := range result.Files {
			fmt.Fprint(cmd.OutOrStdout(), styles.FormatOutcome(outcome))
		}
	default:
		tf := pretty.NewTableFormatter(styles, pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()), 100)
		fmt.Fprint(cmd.OutOrStdout(), tf.FormatTable(result))
	}

	fmt.Fprint(cmd.OutOrStdout(), styles.FormatSummaryOneLine(result.Stats))
	return nil
}

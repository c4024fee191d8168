package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docengine/pkg/docconfig"
	"github.com/yaklabco/docengine/pkg/docjson"
	"github.com/yaklabco/docengine/pkg/mdimport"
	"github.com/yaklabco/docengine/pkg/model"
)

func newTreeCommand() *cobra.Command {
	var schemaSource string

	cmd := &cobra.Command{
		Use:   "tree <path>",
		Short: "Print a document's structure as a compact debug tree",
		Long: `Print a document as a compact structural tree, e.g.
doc(heading("Title"), paragraph("body"))

Markdown files (.md, .markdown) are imported first; anything else is read
as a JSON document and validated against --schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], schemaSource)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.DebugString())
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaSource, "schema", "builtin", "schema to validate JSON input against: \"builtin\" or a path to a YAML/TOML schema document")

	return cmd
}

// loadDocument reads path and builds a document node: through mdimport
// for Markdown extensions, through docjson against schemaSource for
// everything else.
func loadDocument(path, schemaSource string) (*model.Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc, err := mdimport.Import(source)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", path, err)
		}
		return doc, nil
	default:
		cfg := docconfig.NewConfig()
		cfg.Schema.Source = schemaSource

		cache, err := openCache(cfg)
		if err != nil {
			return nil, fmt.Errorf("open schema cache: %w", err)
		}
		schema, err := loadSchema(cfg, cache)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}

		doc, err := docjson.UnmarshalNode(source, schema)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return doc, nil
	}
}

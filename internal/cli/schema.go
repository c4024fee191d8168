package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docengine/pkg/docconfig"
)

func newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and configure schemas",
	}

	cmd.AddCommand(newSchemaTemplateCommand())
	cmd.AddCommand(newSchemaShowCommand())

	return cmd
}

func newSchemaTemplateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := docconfig.Template(format)
			if err != nil {
				return fmt.Errorf("generate template: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "template format: yaml, toml")

	return cmd
}

func newSchemaShowCommand() *cobra.Command {
	var schemaSource string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the node and mark types a schema defines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := docconfig.NewConfig()
			cfg.Schema.Source = schemaSource

			cache, err := openCache(cfg)
			if err != nil {
				return fmt.Errorf("open schema cache: %w", err)
			}
			schema, err := loadSchema(cfg, cache)
			if err != nil {
				return fmt.Errorf("load schema: %w", err)
			}

			nodeNames := make([]string, 0, len(schema.Nodes))
			for name := range schema.Nodes {
				nodeNames = append(nodeNames, name)
			}
			sort.Strings(nodeNames)

			markNames := make([]string, 0, len(schema.Marks))
			for name := range schema.Marks {
				markNames = append(markNames, name)
			}
			sort.Strings(markNames)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "top node: %s\n", schema.TopNodeType.Name)
			fmt.Fprintf(out, "nodes (%d):\n", len(nodeNames))
			for _, name := range nodeNames {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintf(out, "marks (%d):\n", len(markNames))
			for _, name := range markNames {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaSource, "schema", "builtin", "schema to inspect: \"builtin\" or a path to a YAML/TOML schema document")

	return cmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	var schemaSource string

	cmd := &cobra.Command{
		Use:   "resolve <path> <pos>",
		Short: "Resolve a document position and print its ancestor path",
		Long: `Resolve an absolute position within a document to a path of ancestor
nodes, printing depth, parent type, offset into the parent, and the
marks active at that position.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			doc, err := loadDocument(args[0], schemaSource)
			if err != nil {
				return err
			}

			resolved, err := doc.Resolve(pos)
			if err != nil {
				return fmt.Errorf("resolve %d: %w", pos, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pos: %d\n", resolved.Pos)
			fmt.Fprintf(out, "depth: %d\n", resolved.Depth)
			fmt.Fprintf(out, "parent: %s\n", resolved.Parent().Type.Name)
			fmt.Fprintf(out, "parentOffset: %d\n", resolved.ParentOffset)
			fmt.Fprintf(out, "textOffset: %d\n", resolved.TextOffset())

			marks := resolved.Marks()
			fmt.Fprintf(out, "marks (%d):\n", len(marks))
			for _, mark := range marks {
				fmt.Fprintf(out, "  %s\n", mark.Type.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaSource, "schema", "builtin", "schema to validate JSON input against: \"builtin\" or a path to a YAML/TOML schema document")

	return cmd
}

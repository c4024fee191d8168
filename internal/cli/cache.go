package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docengine/pkg/docstore"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the compiled-schema disk cache",
	}

	cmd.AddCommand(newCachePathCommand())
	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCachePathCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := docstore.Open(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "cache directory (defaults to $XDG_CACHE_HOME/docengine)")

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached compiled schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := dir
			if target == "" {
				resolved, err := docstore.DefaultDir()
				if err != nil {
					return fmt.Errorf("resolve cache directory: %w", err)
				}
				target = resolved
			}
			if err := os.RemoveAll(target); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "cache directory (defaults to $XDG_CACHE_HOME/docengine)")

	return cmd
}

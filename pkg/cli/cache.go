package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/funssa/internal/cache"
)

func newCacheCommand(c *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the transform cache",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(c.Err, "\n"+cmd.UsageString())
		},
	}
	cmd.AddCommand(
		newCachePruneCommand(c),
		newCacheClearCommand(c),
	)
	return cmd
}

func newCachePruneCommand(c *CLI) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove the least recently used entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("keep") {
				keep = c.cfg.Cache.MaxEntries
			}
			return withCache(cmd.Context(), c, func(ctx context.Context, db *cache.Cache) error {
				n, err := db.Prune(ctx, keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.Out, "Removed %d entries\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "Entries to keep (default: cache.max_entries)")
	return cmd
}

func newCacheClearCommand(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd.Context(), c, func(ctx context.Context, db *cache.Cache) error {
				n, err := db.Clear(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.Out, "Removed %d entries\n", n)
				return nil
			})
		},
	}
}

func withCache(ctx context.Context, c *CLI, fn func(context.Context, *cache.Cache) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := cache.Open(ctx, c.cfg.Cache.Path, 0)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}

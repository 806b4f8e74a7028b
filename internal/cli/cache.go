package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/esgready/internal/engine/cache"
)

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Evaluation cache commands"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show cache location and entry count",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := openCache()
				if err != nil {
					return err
				}
				n, err := store.Count()
				if err != nil {
					return err
				}
				cmd.Printf("Cache directory: %s\n", store.Dir())
				cmd.Printf("TTL: %s\n", store.TTL())
				cmd.Printf("Entries: %d\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Remove expired cache entries",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := openCache()
				if err != nil {
					return err
				}
				n, err := store.Prune()
				if err != nil {
					return err
				}
				cmd.Printf("Removed %d expired entries\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cache entry",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := openCache()
				if err != nil {
					return err
				}
				n, err := store.Clear()
				if err != nil {
					return err
				}
				cmd.Printf("Removed %d entries\n", n)
				return nil
			},
		},
	)
	return cmd
}

// openCache opens the configured cache directory regardless of --no-cache,
// so maintenance commands always reach it.
func openCache() (*cache.FileStore, error) {
	cfg := currentConfig()
	return cache.NewFileStore(cfg.CacheDir(), true, cfg.CacheTTL())
}

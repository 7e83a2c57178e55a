package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/session"
)

// cacheCommand manages the local cache and stored sessions.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local cache",
		Long: `Cache manages locally cached graphs, layouts, and rendered artifacts.
Cached entries expire on their own; clear removes them immediately.`,
	}

	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheClearCommand())

	return cmd
}

// cachePathCommand prints the cache directory.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir, err := cfg.CacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheClearCommand removes cached entries and expired sessions.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var sessions bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir, err := cfg.CacheDir()
			if err != nil {
				return err
			}

			removed, freed, err := clearDir(dir)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Removed %d cached file(s), freed %s", removed, formatBytes(freed))

			if sessions {
				store, err := session.NewFileStore("")
				if err != nil {
					return err
				}
				if err := store.Cleanup(cmd.Context()); err != nil {
					return fmt.Errorf("clean sessions: %w", err)
				}
				printDetail("expired sessions removed from %s", store.Path())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sessions, "sessions", false, "also remove expired viewing sessions")

	return cmd
}

// clearDir removes all regular files below dir, returning the count and
// total size of what was removed. The directory itself is kept.
func clearDir(dir string) (int, int64, error) {
	var (
		removed int
		freed   int64
	)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		freed += info.Size()
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	return removed, freed, err
}

// formatBytes renders a byte count in a human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

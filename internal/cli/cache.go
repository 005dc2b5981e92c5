package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosgame/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the render cache",
		Long: `Rendered point clouds and artifacts are cached on disk, keyed by every
option that affects the output. Use "render --no-cache" to bypass the cache
for one run or "render --refresh" to regenerate and overwrite an entry.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show how many entries the cache holds",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				n, size, err := cacheUsage(dir)
				if err != nil {
					return err
				}
				printKeyValue("Directory", dir)
				printKeyValue("Entries", fmt.Sprint(n))
				printKeyValue("Size", formatBytes(size))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached point cloud and artifact",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return fmt.Errorf("clear %s: %w", dir, err)
				}
				printSuccess("Removed %d cached entries", n)
				printDetail("Directory: %s", dir)
				return nil
			},
		},
	)
	return cmd
}

// cacheUsage counts the entries below dir and their total size. A missing
// directory is an empty cache.
func cacheUsage(dir string) (entries int, size int64, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case os.IsNotExist(err):
			return fs.SkipAll
		case err != nil:
			return err
		case d.IsDir() || filepath.Ext(path) != ".json":
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size, err
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

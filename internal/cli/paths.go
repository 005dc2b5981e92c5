package cli

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/chaosgame/pkg/cache"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
)

// cacheDir is $XDG_CACHE_HOME/chaosgame, falling back to ~/.cache/chaosgame.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}

// newCache opens the file cache, or a null cache when caching is off or no
// cache directory can be determined.
func newCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

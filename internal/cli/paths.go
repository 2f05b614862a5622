package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/shaftworks/shaftdraw/pkg/cache"
	"github.com/shaftworks/shaftdraw/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "shaftdraw"

// newRunner creates a pipeline runner for CLI use.
func newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), nil, loggerFromContext(ctx))
}

// newCache returns the CLI cache: a file cache under the user cache
// directory, or a null cache when disabled or when no directory can be
// determined. Cache setup failure never blocks rendering.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/shaftdraw/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

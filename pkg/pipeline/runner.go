package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chaosgame/pkg/cache"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Controls: opts.Controls}

	// Stage 1: Generate
	genStart := time.Now()
	cloud, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Cloud = cloud
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Points = len(cloud.Points)
	result.Stats.EmptySteps = cloud.EmptySteps
	result.Stats.Stuck = cloud.Stuck
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated points",
		"game", opts.Game,
		"points", len(cloud.Points),
		"cached", genHit,
		"duration", result.Stats.GenerateTime)
	if cloud.Stuck {
		r.Logger.Warn("attractor got stuck; no legal target remained",
			"points", len(cloud.Points),
			"requested", opts.Points)
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.renderWithCacheInfo(ctx, cloud, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.PointsHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a point cloud with caching and returns
// cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*render.Cloud, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PointsKey(opts.PointsKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cloud, err := render.UnmarshalCloud(data); err == nil {
				observability.Emit(ctx, observability.Event{Op: observability.OpCacheHit, Name: "points"})
				return cloud, true, nil
			}
			// If deserialization fails, fall through to regenerate
		}
	}
	observability.Emit(ctx, observability.Event{Op: observability.OpCacheMiss, Name: "points"})

	cloud, err := Generate(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := render.MarshalCloud(cloud); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.PointsTTL); err != nil {
			r.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Emit(ctx, observability.Event{Op: observability.OpCacheSet, Name: "points", Count: len(data)})
		}
	}

	return cloud, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*render.Cloud, error) {
	cloud, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return cloud, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cloud *render.Cloud, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.renderWithCacheInfo(ctx, cloud, opts)
	return artifacts, hit, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, cloud *render.Cloud, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	cloudData, err := render.MarshalCloud(cloud)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize points for cache key: %w", err)
	}
	pointsHash := cache.Hash(cloudData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(pointsHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Emit(ctx, observability.Event{Op: observability.OpCacheHit, Name: "artifact"})
		return artifacts, pointsHash, true, nil
	}
	observability.Emit(ctx, observability.Event{Op: observability.OpCacheMiss, Name: "artifact"})

	rendered, err := Render(ctx, cloud, opts)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(pointsHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Emit(ctx, observability.Event{Op: observability.OpCacheSet, Name: "artifact", Count: len(data)})
		}
	}

	return rendered, pointsHash, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, cloud *render.Cloud, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, cloud, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

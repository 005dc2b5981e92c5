package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chaosgame/pkg/buildinfo"
	"github.com/matzehuels/chaosgame/pkg/cache"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/server"
	"github.com/matzehuels/chaosgame/pkg/store"
)

// Record store backends.
const (
	storeMemory = "memory"
	storeFile   = "file"
	storeMongo  = "mongo"
)

const cleanupInterval = time.Hour

type serveOpts struct {
	addr      string
	redisURL  string
	keyPrefix string
	noCache   bool
	store     string
	storeDir  string
	mongoURI  string
	mongoDB   string
	recordTTL time.Duration
	batch     int
}

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve starts the HTTP API: render requests, the game catalog, stored render
records and a WebSocket stream of points.

Rendered artifacts are cached on disk by default, or in Redis with --redis.
Render records are kept in memory, on disk or in MongoDB (--store).`,
		Example: `  chaosgame serve
  chaosgame serve --addr :9000 --redis redis://localhost:6379/0
  chaosgame serve --store mongo --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	f.StringVar(&opts.redisURL, "redis", "", "Redis URL for the render cache (default: file cache)")
	f.StringVar(&opts.keyPrefix, "key-prefix", appName+":", "prefix for cache keys")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.StringVar(&opts.store, "store", storeMemory, "render record store: memory, file, mongo")
	f.StringVar(&opts.storeDir, "store-dir", "", "directory of the file store")
	f.StringVar(&opts.mongoURI, "mongo", "mongodb://localhost:27017", "MongoDB URI for the mongo store")
	f.StringVar(&opts.mongoDB, "mongo-db", appName, "MongoDB database for the mongo store")
	f.DurationVar(&opts.recordTTL, "record-ttl", store.DefaultTTL, "how long render records are kept")
	f.IntVar(&opts.batch, "batch", server.DefaultStreamBatch, "default points per stream message")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := c.Logger.WithPrefix("serve")

	cc, err := openCache(ctx, opts, logger)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, opts.keyPrefix+buildinfo.Get().Version+":"), logger)
	defer runner.Close()

	st, err := openStore(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	stats := observability.NewCounters()
	defer observability.Register(stats)()

	srv := server.New(server.Config{
		Addr:        opts.addr,
		Runner:      runner,
		Store:       st,
		RecordTTL:   opts.recordTTL,
		StreamBatch: opts.batch,
		Stats:       stats,
		Logger:      logger,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	g.Go(func() error { return cleanupLoop(ctx, st, logger) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openCache connects the configured artifact cache, retrying transient
// Redis failures.
func openCache(ctx context.Context, opts *serveOpts, logger *log.Logger) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL == "" {
		return newCache(false)
	}

	var rc *cache.RedisCache
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		rc, err = cache.NewRedisCache(ctx, opts.redisURL)
		if errors.Is(err, cache.ErrNetwork) {
			logger.Warn("redis unavailable, retrying", "err", err)
			return cache.Retryable(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("using redis cache")
	return rc, nil
}

// openStore opens the configured record store.
func openStore(ctx context.Context, opts *serveOpts, logger *log.Logger) (store.Store, error) {
	switch opts.store {
	case storeMemory:
		return store.NewMemoryStore(), nil
	case storeFile:
		fs, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file store", "dir", fs.Path())
		return fs, nil
	case storeMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		ms, err := store.NewMongoStore(connectCtx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, err
		}
		logger.Info("using mongo store", "db", opts.mongoDB)
		return ms, nil
	default:
		return nil, fmt.Errorf("unknown store %q (must be one of: memory, file, mongo)", opts.store)
	}
}

// cleanupLoop removes expired records until ctx is done.
func cleanupLoop(ctx context.Context, st store.Store, logger *log.Logger) error {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := st.Cleanup(ctx); err != nil {
				logger.Warn("record cleanup failed", "err", err)
			}
		}
	}
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaftworks/shaftdraw/internal/api"
	"github.com/shaftworks/shaftdraw/pkg/cache"
	"github.com/shaftworks/shaftdraw/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string // listen address
	noCache       bool   // disable caching entirely
	redisAddr     string // redis backend, e.g. "localhost:6379"
	redisPassword string
	redisDB       int
	mongoURI      string // mongodb backend, e.g. "mongodb://localhost:27017"
	mongoDB       string
	mongoColl     string
}

// newServeCmd creates the serve command, which runs the HTTP rendering API.
//
// Cache backend selection: --redis-addr and --mongo-uri pick a shared
// backend for multi-replica deployments; with neither set the server uses
// the same file cache as the CLI.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "redis cache address (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "mongodb cache URI (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "mongodb database name")
	cmd.Flags().StringVar(&opts.mongoColl, "mongo-collection", "cache", "mongodb collection name")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(runner, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// serveCache picks the cache backend from the serve flags.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		return cache.NewRedisCache(opts.redisAddr, opts.redisPassword, opts.redisDB)
	case opts.mongoURI != "":
		return cache.NewMongoCache(ctx, opts.mongoURI, opts.mongoDB, opts.mongoColl)
	default:
		return newCache(false), nil
	}
}

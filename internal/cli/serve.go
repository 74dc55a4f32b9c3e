package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panelfit/internal/server"
	"github.com/matzehuels/panelfit/pkg/cache"
	"github.com/matzehuels/panelfit/pkg/observability"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/store"
)

const connectTimeout = 10 * time.Second

type serveOpts struct {
	addr      string
	redisAddr string
	redisDB   int
	scope     string
	mongoURI  string
	mongoDB   string
	storeDir  string
	noStore   bool
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Layouts are cached in Redis when --redis is given (password from
PANELFIT_REDIS_PASSWORD), otherwise in the local file cache. Saved layouts go to MongoDB when --mongo is given, otherwise to JSON
files under --store-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared layout cache (host:port)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.scope, "cache-scope", "", "prefix for cache keys, to share one Redis between deployments")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB connection URI for saved layouts")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", store.DefaultDatabase, "MongoDB database name")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for saved layouts (default $XDG_DATA_HOME/panelfit/layouts)")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "disable saved layouts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	base, err := c.baseOptions()
	if err != nil {
		return err
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	ch, cacheDesc, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.scope != "" {
		keyer = cache.NewScopedKeyer(nil, opts.scope+":")
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	defer runner.Close()

	st, storeDesc, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	printSuccess("Starting %s API", appName)
	printKeyValue("address", opts.addr)
	printKeyValue("cache", cacheDesc)
	printKeyValue("store", storeDesc)
	printNewline()

	srv := server.New(server.Config{
		Runner:  runner,
		Store:   st,
		Options: base,
		Logger:  c.Logger.WithPrefix("http"),
	})
	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, string, error) {
	if opts.noCache {
		return cache.NewNullCache(), "disabled", nil
	}
	if opts.redisAddr == "" {
		ch, err := newCache(false)
		if err != nil {
			return nil, "", err
		}
		if fc, ok := ch.(*cache.FileCache); ok {
			return ch, fc.Dir(), nil
		}
		return ch, "disabled", nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	rc, err := cache.NewRedisCache(connectCtx, cache.RedisConfig{
		Addr:     opts.redisAddr,
		Password: os.Getenv("PANELFIT_REDIS_PASSWORD"),
		DB:       opts.redisDB,
		Prefix:   appName + ":",
	})
	if err != nil {
		return nil, "", err
	}
	return rc, "redis://" + opts.redisAddr, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, string, error) {
	if opts.noStore {
		return nil, "disabled", nil
	}
	if opts.mongoURI == "" {
		fs, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, "", err
		}
		return fs, fs.Path(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	ms, err := store.NewMongoStore(connectCtx, opts.mongoURI, opts.mongoDB)
	if err != nil {
		return nil, "", err
	}
	return ms, "mongodb/" + opts.mongoDB, nil
}

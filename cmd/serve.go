package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"dex-wiki/core/loader"
	"dex-wiki/core/logger"
	"dex-wiki/core/middleware/auth"
	"dex-wiki/core/middleware/rayid"
	"dex-wiki/core/storage"
	"dex-wiki/feature/catalog"
	"dex-wiki/feature/datasync"
	"dex-wiki/feature/records"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 10 * time.Second
)

var catalogTTL time.Duration

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Starts the HTTP server exposing records, cache controls, reverse indexes and metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()
		logg := d.logger

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if d.cfg.Server.PreloadOnStart {
			if _, err := d.store.Preload(ctx); err != nil {
				return fmt.Errorf("preload failed: %w", err)
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Debug("Request served", fields...)
			return nil
		})

		var public []string
		if d.cfg.Server.Metrics {
			d.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			app.Get(metricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))
			public = append(public, metricsPath)
		}
		app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey, Public: public}))

		cat := catalog.New(d.store, logg.Named("catalog"), catalogTTL)
		mgr := loader.NewManager(logg)
		mgr.Register(records.NewFeature(d.store, logg.Named("records"), cat.Invalidate))
		mgr.Register(catalog.NewFeature(cat))
		if d.cfg.Sync.Enabled {
			client, err := storage.NewClient(d.cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			mgr.Register(datasync.NewFeature(client, d.cfg.Storage.Bucket, d.cfg.Sync, d.store.DataDir(), logg.Named("sync"), clearAll{d.store, cat}))
		}
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server",
				zap.String("addr", d.cfg.Server.Address()),
				zap.String("data_dir", d.store.DataDir()),
				zap.Strings("features", mgr.Features()),
			)
			errCh <- app.Listen(d.cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(shutdownTimeout)
	},
}

// clearAll drops the record cache and the indexes derived from it.
type clearAll struct {
	store interface{ ClearCache() }
	cat   *catalog.Catalog
}

func (c clearAll) ClearCache() {
	c.store.ClearCache()
	c.cat.Invalidate()
}

func init() {
	serveCmd.Flags().DurationVar(&catalogTTL, "catalog-ttl", 0, "rebuild reverse indexes after this long (0 keeps them until the cache is cleared)")
	RootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"fmt"

	"dex-wiki/core/config"
	"dex-wiki/core/logger"
	"dex-wiki/core/store"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deps is what every command needs: configuration, a logger tagged with the
// run, and a store reporting to a private metrics registry.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	registry *prometheus.Registry
}

func bootstrap(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDirFlag != "" {
		cfg.Data.Dir = dataDirFlag
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logg = logg.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("command", cmd.Name()),
	)

	reg := prometheus.NewRegistry()
	st, err := store.New(cfg.Data, logg.Named("store"), store.WithMetrics(store.NewMetrics(reg)))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return &deps{cfg: cfg, logger: logg, store: st, registry: reg}, nil
}

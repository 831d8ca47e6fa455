package cli

import (
	"context"
	"fmt"
	"log/slog"

	"datadict/internal/store"
	_ "datadict/internal/store/dialects"
	"datadict/pkg/config"
)

// openStore returns the store the editor reads and writes: the demo store,
// or a database connection built from the database settings.
func openStore(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (store.Store, error) {
	if cfg.Demo {
		logger.Info("demo mode, dictionary held in memory", "dataset", DemoDataset)
		return demoStore(), nil
	}
	return openSQL(ctx, cfg, logger)
}

func openSQL(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*store.SQL, error) {
	driver, dsn, err := config.BuildDriverAndDSN(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("error building DSN: %w", err)
	}
	s, err := store.Open(ctx, driver, dsn, store.Options{
		Timeout:   cfg.Storage.Timeout,
		BatchRows: cfg.Storage.BatchSize,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", "driver", driver)
	return s, nil
}

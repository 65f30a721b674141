package cmd

import (
	"context"
	"fmt"

	"mods-merger/core/audit"
	"mods-merger/core/config"
	"mods-merger/core/database"
	"mods-merger/core/storage"
	"mods-merger/core/vanilla"
	"mods-merger/feature/merging"

	"go.uber.org/zap"
)

// newService wires the merge service from configuration.
// Storage and the database are optional; failures to reach them are warnings.
func newService(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*merging.Service, error) {
	var client storage.Client
	if cfg.Storage.Enabled {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}

	src, err := vanilla.New(cfg.Vanilla, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create vanilla source: %w", err)
	}
	var vanillaSource vanilla.Source = src
	if _, none := src.(vanilla.None); none {
		vanillaSource = nil
		logg.Info("No vanilla source configured, merging without reference")
	}

	store := openStore(ctx, cfg, logg)

	return merging.NewService(cfg.Merge, vanillaSource, client, cfg.Storage, store, logg), nil
}

// openStore connects and migrates the audit database, nil when disabled or unreachable.
func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) *audit.Store {
	if !cfg.Database.Enabled {
		return nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	store := audit.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		logg.Warn("Audit tables unavailable", zap.Error(err))
		return nil
	}
	logg.Info("Connected to audit database", zap.String("driver", cfg.Database.Driver))
	return store
}

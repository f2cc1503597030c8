package cmd

import (
	"context"
	"log/slog"

	"github.com/gnames/bookshelf/internal/iodb"
	"github.com/gnames/bookshelf/pkg/config"
	"github.com/gnames/bookshelf/pkg/db"
)

// connect opens the database described by the loaded configuration.
func connect(ctx context.Context, cfg *config.Config) (db.Operator, error) {
	op := iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	slog.Info("Connected to database",
		"driver", cfg.Database.Driver,
		"target", dbTarget(cfg),
	)
	return op, nil
}

// requireSchema fails when the database has no tables yet.
func requireSchema(ctx context.Context, op db.Operator) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(dbTarget(cfg))
	}
	return nil
}

func dbTarget(cfg *config.Config) string {
	d := cfg.Database
	if d.Driver == "sqlite" {
		return d.Path
	}
	return d.User + "@" + d.Host + "/" + d.Database
}

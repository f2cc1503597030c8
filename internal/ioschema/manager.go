// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/db"
	"github.com/gnames/bookshelf/pkg/schema"
)

// manager implements the catalog.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) catalog.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema using GORM AutoMigrate,
// including the unique index on author names.
func (m *manager) Create(ctx context.Context) error {
	gormDB := m.operator.GORM()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	slog.Info("Schema created", "driver", m.operator.Driver(),
		"models", len(schema.AllModels()))
	return nil
}

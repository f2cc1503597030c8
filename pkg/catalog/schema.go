// Package catalog defines the contracts of the author catalog.
// Implementations live in internal/io* packages.
package catalog

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the database schema using GORM AutoMigrate.
	// Existing tables must be dropped by the caller beforehand if
	// a clean start is required.
	Create(ctx context.Context) error
}

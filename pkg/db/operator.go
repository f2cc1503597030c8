package db

import (
	"context"

	"github.com/gnames/bookshelf/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a *gorm.DB for
// higher-level components (SchemaManager, AuthorStore) that run their own
// queries.
type Operator interface {
	// Connect opens a connection to the database selected by
	// DatabaseConfig.Driver.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// GORM returns the handle used by schema and store components.
	// It is nil until Connect succeeds.
	GORM() *gorm.DB

	// Driver returns the name of the connected backend.
	Driver() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

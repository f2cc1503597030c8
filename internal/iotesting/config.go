// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/bookshelf/internal/iodb"
	"github.com/gnames/bookshelf/pkg/config"
	"github.com/gnames/bookshelf/pkg/db"
	"github.com/gnames/bookshelf/pkg/schema"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "bookshelf_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Defaults are overridden by BOOKSHELF_DATABASE_* environment variables,
// the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("BOOKSHELF")
	v.AutomaticEnv()

	cfg := config.New()
	var opts []config.Option
	if s := v.GetString("database_host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database_port"); i > 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database_user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database_password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := v.GetString("database_ssl_mode"); s != "" {
		opts = append(opts, config.OptDatabaseSSLMode(s))
	}
	opts = append(opts,
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	)
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// PostgresOperator connects to the PostgreSQL test database. The test is
// skipped in short mode or when the database cannot be reached.
func PostgresOperator(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, GetTestDatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL %s is not available: %v", TestDatabaseName, err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}

// SQLiteConfig returns a configuration that points to a fresh SQLite
// file inside the test's temporary directory.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(filepath.Join(dir, "bookshelf_test.sqlite")),
	})
	return cfg
}

// SQLiteOperator returns a connected operator over a temporary SQLite
// database with the schema already migrated.
func SQLiteOperator(t *testing.T) db.Operator {
	t.Helper()
	cfg := SQLiteConfig(t)

	op := iodb.NewOperator()
	if err := op.Connect(context.Background(), &cfg.Database); err != nil {
		t.Fatalf("Failed to open SQLite test database: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := schema.Migrate(op.GORM()); err != nil {
		t.Fatalf("Failed to migrate SQLite test database: %v", err)
	}
	return op
}

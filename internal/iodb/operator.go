// Package iodb implements database operations on top of GORM.
// PostgreSQL connections go through a pgxpool, SQLite connections
// use the pure Go modernc driver.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/bookshelf/pkg/config"
	"github.com/gnames/bookshelf/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// operator implements db.Operator interface.
type operator struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// NewOperator creates a new database operator
// (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// Connect opens the database selected by cfg.Driver and verifies
// the connection.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	switch cfg.Driver {
	case "postgres", "":
		return o.connectPostgres(ctx, cfg)
	case "sqlite":
		return o.connectSQLite(ctx, cfg)
	default:
		return UnsupportedDriverError(cfg.Driver)
	}
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := postgresDSN(cfg)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.driver = "postgres"
	o.pool = pool
	o.sqlDB = sqlDB
	o.gormDB = gormDB
	return nil
}

// postgresDSN builds a connection URL. Credentials are escaped, so
// passwords may contain '@', '/' or ':'.
func postgresDSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func (o *operator) connectSQLite(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return SQLiteConnectionError(path, err)
	}
	// SQLite allows one writer at a time, and every connection to
	// ":memory:" would get its own empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteConnectionError(path, err)
	}

	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		return SQLiteConnectionError(path, err)
	}

	o.driver = "sqlite"
	o.sqlDB = sqlDB
	o.gormDB = gormDB
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

// Close releases all database connections.
func (o *operator) Close() error {
	var err error
	if o.sqlDB != nil {
		err = o.sqlDB.Close()
	}
	if o.pool != nil {
		o.pool.Close()
	}
	o.sqlDB, o.pool, o.gormDB = nil, nil, nil
	return err
}

// GORM returns the GORM handle of the connection.
func (o *operator) GORM() *gorm.DB {
	return o.gormDB
}

// Driver returns "postgres" or "sqlite" after a successful Connect.
func (o *operator) Driver() string {
	return o.driver
}

// TableExists checks if a table exists in the current
// database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.gormDB == nil {
		return false, NotConnectedError()
	}

	tables, err := o.tables(ctx)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	for _, v := range tables {
		if v == tableName {
			return true, nil
		}
	}
	return false, nil
}

// HasTables checks if the database has any user tables.
func (o *operator) HasTables(ctx context.Context) (bool, error) {
	if o.gormDB == nil {
		return false, NotConnectedError()
	}

	tables, err := o.tables(ctx)
	if err != nil {
		return false, TableCheckError(err)
	}

	return len(tables) > 0, nil
}

// DropAllTables drops all user tables.
func (o *operator) DropAllTables(ctx context.Context) error {
	if o.gormDB == nil {
		return NotConnectedError()
	}

	tables, err := o.tables(ctx)
	if err != nil {
		return TableCheckError(err)
	}

	m := o.gormDB.WithContext(ctx).Migrator()
	for _, table := range tables {
		if err := m.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}

func (o *operator) tables(ctx context.Context) ([]string, error) {
	all, err := o.gormDB.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(all))
	for _, v := range all {
		// internal bookkeeping tables of SQLite
		if strings.HasPrefix(v, "sqlite_") {
			continue
		}
		res = append(res, v)
	}
	return res, nil
}

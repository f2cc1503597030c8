package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/bookshelf/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for PostgreSQL connection failures.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d/%s</em> as <em>%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database <em>%s</em> does not exist
  - Wrong credentials in ~/.config/bookshelf/config.yaml

<em>How to fix:</em>
  1. Check the server with <em>pg_isready</em>
  2. Create the database with <em>createdb</em>
  3. Review BOOKSHELF_DATABASE_* environment variables`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user, database},
		Err: fmt.Errorf(
			"failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteConnectionError creates an error for SQLite open failures.
func SQLiteConnectionError(path string, err error) error {
	msg := `Cannot open SQLite database <em>%s</em>

<em>How to fix:</em>
  1. Make sure the directory exists and is writable
  2. Set BOOKSHELF_DATABASE_PATH to another location`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// UnsupportedDriverError creates an error for unknown database drivers.
func UnsupportedDriverError(driver string) error {
	msg := "Database driver <em>%s</em> is not supported, " +
		"use <em>postgres</em> or <em>sqlite</em>"

	return &gn.Error{
		Code: errcode.DBUnsupportedDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unsupported database driver %q", driver),
	}
}

// TableCheckError creates an error for when checking tables fails.
func TableCheckError(err error) error {
	msg := "Cannot verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// EmptyDatabaseError creates an error for a database without schema.
func EmptyDatabaseError(target string) error {
	msg := `<err>Database <em>%s</em> appears to be empty.</err>
   Run <em>'bookshelf create'</em> first to initialize the schema.`

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{target},
		Err:  errors.New("database has no tables"),
	}
}

// NotConnectedError creates an error for operations attempted
// before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  errors.New("not connected to database"),
	}
}

// TableExistsCheckError creates an error for a failed table lookup.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// DropTableError creates an error for a failed DROP TABLE.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

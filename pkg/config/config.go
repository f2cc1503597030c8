// Package config provides configuration management for bookshelf.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     path, batch_size
//   - Server: port, page_size
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Populate.WithProgress (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BOOKSHELF_ prefix with underscores for nesting:
//
//	BOOKSHELF_DATABASE_DRIVER=sqlite
//	BOOKSHELF_DATABASE_PATH=/tmp/bookshelf.sqlite
//	BOOKSHELF_SERVER_PORT=8000
//	BOOKSHELF_LOG_LEVEL=info
//
// A .env file in the working directory is loaded before the environment is
// read.
package config

// Config represents the complete bookshelf configuration.
type Config struct {
	// Database contains connection settings for the author storage.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Server contains settings of the REST API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Populate contains settings specific to the populate-authors command.
	Populate PopulateConfig `mapstructure:"populate" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver selects the database backend.
	// Valid values: "postgres", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the location of the SQLite database file. When empty,
	// DataDir(HomeDir)/bookshelf.sqlite is used.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize is the number of rows sent in one INSERT statement
	// during bulk creation of authors.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ServerConfig contains settings of the REST API.
type ServerConfig struct {
	// Port the HTTP server listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// PageSize is the number of authors returned in one page of results.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

// PopulateConfig contains settings specific to the populate-authors command.
type PopulateConfig struct {
	// WithProgress shows a progress bar while the CSV file is read.
	WithProgress bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "postgres",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "bookshelf",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Server: ServerConfig{
			Port:     8000,
			PageSize: 10,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// SQLitePath returns the SQLite database file location.
func (c *Config) SQLitePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return SQLiteFilePath(c.HomeDir)
}

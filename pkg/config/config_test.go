package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/bookshelf/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "bookshelf"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "bookshelf"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "bookshelf", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "bookshelf", "config.yaml"),
		},
		{
			msg: "sqlite file",
			fn:  config.SQLiteFilePath,
			res: filepath.Join(tempHome, ".local", "share", "bookshelf",
				"bookshelf.sqlite"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "bookshelf", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "", cfg.Database.Path)
		assert.Equal(t, 1_000, cfg.Database.BatchSize)

		// Server defaults
		assert.Equal(t, 8000, cfg.Server.Port)
		assert.Equal(t, 10, cfg.Server.PageSize)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.False(t, cfg.Populate.WithProgress)
	})
}

func TestSQLitePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/reader")})
	assert.Equal(t,
		filepath.Join("/home/reader", ".local", "share", "bookshelf",
			"bookshelf.sqlite"),
		cfg.SQLitePath(),
	)

	cfg.Update([]config.Option{config.OptDatabasePath("/tmp/lib.sqlite")})
	assert.Equal(t, "/tmp/lib.sqlite", cfg.SQLitePath())
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets sqlite",
			input:    "sqlite",
			expected: "sqlite",
		},
		{
			name:     "normalizes case and spaces",
			input:    "  SQLite ",
			expected: "sqlite",
		},
		{
			name:     "ignores unknown driver",
			input:    "mysql",
			expected: "postgres",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "postgres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseDriver(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionPorts(t *testing.T) {
	tests := []struct {
		name       string
		input      int
		expectedDB int
		expectedWS int
	}{
		{
			name:       "sets valid port",
			input:      3306,
			expectedDB: 3306,
			expectedWS: 3306,
		},
		{
			name:       "ignores zero",
			input:      0,
			expectedDB: 5432,
			expectedWS: 8000,
		},
		{
			name:       "ignores negative",
			input:      -100,
			expectedDB: 5432,
			expectedWS: 8000,
		},
		{
			name:       "ignores port out of range",
			input:      70000,
			expectedDB: 5432,
			expectedWS: 8000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptDatabasePort(tt.input),
				config.OptServerPort(tt.input),
			})
			assert.Equal(t, tt.expectedDB, cfg.Database.Port)
			assert.Equal(t, tt.expectedWS, cfg.Server.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "sets valid ssl mode - verify-full",
			input:    "verify-full",
			expected: "verify-full",
		},
		{
			name:     "normalizes to lowercase",
			input:    "REQUIRE",
			expected: "require",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLog(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptLogLevel("DEBUG")})
		assert.Equal(t, "debug", cfg.Log.Level)
		cfg.Update([]config.Option{config.OptLogLevel("trace")})
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("format", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptLogFormat("tint")})
		assert.Equal(t, "tint", cfg.Log.Format)
		cfg.Update([]config.Option{config.OptLogFormat("xml")})
		assert.Equal(t, "tint", cfg.Log.Format)
	})

	t.Run("destination", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptLogDestination("stderr")})
		assert.Equal(t, "stderr", cfg.Log.Destination)
		cfg.Update([]config.Option{config.OptLogDestination("stdin")})
		assert.Equal(t, "stderr", cfg.Log.Destination)
	})
}

func TestOptionPositiveInts(t *testing.T) {
	tests := []struct {
		name      string
		input     int
		batchSize int
		pageSize  int
	}{
		{
			name:      "sets valid values",
			input:     25,
			batchSize: 25,
			pageSize:  25,
		},
		{
			name:      "ignores zero",
			input:     0,
			batchSize: 1_000,
			pageSize:  10,
		},
		{
			name:      "ignores negative",
			input:     -1000,
			batchSize: 1_000,
			pageSize:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptDatabaseBatchSize(tt.input),
				config.OptServerPageSize(tt.input),
			})
			assert.Equal(t, tt.batchSize, cfg.Database.BatchSize)
			assert.Equal(t, tt.pageSize, cfg.Server.PageSize)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseDriver("sqlite"),
			config.OptDatabasePath("/tmp/authors.sqlite"),
			config.OptDatabaseUser("myuser"),
			config.OptLogLevel("debug"),
			config.OptServerPageSize(50),
		}

		cfg.Update(opts)

		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "/tmp/authors.sqlite", cfg.Database.Path)
		assert.Equal(t, "myuser", cfg.Database.User)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 50, cfg.Server.PageSize)

		// Unchanged fields keep defaults
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptDatabaseDriver("sqlite"),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabasePath("/var/lib/bookshelf.sqlite"),
			config.OptDatabaseBatchSize(10000),
			config.OptServerPort(9090),
			config.OptServerPageSize(20),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
		}
		original.Update(opts)

		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Server, newCfg.Server)
		assert.Equal(t, original.Log, newCfg.Log)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptPopulateWithProgress(true),
		})

		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		assert.Equal(t, "", newCfg.HomeDir)
		assert.False(t, newCfg.Populate.WithProgress)
	})
}

package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "bookshelf"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/bookshelf by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for application data.
// Returns ~/.local/share/bookshelf by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/bookshelf/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/bookshelf/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLiteFilePath returns the default location of the SQLite database.
func SQLiteFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), AppName+".sqlite")
}

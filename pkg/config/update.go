package config

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Populate).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.Driver
	if s != "" {
		res = append(res, OptDatabaseDriver(s))
	}
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	s = c.Database.Path
	if s != "" {
		res = append(res, OptDatabasePath(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	i = c.Server.Port
	if i > 0 {
		res = append(res, OptServerPort(i))
	}
	i = c.Server.PageSize
	if i > 0 {
		res = append(res, OptServerPageSize(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

var enums = map[string][]string{
	"Database.Driver":  {"postgres", "sqlite"},
	"Database.SSLMode": {"disable", "require", "verify-ca", "verify-full"},
	"Log.Level":        {"debug", "error", "info", "warn"},
	"Log.Format":       {"json", "text", "tint"},
	"Log.Destination":  {"file", "stderr", "stdout"},
}

func isValidString(name, s string) bool {
	err := validation.Validate(s, validation.Required)
	if err != nil {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return err == nil
}

func isValidInt(name string, i int) bool {
	err := validation.Validate(i, validation.Required, validation.Min(1))
	if err != nil {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return err == nil
}

func isValidPort(name string, i int) bool {
	err := validation.Validate(
		i, validation.Required, validation.Min(1), validation.Max(65535),
	)
	if err != nil {
		gn.Warn("<em>%s</em> must be between 1 and 65535, ignoring %d", name, i)
	}
	return err == nil
}

func isValidEnum(name, val string) bool {
	vals := enums[name]
	in := make([]any, len(vals))
	for i := range vals {
		in[i] = vals[i]
	}
	err := validation.Validate(val, validation.Required, validation.In(in...))
	if err == nil {
		return true
	}

	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}

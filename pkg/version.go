// Package bookshelf holds build information of the application.
package bookshelf

var (
	// Version of bookshelf, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)

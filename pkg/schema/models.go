// Package schema defines the database models of bookshelf.
package schema

// Author is a person credited with writing books in the catalog.
// The name is unique across the table, bulk imports rely on it to
// skip authors that are already present.
type Author struct {
	// ID is assigned by the database.
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Name of the author, trimmed of surrounding whitespace.
	Name string `gorm:"type:varchar(255);not null;uniqueIndex:idx_authors_name" json:"name"`
}

// TableName overrides the default table name.
func (Author) TableName() string {
	return "authors"
}

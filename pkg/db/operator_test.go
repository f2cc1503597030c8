package db_test

import (
	"testing"

	"github.com/gnames/bookshelf/internal/iodb"
	"github.com/gnames/bookshelf/pkg/db"
)

// TestOperatorImplementsInterface verifies that the GORM operator
// implements the db.Operator interface.
func TestOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewOperator()
}

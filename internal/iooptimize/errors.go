package iooptimize

import (
	"errors"
	"fmt"

	"github.com/gnames/bookshelf/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when Optimize is called before the
// operator is connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database not connected",
		Err:  errors.New("optimize called without database connection"),
	}
}

// VacuumError is returned when VACUUM fails.
func VacuumError(err error) error {
	msg := `Cannot vacuum database

<em>How to fix:</em>
  1. Make sure no other bookshelf process holds the database
  2. Check that the database user owns the authors table`

	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to run VACUUM: %w", err),
	}
}

// AnalyzeError is returned when ANALYZE fails.
func AnalyzeError(err error) error {
	return &gn.Error{
		Code: errcode.OptimizeAnalyzeError,
		Msg:  "Cannot update database statistics",
		Err:  fmt.Errorf("failed to run ANALYZE: %w", err),
	}
}

// Package iooptimize implements the Optimizer interface. It runs
// database maintenance statements for the active driver.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/db"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"gorm.io/gorm"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	operator db.Operator
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator) catalog.Optimizer {
	return &optimizer{
		operator: op,
	}
}

// Optimize executes 2 sequential steps:
//  1. VACUUM to reclaim space left by dropped or replaced rows
//  2. ANALYZE to update statistics used by the query planner
func (o *optimizer) Optimize(ctx context.Context) error {
	gormDB := o.operator.GORM()
	if gormDB == nil {
		return NotConnectedError()
	}
	tx := gormDB.WithContext(ctx)

	slog.Info("Starting database optimization",
		"driver", o.operator.Driver())
	timeStart := time.Now()

	slog.Info("Step 1/2: Vacuum")
	if err := vacuum(tx); err != nil {
		return err
	}

	slog.Info("Step 2/2: Analyze")
	if err := analyze(tx); err != nil {
		return err
	}

	elapsed := gnfmt.TimeString(time.Since(timeStart).Seconds())
	slog.Info("Database optimization completed", "duration", elapsed)
	gn.Info("Database optimized in <em>%s</em>", elapsed)
	return nil
}

// vacuum cannot run inside a transaction block, GORM executes raw
// statements outside one.
func vacuum(tx *gorm.DB) error {
	if err := tx.Exec("VACUUM").Error; err != nil {
		slog.Error("Failed to run VACUUM", "error", err)
		return VacuumError(err)
	}
	return nil
}

func analyze(tx *gorm.DB) error {
	if err := tx.Exec("ANALYZE").Error; err != nil {
		slog.Error("Failed to run ANALYZE", "error", err)
		return AnalyzeError(err)
	}
	return nil
}

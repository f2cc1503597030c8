package catalog

import "context"

// Optimizer performs database maintenance after large imports.
type Optimizer interface {
	// Optimize reclaims storage and refreshes query planner statistics.
	// It is safe to run at any time.
	Optimize(ctx context.Context) error
}

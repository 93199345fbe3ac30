package driving

import (
	"context"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
)

// CycleResult reports what a cycle resolution run did.
type CycleResult struct {
	// Resolution is the decision taken on the stored cycle dates.
	Resolution domain.Resolution

	// CreatedFiles lists the cycle notes created this run.
	CreatedFiles []string
}

// CycleResolver drives the six-week-cycle and cooling-period automation.
type CycleResolver interface {
	// Resolve reconciles the stored cycle dates for today and ensures the
	// cycle notes exist in the vault.
	Resolve(ctx context.Context, today time.Time) (*CycleResult, error)
}

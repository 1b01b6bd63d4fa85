package repo_interfaces

import (
	"context"

	"github.com/api-sage/minibank-core/internal/domain"
)

type SequenceRepository interface {
	// NextNumber atomically increments the named counter and returns the
	// new value. No two callers ever observe the same increment.
	NextNumber(ctx context.Context, sequenceName, prefix string) (int64, error)
	// Current returns the counter row as it stands; a counter that has
	// never issued a value reads as zero.
	Current(ctx context.Context, sequenceName string) (domain.SequenceCounter, error)
	Reset(ctx context.Context, sequenceName string, startNumber int64) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

type SequenceRepository struct {
	db *sql.DB
}

func NewSequenceRepository(db *sql.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextNumber performs the read-increment-write as one atomic statement, so
// concurrent callers serialize on the counter row and each receives a
// distinct value. The increment commits independently of any business
// transaction: a caller that later rolls back leaves a gap, never a
// duplicate.
func (r *SequenceRepository) NextNumber(ctx context.Context, sequenceName, prefix string) (int64, error) {
	const query = `
INSERT INTO sequence_counters (sequence_name, prefix, last_number)
VALUES ($1, $2, 1)
ON CONFLICT (sequence_name)
DO UPDATE SET last_number = sequence_counters.last_number + 1,
              updated_at = NOW()
RETURNING last_number`

	var next int64
	if err := r.db.QueryRowContext(ctx, query, sequenceName, prefix).Scan(&next); err != nil {
		logger.Error("sequence repository next number failed", err, logger.Fields{
			"sequenceName": sequenceName,
		})
		return 0, fmt.Errorf("next sequence number for %q: %w", sequenceName, mapConcurrencyError(err))
	}

	return next, nil
}

func (r *SequenceRepository) Current(ctx context.Context, sequenceName string) (domain.SequenceCounter, error) {
	const query = `
SELECT sequence_name, prefix, last_number, created_at, updated_at
FROM sequence_counters
WHERE sequence_name = $1`

	var counter domain.SequenceCounter
	if err := r.db.QueryRowContext(ctx, query, sequenceName).Scan(
		&counter.SequenceName,
		&counter.Prefix,
		&counter.LastNumber,
		&counter.CreatedAt,
		&counter.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SequenceCounter{SequenceName: sequenceName}, nil
		}
		return domain.SequenceCounter{}, fmt.Errorf("current sequence counter for %q: %w", sequenceName, err)
	}

	return counter, nil
}

func (r *SequenceRepository) Reset(ctx context.Context, sequenceName string, startNumber int64) error {
	const query = `
UPDATE sequence_counters
SET last_number = $2,
    updated_at = NOW()
WHERE sequence_name = $1`

	result, err := r.db.ExecContext(ctx, query, sequenceName, startNumber)
	if err != nil {
		logger.Error("sequence repository reset failed", err, logger.Fields{
			"sequenceName": sequenceName,
		})
		return fmt.Errorf("reset sequence %q: %w", sequenceName, mapConcurrencyError(err))
	}

	return requireOneRow(result, "reset sequence")
}

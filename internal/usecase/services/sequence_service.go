package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

// conflictRetryAttempts bounds automatic retries of transient lock and
// serialization failures before they surface to the caller.
const conflictRetryAttempts = 3

type SequenceService struct {
	sequenceRepo repo_interfaces.SequenceRepository
}

func NewSequenceService(sequenceRepo repo_interfaces.SequenceRepository) *SequenceService {
	return &SequenceService{sequenceRepo: sequenceRepo}
}

func (s *SequenceService) NextValue(ctx context.Context, counterName, prefix string) (string, error) {
	counterName = strings.TrimSpace(counterName)
	prefix = strings.TrimSpace(prefix)

	var number int64
	err := withConflictRetry(ctx, func() error {
		var inner error
		number, inner = s.sequenceRepo.NextNumber(ctx, counterName, prefix)
		return inner
	})
	if err != nil {
		logger.Error("sequence service next value failed", err, logger.Fields{
			"counterName": counterName,
		})
		return "", err
	}

	value := domain.FormatSequence(prefix, number)
	logger.Info("sequence service issued value", logger.Fields{
		"counterName": counterName,
		"value":       value,
	})
	return value, nil
}

func (s *SequenceService) CurrentNumber(ctx context.Context, counterName string) (int64, error) {
	counter, err := s.sequenceRepo.Current(ctx, strings.TrimSpace(counterName))
	if err != nil {
		return 0, err
	}
	return counter.LastNumber, nil
}

func (s *SequenceService) Reset(ctx context.Context, counterName string, startNumber int64) error {
	return s.sequenceRepo.Reset(ctx, strings.TrimSpace(counterName), startNumber)
}

// withConflictRetry re-runs fn on ErrConcurrencyConflict. Retrying is safe
// for counter allocation and row-locked mutations: an attempt either
// commits fully or leaves nothing behind.
func withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < conflictRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

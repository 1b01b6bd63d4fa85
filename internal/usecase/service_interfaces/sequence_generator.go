package service_interfaces

import "context"

type SequenceGenerator interface {
	// NextValue issues the next business identifier for the named counter,
	// formatted as prefix + zero-padded increment. Values are unique and
	// increasing; gaps may exist, duplicates never.
	NextValue(ctx context.Context, counterName, prefix string) (string, error)
	CurrentNumber(ctx context.Context, counterName string) (int64, error)
	Reset(ctx context.Context, counterName string, startNumber int64) error
}

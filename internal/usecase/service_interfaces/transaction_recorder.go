package service_interfaces

import (
	"context"
	"database/sql"
	"time"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/shopspring/decimal"
)

// RecordInput describes one ledger entry to be written alongside the
// balance mutation it mirrors. Account must already carry the
// post-mutation balance when Record is called.
type RecordInput struct {
	Account              domain.Account
	TransactionType      domain.TransactionType
	Amount               decimal.Decimal
	BalanceBefore        decimal.Decimal
	Description          string
	ReferenceNumber      string
	Channel              domain.TransactionChannel
	DestinationAccountID *string
	ActingUser           string
	When                 time.Time
}

type TransactionRecorder interface {
	// Record must run inside the same transaction as the paired balance
	// mutation so the stored balance_after always equals the account's
	// actual post-mutation balance.
	Record(ctx context.Context, tx *sql.Tx, input RecordInput) (domain.Transaction, error)
}

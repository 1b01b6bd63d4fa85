package repo_interfaces

import (
	"context"
	"database/sql"
	"time"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	// GetByIDForUpdate locks the account row for the duration of the
	// caller's transaction.
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id string, balance decimal.Decimal, updatedBy string) error
	UpdateApproval(ctx context.Context, tx *sql.Tx, id string, status domain.AccountStatus, approval domain.EntityApprovalStatus, updatedBy string) error
	MarkClosed(ctx context.Context, tx *sql.Tx, id string, closedDate time.Time, updatedBy string) error
}

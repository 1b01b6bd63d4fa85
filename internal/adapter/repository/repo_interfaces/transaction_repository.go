package repo_interfaces

import (
	"context"
	"database/sql"

	"github.com/api-sage/minibank-core/internal/domain"
)

type TransactionRepository interface {
	// Create appends an immutable transaction row inside the caller's
	// transaction. There is no update or delete.
	Create(ctx context.Context, tx *sql.Tx, transaction domain.Transaction) (domain.Transaction, error)
	ListByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}

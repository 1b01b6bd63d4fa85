package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *sql.Tx, transaction domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository create", logger.Fields{
		"accountId":         transaction.AccountID,
		"transactionNumber": transaction.TransactionNumber,
		"transactionType":   transaction.TransactionType,
	})

	const query = `
INSERT INTO transactions (
	account_id,
	transaction_number,
	transaction_type,
	amount,
	currency,
	balance_before,
	balance_after,
	description,
	reference_number,
	channel,
	destination_account_id,
	transaction_date,
	processed_date,
	created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

	if err := tx.QueryRowContext(
		ctx,
		query,
		transaction.AccountID,
		transaction.TransactionNumber,
		transaction.TransactionType,
		transaction.Amount,
		transaction.Currency,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.Description,
		nullIfEmpty(transaction.ReferenceNumber),
		transaction.Channel,
		transaction.DestinationAccountID,
		transaction.TransactionDate,
		transaction.ProcessedDate,
		transaction.CreatedBy,
	).Scan(&transaction.ID); err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"transactionNumber": transaction.TransactionNumber,
		})
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", mapConcurrencyError(err))
	}

	return transaction, nil
}

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
SELECT id, account_id, transaction_number, transaction_type, amount, currency,
       balance_before, balance_after, description, reference_number, channel,
       destination_account_id, transaction_date, processed_date, created_by
FROM transactions
WHERE account_id = $1
ORDER BY transaction_date DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var (
			transaction     domain.Transaction
			description     sql.NullString
			referenceNumber sql.NullString
			createdBy       sql.NullString
		)
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AccountID,
			&transaction.TransactionNumber,
			&transaction.TransactionType,
			&transaction.Amount,
			&transaction.Currency,
			&transaction.BalanceBefore,
			&transaction.BalanceAfter,
			&description,
			&referenceNumber,
			&transaction.Channel,
			&transaction.DestinationAccountID,
			&transaction.TransactionDate,
			&transaction.ProcessedDate,
			&createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transaction.Description = description.String
		transaction.ReferenceNumber = referenceNumber.String
		transaction.CreatedBy = createdBy.String
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

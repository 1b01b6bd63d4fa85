package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, customer_id, product_id, branch_id, account_number, account_name,
       balance, status, approval_status, opened_date, closed_date,
       created_by, updated_by, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, tx *sql.Tx, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"customerId":    account.CustomerID,
		"accountNumber": account.AccountNumber,
	})

	const query = `
INSERT INTO accounts (
	customer_id,
	product_id,
	branch_id,
	account_number,
	account_name,
	balance,
	status,
	approval_status,
	opened_date,
	created_by,
	updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING id, created_at, updated_at`

	if err := tx.QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.ProductID,
		account.BranchID,
		account.AccountNumber,
		account.AccountName,
		account.Balance,
		account.Status,
		account.ApprovalStatus,
		account.OpenedDate,
		account.CreatedBy,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.UpdatedBy = account.CreatedBy
	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id), "id", id)
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, accountNumber), "accountNumber", accountNumber)
}

// GetByIDForUpdate takes the row lock that serializes concurrent balance
// mutations against the same account.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	return r.scanAccount(tx.QueryRowContext(ctx, query, id), "id", id)
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, tx *sql.Tx, id string, balance decimal.Decimal, updatedBy string) error {
	const query = `
UPDATE accounts
SET balance = $2,
    updated_by = $3,
    updated_at = NOW()
WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, id, balance, updatedBy)
	if err != nil {
		logger.Error("account repository update balance failed", err, logger.Fields{
			"accountId": id,
		})
		return fmt.Errorf("update account balance: %w", mapConcurrencyError(err))
	}

	return requireOneRow(result, "update account balance")
}

func (r *AccountRepository) UpdateApproval(ctx context.Context, tx *sql.Tx, id string, status domain.AccountStatus, approval domain.EntityApprovalStatus, updatedBy string) error {
	const query = `
UPDATE accounts
SET status = $2,
    approval_status = $3,
    updated_by = $4,
    updated_at = NOW()
WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, id, status, approval, updatedBy)
	if err != nil {
		logger.Error("account repository update approval failed", err, logger.Fields{
			"accountId": id,
			"status":    status,
		})
		return fmt.Errorf("update account approval: %w", mapConcurrencyError(err))
	}

	return requireOneRow(result, "update account approval")
}

func (r *AccountRepository) MarkClosed(ctx context.Context, tx *sql.Tx, id string, closedDate time.Time, updatedBy string) error {
	const query = `
UPDATE accounts
SET status = $2,
    closed_date = $3,
    updated_by = $4,
    updated_at = NOW()
WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, id, domain.AccountStatusClosed, closedDate, updatedBy)
	if err != nil {
		logger.Error("account repository mark closed failed", err, logger.Fields{
			"accountId": id,
		})
		return fmt.Errorf("mark account closed: %w", mapConcurrencyError(err))
	}

	return requireOneRow(result, "mark account closed")
}

func (r *AccountRepository) scanAccount(row *sql.Row, lookupKey, lookupValue string) (domain.Account, error) {
	var (
		account    domain.Account
		closedDate sql.NullTime
		createdBy  sql.NullString
		updatedBy  sql.NullString
	)

	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.ProductID,
		&account.BranchID,
		&account.AccountNumber,
		&account.AccountName,
		&account.Balance,
		&account.Status,
		&account.ApprovalStatus,
		&account.OpenedDate,
		&closedDate,
		&createdBy,
		&updatedBy,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				lookupKey: lookupValue,
			})
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			lookupKey: lookupValue,
		})
		return domain.Account{}, fmt.Errorf("get account: %w", mapConcurrencyError(err))
	}

	if closedDate.Valid {
		value := closedDate.Time
		account.ClosedDate = &value
	}
	account.CreatedBy = createdBy.String
	account.UpdatedBy = updatedBy.String

	return account, nil
}

func requireOneRow(result sql.Result, operation string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

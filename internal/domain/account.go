package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusClosed   AccountStatus = "CLOSED"
	AccountStatusFrozen   AccountStatus = "FROZEN"
)

type EntityApprovalStatus string

const (
	EntityApprovalPending  EntityApprovalStatus = "PENDING_APPROVAL"
	EntityApprovalApproved EntityApprovalStatus = "APPROVED"
	EntityApprovalRejected EntityApprovalStatus = "REJECTED"
)

type Account struct {
	ID             string
	CustomerID     string
	ProductID      string
	BranchID       string
	AccountNumber  string
	AccountName    string
	Balance        decimal.Decimal
	Status         AccountStatus
	ApprovalStatus EntityApprovalStatus
	OpenedDate     time.Time
	ClosedDate     *time.Time
	CreatedBy      string
	UpdatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

func (a *Account) IsClosed() bool {
	return a.Status == AccountStatusClosed
}

// Deposit credits the balance. Closed accounts never accept funds; a
// not-yet-approved (INACTIVE) account still takes its opening deposit.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if a.IsClosed() {
		return ErrAccountClosed
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if a.IsClosed() {
		return ErrAccountClosed
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// TransferOut debits the outgoing leg of a transfer. Unlike Withdraw it
// requires the account to be ACTIVE, not merely open.
func (a *Account) TransferOut(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if a.IsClosed() {
		return ErrAccountClosed
	}
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

func (a *Account) TransferIn(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if a.IsClosed() {
		return ErrAccountClosed
	}
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Close soft-closes the account. The balance must already be zero.
func (a *Account) Close(now time.Time) error {
	if a.IsClosed() {
		return ErrAlreadyClosed
	}
	if !a.Balance.IsZero() {
		return ErrNonZeroBalance
	}
	a.Status = AccountStatusClosed
	closed := now
	a.ClosedDate = &closed
	return nil
}

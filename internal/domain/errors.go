package domain

import "errors"

// Validation errors: caller-correctable, never retried.
var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrMissingReason        = errors.New("rejection reason is required")
	ErrProductNotEligible   = errors.New("product is not available for this customer type")
	ErrMinimumDepositNotMet = errors.New("initial deposit is below the product minimum")
	ErrSameAccount          = errors.New("source and destination accounts cannot be the same")
	ErrSelfApproval         = errors.New("reviewer cannot be the requester")
	ErrDuplicatePending     = errors.New("entity already has a pending approval request")
	ErrCustomerNotActive    = errors.New("customer is not active")
	ErrProductNotActive     = errors.New("product is not active")
)

// State-conflict errors: business-rule violations, surfaced as-is.
var (
	ErrAccountClosed       = errors.New("account is closed")
	ErrAccountNotActive    = errors.New("account is not active")
	ErrAlreadyClosed       = errors.New("account is already closed")
	ErrNonZeroBalance      = errors.New("account balance must be zero before closure")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotPending          = errors.New("approval request is not pending")
)

var ErrRecordNotFound = errors.New("record not found")

// ErrConcurrencyConflict marks transient lock/serialization failures that
// are safe to retry a bounded number of times.
var ErrConcurrencyConflict = errors.New("concurrent update conflict")

package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

// actingUserHeader identifies the operator performing the request; the
// backing channel authenticates separately via the auth middleware.
const actingUserHeader = "X-Acting-User"

func actingUser(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(actingUserHeader))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("http response encoding failed", err, nil)
	}
}

// statusFor maps service errors onto HTTP statuses by sentinel rather
// than by response message text.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrNonZeroBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrDuplicatePending),
		errors.Is(err, domain.ErrAlreadyClosed):
		return http.StatusConflict
	// A concurrency conflict only reaches the boundary once retries are
	// exhausted; the request is safe to repeat later.
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingReason),
		errors.Is(err, domain.ErrSelfApproval),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrProductNotEligible),
		errors.Is(err, domain.ErrMinimumDepositNotMet),
		errors.Is(err, domain.ErrCustomerNotActive),
		errors.Is(err, domain.ErrProductNotActive),
		errors.Is(err, domain.ErrAccountClosed),
		errors.Is(err, domain.ErrAccountNotActive):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// statusForFailure falls back to the response message for plain
// validation errors that carry no sentinel.
func statusForFailure(message string, err error) int {
	status := statusFor(err)
	if status == http.StatusInternalServerError && message == "validation failed" {
		return http.StatusBadRequest
	}
	return status
}

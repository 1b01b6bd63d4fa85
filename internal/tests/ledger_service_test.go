package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/usecase/services"
)

func TestLedgerServiceDepositValidationError(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil, nil)

	_, err := svc.Deposit(context.Background(), models.DepositRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty deposit request")
	}
}

func TestLedgerServiceWithdrawValidationError(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil, nil)

	_, err := svc.Withdraw(context.Background(), models.WithdrawalRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty withdrawal request")
	}
}

func TestLedgerServiceCloseAccountValidationError(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil, nil)

	_, err := svc.CloseAccount(context.Background(), models.CloseAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty close request")
	}
}

func TestLedgerServiceGetAccountValidationError(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil, nil)

	_, err := svc.GetAccount(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected validation error for blank account id")
	}
}

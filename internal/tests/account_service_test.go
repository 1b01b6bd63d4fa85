package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type stubProductRepo struct {
	products map[string]domain.Product
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrRecordNotFound
	}
	return product, nil
}

// memoryWorkflow records approval requests instead of persisting them.
type memoryWorkflow struct {
	requests []domain.ApprovalRequest
}

func (w *memoryWorkflow) CreateRequest(_ context.Context, _ *sql.Tx, request domain.ApprovalRequest) (domain.ApprovalRequest, error) {
	request.ID = fmt.Sprintf("req-%d", len(w.requests)+1)
	request.ApprovalStatus = domain.ApprovalStatusPending
	w.requests = append(w.requests, request)
	return request, nil
}

func TestAccountServiceOpenAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(nil, nil, nil, nil, nil, nil, nil)

	_, err := svc.OpenAccount(context.Background(), models.AccountOpeningRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty opening request")
	}
}

func TestAccountServiceOpenAccountPipeline(t *testing.T) {
	accountRepo := newMemoryAccountRepo()
	customerRepo := &stubCustomerRepo{customers: map[string]domain.Customer{
		"cust-1": {
			ID:             "cust-1",
			CustomerType:   domain.CustomerTypePersonal,
			Status:         domain.CustomerStatusActive,
			ApprovalStatus: domain.EntityApprovalApproved,
			BranchID:       "branch-1",
		},
	}}
	productRepo := &stubProductRepo{products: map[string]domain.Product{
		"prod-1": {
			ID:                    "prod-1",
			IsActive:              true,
			MinimumOpeningBalance: decimal.NewFromInt(50000),
		},
	}}
	transactionRepo := &memoryTransactionRepo{}
	sequenceService := services.NewSequenceService(newMemorySequenceRepo())
	recorder := services.NewRecorderService(transactionRepo, sequenceService)
	workflow := &memoryWorkflow{}

	svc := services.NewAccountService(&memoryTxRunner{}, accountRepo, customerRepo, productRepo, sequenceService, recorder, workflow)

	response, err := svc.OpenAccount(context.Background(), models.AccountOpeningRequest{
		CustomerID:     "cust-1",
		ProductID:      "prod-1",
		AccountName:    "Budi Savings",
		InitialDeposit: decimal.NewFromInt(50000),
		ActingUser:     "teller-1",
	})
	if err != nil {
		t.Fatalf("OpenAccount() error = %v", err)
	}
	if response.Data == nil {
		t.Fatal("missing opening response data")
	}
	if response.Data.AccountNumber != "ACC0000001" {
		t.Fatalf("account number = %q, want %q", response.Data.AccountNumber, "ACC0000001")
	}
	if response.Data.Balance != "50000.00" {
		t.Fatalf("balance = %q, want %q", response.Data.Balance, "50000.00")
	}
	if response.Data.Status != string(domain.AccountStatusInactive) {
		t.Fatalf("status = %q, want INACTIVE until approval", response.Data.Status)
	}
	if response.Data.ApprovalStatus != string(domain.EntityApprovalPending) {
		t.Fatalf("approval status = %q, want PENDING_APPROVAL", response.Data.ApprovalStatus)
	}
	if response.Data.TransactionNumber != "TXN0000001" {
		t.Fatalf("transaction number = %q, want %q", response.Data.TransactionNumber, "TXN0000001")
	}
	if response.Data.ApprovalRequestID != "req-1" {
		t.Fatalf("approval request id = %q, want %q", response.Data.ApprovalRequestID, "req-1")
	}

	stored, err := accountRepo.GetByID(context.Background(), response.Data.ID)
	if err != nil {
		t.Fatalf("stored account: %v", err)
	}
	if !stored.Balance.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("stored balance = %s, want 50000", stored.Balance)
	}

	if len(transactionRepo.created) != 1 {
		t.Fatalf("created rows = %d, want exactly one opening deposit", len(transactionRepo.created))
	}
	deposit := transactionRepo.created[0]
	if deposit.TransactionType != domain.TransactionTypeDeposit {
		t.Fatalf("transaction type = %s, want DEPOSIT", deposit.TransactionType)
	}
	if !deposit.BalanceBefore.IsZero() || !deposit.BalanceAfter.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("deposit snapshot = %s -> %s, want 0 -> 50000", deposit.BalanceBefore, deposit.BalanceAfter)
	}
	if deposit.ReferenceNumber != "ACCOUNT-OPENING-ACC0000001" {
		t.Fatalf("reference number = %q", deposit.ReferenceNumber)
	}

	if len(workflow.requests) != 1 {
		t.Fatalf("approval requests = %d, want 1", len(workflow.requests))
	}
	request := workflow.requests[0]
	if request.RequestType != domain.RequestTypeAccountOpening || request.EntityType != domain.EntityTypeAccount {
		t.Fatalf("request = %s/%s, want ACCOUNT_OPENING/ACCOUNT", request.RequestType, request.EntityType)
	}
	if request.EntityID != response.Data.ID {
		t.Fatalf("request entity id = %q, want %q", request.EntityID, response.Data.ID)
	}
	if request.BranchID != "branch-1" {
		t.Fatalf("request branch id = %q, want %q", request.BranchID, "branch-1")
	}
}

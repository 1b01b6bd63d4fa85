package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/usecase/services"
	"github.com/shopspring/decimal"
)

// memoryTxRunner satisfies the transaction seam without a database. The
// optional snapshot hook captures fake-repo state on entry and restores
// it when fn fails, mirroring a rollback.
type memoryTxRunner struct {
	snapshot func() (restore func())
}

func (r *memoryTxRunner) RunInTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	var restore func()
	if r.snapshot != nil {
		restore = r.snapshot()
	}
	if err := fn(nil); err != nil {
		if restore != nil {
			restore()
		}
		return err
	}
	return nil
}

type memoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	nextID   int
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *memoryAccountRepo) seed(account domain.Account) {
	r.accounts[account.ID] = account
}

func (r *memoryAccountRepo) snapshotAccounts() map[string]domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]domain.Account, len(r.accounts))
	for id, account := range r.accounts {
		copied[id] = account
	}
	return copied
}

func (r *memoryAccountRepo) restoreAccounts(accounts map[string]domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = accounts
}

func (r *memoryAccountRepo) Create(_ context.Context, _ *sql.Tx, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts[account.ID] = account
	return account, nil
}

func (r *memoryAccountRepo) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *memoryAccountRepo) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (r *memoryAccountRepo) GetByIDForUpdate(ctx context.Context, _ *sql.Tx, id string) (domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryAccountRepo) UpdateBalance(_ context.Context, _ *sql.Tx, id string, balance decimal.Decimal, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	account.Balance = balance
	account.UpdatedBy = updatedBy
	r.accounts[id] = account
	return nil
}

func (r *memoryAccountRepo) UpdateApproval(_ context.Context, _ *sql.Tx, id string, status domain.AccountStatus, approval domain.EntityApprovalStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	account.Status = status
	account.ApprovalStatus = approval
	account.UpdatedBy = updatedBy
	r.accounts[id] = account
	return nil
}

func (r *memoryAccountRepo) MarkClosed(_ context.Context, _ *sql.Tx, id string, closedDate time.Time, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	account.Status = domain.AccountStatusClosed
	account.ClosedDate = &closedDate
	account.UpdatedBy = updatedBy
	r.accounts[id] = account
	return nil
}

type stubCustomerRepo struct {
	customers map[string]domain.Customer
}

func (r *stubCustomerRepo) Create(_ context.Context, _ *sql.Tx, customer domain.Customer) (domain.Customer, error) {
	customer.ID = "cust-1"
	return customer, nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id string) (domain.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return customer, nil
}

func (r *stubCustomerRepo) UpdateApproval(_ context.Context, _ *sql.Tx, _ string, _ domain.CustomerStatus, _ domain.EntityApprovalStatus, _ string) error {
	return nil
}

func activeAccount(id, accountNumber, customerID string, balance int64) domain.Account {
	return domain.Account{
		ID:             id,
		CustomerID:     customerID,
		AccountNumber:  accountNumber,
		AccountName:    accountNumber,
		Balance:        decimal.NewFromInt(balance),
		Status:         domain.AccountStatusActive,
		ApprovalStatus: domain.EntityApprovalApproved,
	}
}

func TestTransferServiceValidateValidationError(t *testing.T) {
	svc := services.NewTransferService(nil, nil, nil, nil)

	_, err := svc.Validate(context.Background(), models.TransferRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty transfer request")
	}
}

func TestTransferServiceProcessValidationError(t *testing.T) {
	svc := services.NewTransferService(nil, nil, nil, nil)

	_, err := svc.Process(context.Background(), models.TransferRequest{FromAccountID: "acc-1"})
	if err == nil {
		t.Fatal("expected validation error for transfer without destination")
	}
}

func TestTransferServiceProcessMovesFundsAtomically(t *testing.T) {
	accountRepo := newMemoryAccountRepo()
	accountRepo.seed(activeAccount("acc-1", "ACC0000001", "cust-1", 100000))
	accountRepo.seed(activeAccount("acc-2", "ACC0000002", "cust-2", 50000))

	transactionRepo := &memoryTransactionRepo{}
	recorder := services.NewRecorderService(transactionRepo, services.NewSequenceService(newMemorySequenceRepo()))
	svc := services.NewTransferService(&memoryTxRunner{}, accountRepo, &stubCustomerRepo{}, recorder)

	response, err := svc.Process(context.Background(), models.TransferRequest{
		FromAccountID:   "acc-1",
		ToAccountNumber: "ACC0000002",
		Amount:          decimal.NewFromInt(25000),
		Description:     "rent",
		ActingUser:      "teller-1",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if response.Data == nil {
		t.Fatal("missing transfer response data")
	}
	if response.Data.SourceBalance != "75000.00" || response.Data.DestinationBalance != "75000.00" {
		t.Fatalf("balances = %s / %s, want 75000.00 / 75000.00", response.Data.SourceBalance, response.Data.DestinationBalance)
	}
	if response.Data.ReferenceNumber == "" {
		t.Fatal("expected a generated reference number")
	}

	source, _ := accountRepo.GetByID(context.Background(), "acc-1")
	destination, _ := accountRepo.GetByID(context.Background(), "acc-2")
	if !source.Balance.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("source balance = %s, want 75000", source.Balance)
	}
	if !destination.Balance.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("destination balance = %s, want 75000", destination.Balance)
	}
	// Conservation: the pair's total never changes.
	if total := source.Balance.Add(destination.Balance); !total.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("total balance = %s, want 150000", total)
	}

	if len(transactionRepo.created) != 2 {
		t.Fatalf("created rows = %d, want 2", len(transactionRepo.created))
	}
	outLeg, inLeg := transactionRepo.created[0], transactionRepo.created[1]
	if outLeg.TransactionType != domain.TransactionTypeTransferOut || inLeg.TransactionType != domain.TransactionTypeTransferIn {
		t.Fatalf("leg types = %s / %s", outLeg.TransactionType, inLeg.TransactionType)
	}
	if outLeg.ReferenceNumber != inLeg.ReferenceNumber {
		t.Fatalf("legs carry different references: %q vs %q", outLeg.ReferenceNumber, inLeg.ReferenceNumber)
	}
	if !outLeg.BalanceAfter.Equal(decimal.NewFromInt(75000)) || !inLeg.BalanceAfter.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("leg balances after = %s / %s, want 75000 / 75000", outLeg.BalanceAfter, inLeg.BalanceAfter)
	}
	if outLeg.DestinationAccountID == nil || *outLeg.DestinationAccountID != "acc-2" {
		t.Fatal("outgoing leg must reference the destination account")
	}
	if outLeg.Description != "Transfer to ACC0000002 - rent" {
		t.Fatalf("outgoing description = %q", outLeg.Description)
	}
}

func TestTransferServiceProcessRollsBackWhenLegFails(t *testing.T) {
	accountRepo := newMemoryAccountRepo()
	accountRepo.seed(activeAccount("acc-1", "ACC0000001", "cust-1", 100000))
	accountRepo.seed(activeAccount("acc-2", "ACC0000002", "cust-2", 50000))

	// The second insert, the incoming leg, fails mid-transfer.
	transactionRepo := &memoryTransactionRepo{failAt: 2}
	txRunner := &memoryTxRunner{snapshot: func() func() {
		accounts := accountRepo.snapshotAccounts()
		rows := len(transactionRepo.created)
		return func() {
			accountRepo.restoreAccounts(accounts)
			transactionRepo.created = transactionRepo.created[:rows]
		}
	}}
	recorder := services.NewRecorderService(transactionRepo, services.NewSequenceService(newMemorySequenceRepo()))
	svc := services.NewTransferService(txRunner, accountRepo, &stubCustomerRepo{}, recorder)

	_, err := svc.Process(context.Background(), models.TransferRequest{
		FromAccountID:   "acc-1",
		ToAccountNumber: "ACC0000002",
		Amount:          decimal.NewFromInt(25000),
	})
	if err == nil {
		t.Fatal("expected the failed leg to abort the transfer")
	}

	source, _ := accountRepo.GetByID(context.Background(), "acc-1")
	destination, _ := accountRepo.GetByID(context.Background(), "acc-2")
	if !source.Balance.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("source balance = %s, want 100000 after rollback", source.Balance)
	}
	if !destination.Balance.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("destination balance = %s, want 50000 after rollback", destination.Balance)
	}
	if len(transactionRepo.created) != 0 {
		t.Fatalf("created rows = %d, want 0 after rollback", len(transactionRepo.created))
	}
}

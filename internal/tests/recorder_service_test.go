package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/usecase/service_interfaces"
	"github.com/api-sage/minibank-core/internal/usecase/services"
	"github.com/shopspring/decimal"
)

// memoryTransactionRepo captures created rows; the tx handle is opaque to
// the recorder and may be nil in tests. failAt makes the insert of the
// given 1-based row fail, for exercising rollback paths.
type memoryTransactionRepo struct {
	created []domain.Transaction
	failAt  int
}

func (r *memoryTransactionRepo) Create(_ context.Context, _ *sql.Tx, transaction domain.Transaction) (domain.Transaction, error) {
	if r.failAt > 0 && len(r.created)+1 == r.failAt {
		return domain.Transaction{}, errors.New("insert transaction: connection reset")
	}
	transaction.ID = fmt.Sprintf("txn-row-%d", len(r.created)+1)
	r.created = append(r.created, transaction)
	return transaction, nil
}

func (r *memoryTransactionRepo) ListByAccountID(_ context.Context, _ string, _ int) ([]domain.Transaction, error) {
	return r.created, nil
}

func TestRecorderServiceRecordsDeposit(t *testing.T) {
	repo := &memoryTransactionRepo{}
	svc := services.NewRecorderService(repo, services.NewSequenceService(newMemorySequenceRepo()))

	account := domain.Account{
		ID:      "acc-1",
		Balance: decimal.NewFromInt(50000),
		Status:  domain.AccountStatusActive,
	}

	recorded, err := svc.Record(context.Background(), nil, service_interfaces.RecordInput{
		Account:         account,
		TransactionType: domain.TransactionTypeDeposit,
		Amount:          decimal.NewFromInt(50000),
		BalanceBefore:   decimal.Zero,
		Channel:         domain.ChannelTeller,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if recorded.TransactionNumber != "TXN0000001" {
		t.Fatalf("transaction number = %q, want %q", recorded.TransactionNumber, "TXN0000001")
	}
	if !recorded.BalanceAfter.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("balance after = %s, want 50000", recorded.BalanceAfter)
	}
	if recorded.Currency != domain.DefaultCurrency {
		t.Fatalf("currency = %q, want %q", recorded.Currency, domain.DefaultCurrency)
	}
	if recorded.CreatedBy != "SYSTEM" {
		t.Fatalf("created by = %q, want SYSTEM fallback", recorded.CreatedBy)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created rows = %d, want 1", len(repo.created))
	}
}

func TestRecorderServiceRejectsBalanceMismatch(t *testing.T) {
	repo := &memoryTransactionRepo{}
	svc := services.NewRecorderService(repo, services.NewSequenceService(newMemorySequenceRepo()))

	// Account claims a balance that does not follow from the mutation
	// being recorded.
	account := domain.Account{
		ID:      "acc-1",
		Balance: decimal.NewFromInt(999),
		Status:  domain.AccountStatusActive,
	}

	_, err := svc.Record(context.Background(), nil, service_interfaces.RecordInput{
		Account:         account,
		TransactionType: domain.TransactionTypeWithdrawal,
		Amount:          decimal.NewFromInt(100),
		BalanceBefore:   decimal.NewFromInt(500),
		Channel:         domain.ChannelTeller,
	})
	if err == nil {
		t.Fatal("expected consistency error for mismatched balance")
	}
	if len(repo.created) != 0 {
		t.Fatalf("created rows = %d, want 0 on consistency failure", len(repo.created))
	}
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func activeAccount(balance int64) Account {
	return Account{
		ID:            "acc-1",
		AccountNumber: "ACC0000001",
		Balance:       decimal.NewFromInt(balance),
		Status:        AccountStatusActive,
	}
}

func TestAccountDeposit(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		amount  decimal.Decimal
		wantErr error
		want    int64
	}{
		{"credits balance", activeAccount(1000), decimal.NewFromInt(500), nil, 1500},
		{"rejects zero amount", activeAccount(1000), decimal.Zero, ErrInvalidAmount, 1000},
		{"rejects negative amount", activeAccount(1000), decimal.NewFromInt(-10), ErrInvalidAmount, 1000},
		{
			"rejects closed account",
			Account{Balance: decimal.Zero, Status: AccountStatusClosed},
			decimal.NewFromInt(100),
			ErrAccountClosed,
			0,
		},
		{
			"accepts inactive account",
			Account{Balance: decimal.Zero, Status: AccountStatusInactive},
			decimal.NewFromInt(100),
			nil,
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Deposit(tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Deposit() error = %v, want %v", err, tt.wantErr)
			}
			if !tt.account.Balance.Equal(decimal.NewFromInt(tt.want)) {
				t.Fatalf("balance = %s, want %d", tt.account.Balance, tt.want)
			}
		})
	}
}

func TestAccountWithdraw(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		amount  decimal.Decimal
		wantErr error
		want    int64
	}{
		{"debits balance", activeAccount(1000), decimal.NewFromInt(400), nil, 600},
		{"drains to exactly zero", activeAccount(1000), decimal.NewFromInt(1000), nil, 0},
		{"rejects overdraft", activeAccount(1000), decimal.NewFromInt(1001), ErrInsufficientBalance, 1000},
		{"rejects zero amount", activeAccount(1000), decimal.Zero, ErrInvalidAmount, 1000},
		{
			"rejects closed account",
			Account{Balance: decimal.NewFromInt(100), Status: AccountStatusClosed},
			decimal.NewFromInt(50),
			ErrAccountClosed,
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Withdraw(tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Withdraw() error = %v, want %v", err, tt.wantErr)
			}
			if !tt.account.Balance.Equal(decimal.NewFromInt(tt.want)) {
				t.Fatalf("balance = %s, want %d", tt.account.Balance, tt.want)
			}
		})
	}
}

func TestAccountTransferOutRequiresActiveStatus(t *testing.T) {
	account := Account{Balance: decimal.NewFromInt(1000), Status: AccountStatusInactive}
	if err := account.TransferOut(decimal.NewFromInt(100)); !errors.Is(err, ErrAccountNotActive) {
		t.Fatalf("TransferOut() error = %v, want %v", err, ErrAccountNotActive)
	}

	account.Status = AccountStatusFrozen
	if err := account.TransferOut(decimal.NewFromInt(100)); !errors.Is(err, ErrAccountNotActive) {
		t.Fatalf("TransferOut() on frozen account error = %v, want %v", err, ErrAccountNotActive)
	}
}

func TestAccountTransferOutInsufficientBalance(t *testing.T) {
	account := activeAccount(100)
	if err := account.TransferOut(decimal.NewFromInt(101)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("TransferOut() error = %v, want %v", err, ErrInsufficientBalance)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("failed transfer mutated balance: %s", account.Balance)
	}
}

func TestAccountTransferInRequiresActiveStatus(t *testing.T) {
	account := Account{Balance: decimal.Zero, Status: AccountStatusInactive}
	if err := account.TransferIn(decimal.NewFromInt(100)); !errors.Is(err, ErrAccountNotActive) {
		t.Fatalf("TransferIn() error = %v, want %v", err, ErrAccountNotActive)
	}
}

func TestAccountTransferLegsBalance(t *testing.T) {
	source := activeAccount(1000)
	destination := activeAccount(200)
	amount := decimal.NewFromInt(300)

	if err := source.TransferOut(amount); err != nil {
		t.Fatalf("TransferOut() error = %v", err)
	}
	if err := destination.TransferIn(amount); err != nil {
		t.Fatalf("TransferIn() error = %v", err)
	}

	total := source.Balance.Add(destination.Balance)
	if !total.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("combined balance = %s, want 1200", total)
	}
}

func TestAccountClose(t *testing.T) {
	now := time.Now()

	account := activeAccount(0)
	if err := account.Close(now); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if account.Status != AccountStatusClosed {
		t.Fatalf("status = %s, want %s", account.Status, AccountStatusClosed)
	}
	if account.ClosedDate == nil || !account.ClosedDate.Equal(now) {
		t.Fatalf("closed date not set")
	}

	if err := account.Close(now); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("second Close() error = %v, want %v", err, ErrAlreadyClosed)
	}

	funded := activeAccount(10)
	if err := funded.Close(now); !errors.Is(err, ErrNonZeroBalance) {
		t.Fatalf("Close() with balance error = %v, want %v", err, ErrNonZeroBalance)
	}
}

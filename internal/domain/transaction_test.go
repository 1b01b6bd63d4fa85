package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNextBalance(t *testing.T) {
	before := decimal.NewFromInt(1000)
	amount := decimal.NewFromInt(250)

	tests := []struct {
		txType TransactionType
		want   int64
	}{
		{TransactionTypeDeposit, 1250},
		{TransactionTypeTransferIn, 1250},
		{TransactionTypeWithdrawal, 750},
		{TransactionTypeTransferOut, 750},
		{TransactionTypeFee, 750},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			got := NextBalance(before, tt.txType, amount)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Fatalf("NextBalance(%s) = %s, want %d", tt.txType, got, tt.want)
			}
		})
	}
}

func TestTransactionTypeDebitCredit(t *testing.T) {
	debits := []TransactionType{TransactionTypeWithdrawal, TransactionTypeTransferOut, TransactionTypeFee}
	for _, txType := range debits {
		if !txType.IsDebit() || txType.IsCredit() {
			t.Fatalf("%s should be a debit", txType)
		}
	}

	credits := []TransactionType{TransactionTypeDeposit, TransactionTypeTransferIn}
	for _, txType := range credits {
		if !txType.IsCredit() || txType.IsDebit() {
			t.Fatalf("%s should be a credit", txType)
		}
	}
}

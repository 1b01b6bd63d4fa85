package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeFee         TransactionType = "FEE"
)

type TransactionChannel string

const (
	ChannelTeller   TransactionChannel = "TELLER"
	ChannelATM      TransactionChannel = "ATM"
	ChannelOnline   TransactionChannel = "ONLINE"
	ChannelMobile   TransactionChannel = "MOBILE"
	ChannelTransfer TransactionChannel = "TRANSFER"
)

const DefaultCurrency = "IDR"

// Transaction is an append-only ledger row paired 1:1 with a balance
// mutation. It is never updated or deleted.
type Transaction struct {
	ID                   string
	AccountID            string
	TransactionNumber    string
	TransactionType      TransactionType
	Amount               decimal.Decimal
	Currency             string
	BalanceBefore        decimal.Decimal
	BalanceAfter         decimal.Decimal
	Description          string
	ReferenceNumber      string
	Channel              TransactionChannel
	DestinationAccountID *string
	TransactionDate      time.Time
	ProcessedDate        time.Time
	CreatedBy            string
}

func (t TransactionType) IsDebit() bool {
	switch t {
	case TransactionTypeWithdrawal, TransactionTypeTransferOut, TransactionTypeFee:
		return true
	}
	return false
}

func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeTransferIn:
		return true
	}
	return false
}

// NextBalance applies the debit/credit rule for the transaction type to a
// balance snapshot.
func NextBalance(before decimal.Decimal, txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType.IsDebit() {
		return before.Sub(amount)
	}
	return before.Add(amount)
}

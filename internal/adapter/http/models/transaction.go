package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountID       string          `json:"accountId"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	Channel         string          `json:"channel"`
	ActingUser      string          `json:"-"`
}

func (r DepositRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("accountId is required")
	}
	return nil
}

type WithdrawalRequest struct {
	AccountID       string          `json:"accountId"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	Channel         string          `json:"channel"`
	ActingUser      string          `json:"-"`
}

func (r WithdrawalRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("accountId is required")
	}
	return nil
}

type TransactionResponse struct {
	TransactionNumber string `json:"transactionNumber"`
	AccountNumber     string `json:"accountNumber"`
	TransactionType   string `json:"transactionType"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	BalanceBefore     string `json:"balanceBefore"`
	BalanceAfter      string `json:"balanceAfter"`
	Description       string `json:"description,omitempty"`
	ReferenceNumber   string `json:"referenceNumber,omitempty"`
	Channel           string `json:"channel"`
	TransactionDate   string `json:"transactionDate"`
}

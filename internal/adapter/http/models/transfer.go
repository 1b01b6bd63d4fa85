package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountID   string          `json:"fromAccountId"`
	ToAccountNumber string          `json:"toAccountNumber"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	ActingUser      string          `json:"-"`
}

func (r TransferRequest) Validate() error {
	if strings.TrimSpace(r.FromAccountID) == "" {
		return fmt.Errorf("fromAccountId is required")
	}
	if strings.TrimSpace(r.ToAccountNumber) == "" {
		return fmt.Errorf("toAccountNumber is required")
	}
	return nil
}

// TransferValidationResponse carries the resolved destination display data
// back to the caller for confirmation; producing it has no side effects.
type TransferValidationResponse struct {
	FromAccountID           string `json:"fromAccountId"`
	FromAccountNumber       string `json:"fromAccountNumber"`
	ToAccountID             string `json:"toAccountId"`
	ToAccountNumber         string `json:"toAccountNumber"`
	DestinationAccountName  string `json:"destinationAccountName"`
	DestinationCustomerName string `json:"destinationCustomerName"`
	Amount                  string `json:"amount"`
	ReferenceNumber         string `json:"referenceNumber"`
}

type TransferResponse struct {
	ReferenceNumber    string `json:"referenceNumber"`
	TransferOutNumber  string `json:"transferOutNumber"`
	TransferInNumber   string `json:"transferInNumber"`
	FromAccountNumber  string `json:"fromAccountNumber"`
	ToAccountNumber    string `json:"toAccountNumber"`
	Amount             string `json:"amount"`
	SourceBalance      string `json:"sourceBalance"`
	DestinationBalance string `json:"destinationBalance"`
}

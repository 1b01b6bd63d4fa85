package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type AccountOpeningRequest struct {
	CustomerID     string          `json:"customerId"`
	ProductID      string          `json:"productId"`
	AccountName    string          `json:"accountName"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	RequestNotes   string          `json:"requestNotes"`
	ActingUser     string          `json:"-"`
}

func (r AccountOpeningRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return fmt.Errorf("customerId is required")
	}
	if strings.TrimSpace(r.ProductID) == "" {
		return fmt.Errorf("productId is required")
	}
	if strings.TrimSpace(r.AccountName) == "" {
		return fmt.Errorf("accountName is required")
	}
	return nil
}

type AccountOpeningResponse struct {
	ID                string `json:"id"`
	CustomerID        string `json:"customerId"`
	AccountNumber     string `json:"accountNumber"`
	AccountName       string `json:"accountName"`
	Balance           string `json:"balance"`
	Status            string `json:"status"`
	ApprovalStatus    string `json:"approvalStatus"`
	ApprovalRequestID string `json:"approvalRequestId"`
	TransactionNumber string `json:"transactionNumber"`
	OpenedDate        string `json:"openedDate"`
}

type AccountResponse struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customerId"`
	AccountNumber  string  `json:"accountNumber"`
	AccountName    string  `json:"accountName"`
	Balance        string  `json:"balance"`
	Status         string  `json:"status"`
	ApprovalStatus string  `json:"approvalStatus"`
	OpenedDate     string  `json:"openedDate"`
	ClosedDate     *string `json:"closedDate,omitempty"`
}

type CloseAccountRequest struct {
	AccountID  string `json:"accountId"`
	ActingUser string `json:"-"`
}

func (r CloseAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("accountId is required")
	}
	return nil
}

type CloseAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
	ClosedDate    string `json:"closedDate"`
}

package domain

import (
	"fmt"
	"time"
)

// Counter names and prefixes for the business identifiers issued by the
// sequence generator.
const (
	SequenceAccountNumber          = "ACCOUNT_NUMBER"
	SequenceCorporateAccountNumber = "CORPORATE_ACCOUNT_NUMBER"
	SequenceTransactionNumber      = "TRANSACTION_NUMBER"
	SequenceCustomerNumber         = "CUSTOMER_NUMBER"

	PrefixAccountNumber          = "ACC"
	PrefixCorporateAccountNumber = "CORP"
	PrefixTransactionNumber      = "TXN"
	PrefixCustomerNumber         = "CST"
)

// SequenceCounter is one named counter row, keyed by SequenceName.
type SequenceCounter struct {
	SequenceName string
	Prefix       string
	LastNumber   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FormatSequence renders an issued counter value as a business identifier:
// prefix plus the zero-padded increment.
func FormatSequence(prefix string, number int64) string {
	if prefix == "" {
		return fmt.Sprintf("%07d", number)
	}
	return fmt.Sprintf("%s%07d", prefix, number)
}

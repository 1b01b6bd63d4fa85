package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductTypeSavings  ProductType = "SAVINGS"
	ProductTypeChecking ProductType = "CHECKING"
)

type Product struct {
	ID                    string
	ProductCode           string
	ProductName           string
	ProductType           ProductType
	MinimumOpeningBalance decimal.Decimal
	// AllowedCustomerTypes is a comma-separated list of CustomerType names;
	// empty means no restriction.
	AllowedCustomerTypes string
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (p *Product) EligibleFor(customerType CustomerType) bool {
	allowed := strings.TrimSpace(p.AllowedCustomerTypes)
	if allowed == "" {
		return true
	}
	for _, t := range strings.Split(allowed, ",") {
		if strings.EqualFold(strings.TrimSpace(t), string(customerType)) {
			return true
		}
	}
	return false
}

// MinimumDepositFor applies the corporate multiplier: corporate accounts
// require five times the product minimum.
func (p *Product) MinimumDepositFor(customerType CustomerType) decimal.Decimal {
	if customerType == CustomerTypeCorporate {
		return p.MinimumOpeningBalance.Mul(decimal.NewFromInt(5))
	}
	return p.MinimumOpeningBalance
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductEligibleFor(t *testing.T) {
	tests := []struct {
		name         string
		allowed      string
		customerType CustomerType
		want         bool
	}{
		{"empty list allows everyone", "", CustomerTypePersonal, true},
		{"listed type allowed", "PERSONAL,CORPORATE", CustomerTypeCorporate, true},
		{"unlisted type rejected", "CORPORATE", CustomerTypePersonal, false},
		{"whitespace and case tolerated", " personal , corporate ", CustomerTypePersonal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := Product{AllowedCustomerTypes: tt.allowed}
			if got := product.EligibleFor(tt.customerType); got != tt.want {
				t.Fatalf("EligibleFor(%s) = %v, want %v", tt.customerType, got, tt.want)
			}
		})
	}
}

func TestProductMinimumDepositFor(t *testing.T) {
	product := Product{MinimumOpeningBalance: decimal.NewFromInt(100000)}

	personal := product.MinimumDepositFor(CustomerTypePersonal)
	if !personal.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("personal minimum = %s, want 100000", personal)
	}

	corporate := product.MinimumDepositFor(CustomerTypeCorporate)
	if !corporate.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("corporate minimum = %s, want 500000", corporate)
	}
}

package domain

import "testing"

func TestCustomerDisplayName(t *testing.T) {
	personal := Customer{
		CustomerNumber: "CST0000001",
		CustomerType:   CustomerTypePersonal,
		Personal:       &PersonalDetails{FirstName: "Budi", LastName: "Santoso"},
	}
	if got := personal.DisplayName(); got != "Budi Santoso" {
		t.Fatalf("DisplayName() = %q, want %q", got, "Budi Santoso")
	}

	corporate := Customer{
		CustomerNumber: "CST0000002",
		CustomerType:   CustomerTypeCorporate,
		Corporate:      &CorporateDetails{CompanyName: "PT Maju Jaya"},
	}
	if got := corporate.DisplayName(); got != "PT Maju Jaya" {
		t.Fatalf("DisplayName() = %q, want %q", got, "PT Maju Jaya")
	}

	// Missing payload falls back to the customer number.
	bare := Customer{CustomerNumber: "CST0000003", CustomerType: CustomerTypePersonal}
	if got := bare.DisplayName(); got != "CST0000003" {
		t.Fatalf("DisplayName() = %q, want %q", got, "CST0000003")
	}
}

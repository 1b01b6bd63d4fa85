package models

import (
	"fmt"
	"strings"
)

type PersonalCustomerPayload struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	IdentityType   string `json:"identityType"`
	IdentityNumber string `json:"identityNumber"`
}

type CorporateCustomerPayload struct {
	CompanyName        string `json:"companyName"`
	RegistrationNumber string `json:"registrationNumber"`
	TaxID              string `json:"taxId"`
}

type CustomerCreateRequest struct {
	CustomerType string                    `json:"customerType"`
	Email        string                    `json:"email"`
	PhoneNumber  string                    `json:"phoneNumber"`
	Address      string                    `json:"address"`
	City         string                    `json:"city"`
	PostalCode   string                    `json:"postalCode"`
	BranchID     string                    `json:"branchId"`
	Personal     *PersonalCustomerPayload  `json:"personal,omitempty"`
	Corporate    *CorporateCustomerPayload `json:"corporate,omitempty"`
	RequestNotes string                    `json:"requestNotes"`
	ActingUser   string                    `json:"-"`
}

func (r CustomerCreateRequest) Validate() error {
	switch strings.ToUpper(strings.TrimSpace(r.CustomerType)) {
	case "PERSONAL":
		if r.Personal == nil {
			return fmt.Errorf("personal payload is required for PERSONAL customers")
		}
		if strings.TrimSpace(r.Personal.FirstName) == "" {
			return fmt.Errorf("personal.firstName is required")
		}
		if strings.TrimSpace(r.Personal.IdentityNumber) == "" {
			return fmt.Errorf("personal.identityNumber is required")
		}
	case "CORPORATE":
		if r.Corporate == nil {
			return fmt.Errorf("corporate payload is required for CORPORATE customers")
		}
		if strings.TrimSpace(r.Corporate.CompanyName) == "" {
			return fmt.Errorf("corporate.companyName is required")
		}
		if strings.TrimSpace(r.Corporate.RegistrationNumber) == "" {
			return fmt.Errorf("corporate.registrationNumber is required")
		}
	default:
		return fmt.Errorf("customerType must be PERSONAL or CORPORATE")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

type CustomerResponse struct {
	ID                string `json:"id"`
	CustomerNumber    string `json:"customerNumber"`
	CustomerType      string `json:"customerType"`
	DisplayName       string `json:"displayName"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	Status            string `json:"status"`
	ApprovalStatus    string `json:"approvalStatus"`
	BranchID          string `json:"branchId,omitempty"`
	ApprovalRequestID string `json:"approvalRequestId,omitempty"`
}

package domain

import (
	"strings"
	"time"
)

type CustomerType string

const (
	CustomerTypePersonal  CustomerType = "PERSONAL"
	CustomerTypeCorporate CustomerType = "CORPORATE"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
	CustomerStatusClosed   CustomerStatus = "CLOSED"
	CustomerStatusFrozen   CustomerStatus = "FROZEN"
)

type IdentityType string

const (
	IdentityTypeKTP      IdentityType = "KTP"
	IdentityTypePassport IdentityType = "PASSPORT"
	IdentityTypeSIM      IdentityType = "SIM"
)

type PersonalDetails struct {
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	IdentityType   IdentityType
	IdentityNumber string
}

type CorporateDetails struct {
	CompanyName        string
	RegistrationNumber string
	TaxID              string
}

// Customer is a tagged variant over the personal/corporate subtypes:
// shared fields plus exactly one populated payload selected by CustomerType.
type Customer struct {
	ID             string
	CustomerNumber string
	CustomerType   CustomerType
	Email          string
	PhoneNumber    string
	Address        string
	City           string
	PostalCode     string
	Status         CustomerStatus
	ApprovalStatus EntityApprovalStatus
	BranchID       string
	Personal       *PersonalDetails
	Corporate      *CorporateDetails
	CreatedBy      string
	UpdatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func (c *Customer) IsApproved() bool {
	return c.ApprovalStatus == EntityApprovalApproved
}

func (c *Customer) DisplayName() string {
	switch c.CustomerType {
	case CustomerTypeCorporate:
		if c.Corporate != nil {
			return strings.TrimSpace(c.Corporate.CompanyName)
		}
	case CustomerTypePersonal:
		if c.Personal != nil {
			return strings.TrimSpace(strings.TrimSpace(c.Personal.FirstName) + " " + strings.TrimSpace(c.Personal.LastName))
		}
	}
	return c.CustomerNumber
}

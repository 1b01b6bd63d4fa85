package domain

import (
	"strings"
	"time"
)

type RequestType string

const (
	RequestTypeCustomerCreation RequestType = "CUSTOMER_CREATION"
	RequestTypeAccountOpening   RequestType = "ACCOUNT_OPENING"
)

type EntityType string

const (
	EntityTypeCustomer EntityType = "CUSTOMER"
	EntityTypeAccount  EntityType = "ACCOUNT"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// ApprovalRequest gates activation of a newly created customer or account.
// Once resolved the record is terminal.
type ApprovalRequest struct {
	ID              string
	RequestType     RequestType
	EntityType      EntityType
	EntityID        string
	ApprovalStatus  ApprovalStatus
	RequestedBy     string
	RequestNotes    string
	RequestedDate   time.Time
	ReviewedBy      *string
	ReviewNotes     *string
	ReviewedDate    *time.Time
	RejectionReason *string
	BranchID        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *ApprovalRequest) IsPending() bool {
	return r.ApprovalStatus == ApprovalStatusPending
}

// Approve transitions the request to APPROVED. Dual control: the reviewer
// must be a different actor than the requester.
func (r *ApprovalRequest) Approve(reviewedBy, reviewNotes string, now time.Time) error {
	if !r.IsPending() {
		return ErrNotPending
	}
	if strings.EqualFold(strings.TrimSpace(reviewedBy), strings.TrimSpace(r.RequestedBy)) {
		return ErrSelfApproval
	}
	r.ApprovalStatus = ApprovalStatusApproved
	r.ReviewedBy = &reviewedBy
	r.ReviewNotes = &reviewNotes
	reviewed := now
	r.ReviewedDate = &reviewed
	return nil
}

// Reject transitions the request to REJECTED. A rejection reason is
// mandatory.
func (r *ApprovalRequest) Reject(reviewedBy, rejectionReason, reviewNotes string, now time.Time) error {
	if !r.IsPending() {
		return ErrNotPending
	}
	if strings.TrimSpace(rejectionReason) == "" {
		return ErrMissingReason
	}
	if strings.EqualFold(strings.TrimSpace(reviewedBy), strings.TrimSpace(r.RequestedBy)) {
		return ErrSelfApproval
	}
	r.ApprovalStatus = ApprovalStatusRejected
	r.ReviewedBy = &reviewedBy
	r.RejectionReason = &rejectionReason
	r.ReviewNotes = &reviewNotes
	reviewed := now
	r.ReviewedDate = &reviewed
	return nil
}

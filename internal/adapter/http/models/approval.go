package models

import (
	"fmt"
	"strings"
)

type ApproveRequest struct {
	RequestID   string `json:"requestId"`
	ReviewNotes string `json:"reviewNotes"`
	ActingUser  string `json:"-"`
}

func (r ApproveRequest) Validate() error {
	if strings.TrimSpace(r.RequestID) == "" {
		return fmt.Errorf("requestId is required")
	}
	return nil
}

type RejectRequest struct {
	RequestID       string `json:"requestId"`
	RejectionReason string `json:"rejectionReason"`
	ReviewNotes     string `json:"reviewNotes"`
	ActingUser      string `json:"-"`
}

func (r RejectRequest) Validate() error {
	if strings.TrimSpace(r.RequestID) == "" {
		return fmt.Errorf("requestId is required")
	}
	return nil
}

type ApprovalRequestResponse struct {
	ID              string  `json:"id"`
	RequestType     string  `json:"requestType"`
	EntityType      string  `json:"entityType"`
	EntityID        string  `json:"entityId"`
	ApprovalStatus  string  `json:"approvalStatus"`
	RequestedBy     string  `json:"requestedBy"`
	RequestNotes    string  `json:"requestNotes,omitempty"`
	RequestedDate   string  `json:"requestedDate"`
	ReviewedBy      *string `json:"reviewedBy,omitempty"`
	ReviewNotes     *string `json:"reviewNotes,omitempty"`
	ReviewedDate    *string `json:"reviewedDate,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	BranchID        string  `json:"branchId,omitempty"`
}

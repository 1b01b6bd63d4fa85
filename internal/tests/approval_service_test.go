package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/usecase/services"
)

func TestApprovalServiceApproveValidationError(t *testing.T) {
	svc := services.NewApprovalService(nil, nil, nil, nil)

	_, err := svc.Approve(context.Background(), models.ApproveRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty approve request")
	}
}

func TestApprovalServiceRejectValidationError(t *testing.T) {
	svc := services.NewApprovalService(nil, nil, nil, nil)

	_, err := svc.Reject(context.Background(), models.RejectRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty reject request")
	}
}

func TestApprovalServiceGetValidationError(t *testing.T) {
	svc := services.NewApprovalService(nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), "")
	if err == nil {
		t.Fatal("expected validation error for blank request id")
	}
}

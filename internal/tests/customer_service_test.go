package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/usecase/services"
)

func TestCustomerServiceCreateCustomerValidationError(t *testing.T) {
	svc := services.NewCustomerService(nil, nil, nil, nil, nil)

	_, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty customer request")
	}
}

func TestCustomerServiceCreateCustomerRequiresPayload(t *testing.T) {
	svc := services.NewCustomerService(nil, nil, nil, nil, nil)

	_, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{
		CustomerType: "PERSONAL",
		Email:        "budi@example.com",
	})
	if err == nil {
		t.Fatal("expected validation error for personal customer without payload")
	}
}

func TestCustomerServiceGetCustomerValidationError(t *testing.T) {
	svc := services.NewCustomerService(nil, nil, nil, nil, nil)

	_, err := svc.GetCustomer(context.Background(), "")
	if err == nil {
		t.Fatal("expected validation error for blank customer id")
	}
}

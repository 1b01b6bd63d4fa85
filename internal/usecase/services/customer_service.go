package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/commons"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
	"github.com/api-sage/minibank-core/internal/usecase/service_interfaces"
)

const dateOfBirthLayout = "2006-01-02"

// CustomerService creates customers in PENDING_APPROVAL state; activation
// happens through the approval workflow.
type CustomerService struct {
	txRunner     repo_interfaces.TxRunner
	customerRepo repo_interfaces.CustomerRepository
	branchRepo   repo_interfaces.BranchRepository
	sequenceGen  service_interfaces.SequenceGenerator
	workflow     service_interfaces.ApprovalWorkflow
}

func NewCustomerService(
	txRunner repo_interfaces.TxRunner,
	customerRepo repo_interfaces.CustomerRepository,
	branchRepo repo_interfaces.BranchRepository,
	sequenceGen service_interfaces.SequenceGenerator,
	workflow service_interfaces.ApprovalWorkflow,
) *CustomerService {
	return &CustomerService{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		sequenceGen:  sequenceGen,
		workflow:     workflow,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CustomerCreateRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := customerFromRequest(req)
	if err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	if customer.BranchID != "" {
		if _, err := s.branchRepo.GetByID(ctx, customer.BranchID); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return commons.ErrorResponse[models.CustomerResponse]("Branch not found"), err
			}
			return createCustomerFailureResponse(), err
		}
	}

	customerNumber, err := s.sequenceGen.NextValue(ctx, domain.SequenceCustomerNumber, domain.PrefixCustomerNumber)
	if err != nil {
		return createCustomerFailureResponse(), err
	}
	customer.CustomerNumber = customerNumber

	var created domain.Customer
	var approval domain.ApprovalRequest
	err = withConflictRetry(ctx, func() error {
		return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
			var inner error
			created, inner = s.customerRepo.Create(ctx, tx, customer)
			if inner != nil {
				return fmt.Errorf("create customer: %w", inner)
			}

			approval, inner = s.workflow.CreateRequest(ctx, tx, domain.ApprovalRequest{
				RequestType:  domain.RequestTypeCustomerCreation,
				EntityType:   domain.EntityTypeCustomer,
				EntityID:     created.ID,
				RequestedBy:  customer.CreatedBy,
				RequestNotes: req.RequestNotes,
				BranchID:     customer.BranchID,
			})
			return inner
		})
	})
	if err != nil {
		logger.Error("customer service create failed", err, logger.Fields{
			"customerNumber": customerNumber,
		})
		return createCustomerFailureResponse(), err
	}

	logger.Info("customer service customer created", logger.Fields{
		"customerNumber": created.CustomerNumber,
		"customerType":   string(created.CustomerType),
	})
	return commons.SuccessResponse("customer created pending approval", models.CustomerResponse{
		ID:                created.ID,
		CustomerNumber:    created.CustomerNumber,
		CustomerType:      string(created.CustomerType),
		DisplayName:       created.DisplayName(),
		Email:             created.Email,
		PhoneNumber:       created.PhoneNumber,
		Status:            string(created.Status),
		ApprovalStatus:    string(created.ApprovalStatus),
		BranchID:          created.BranchID,
		ApprovalRequestID: approval.ID,
	}), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (commons.Response[models.CustomerResponse], error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		err := fmt.Errorf("customerId is required")
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("failed to fetch customer", "Unable to fetch customer right now"), err
	}

	return commons.SuccessResponse("customer fetched", models.CustomerResponse{
		ID:             customer.ID,
		CustomerNumber: customer.CustomerNumber,
		CustomerType:   string(customer.CustomerType),
		DisplayName:    customer.DisplayName(),
		Email:          customer.Email,
		PhoneNumber:    customer.PhoneNumber,
		Status:         string(customer.Status),
		ApprovalStatus: string(customer.ApprovalStatus),
		BranchID:       customer.BranchID,
	}), nil
}

func customerFromRequest(req models.CustomerCreateRequest) (domain.Customer, error) {
	actingUser := actingOrSystem(req.ActingUser)
	customer := domain.Customer{
		Email:          strings.TrimSpace(req.Email),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		Address:        strings.TrimSpace(req.Address),
		City:           strings.TrimSpace(req.City),
		PostalCode:     strings.TrimSpace(req.PostalCode),
		Status:         domain.CustomerStatusInactive,
		ApprovalStatus: domain.EntityApprovalPending,
		BranchID:       strings.TrimSpace(req.BranchID),
		CreatedBy:      actingUser,
		UpdatedBy:      actingUser,
	}

	switch strings.ToUpper(strings.TrimSpace(req.CustomerType)) {
	case string(domain.CustomerTypeCorporate):
		customer.CustomerType = domain.CustomerTypeCorporate
		customer.Corporate = &domain.CorporateDetails{
			CompanyName:        strings.TrimSpace(req.Corporate.CompanyName),
			RegistrationNumber: strings.TrimSpace(req.Corporate.RegistrationNumber),
			TaxID:              strings.TrimSpace(req.Corporate.TaxID),
		}
	default:
		customer.CustomerType = domain.CustomerTypePersonal
		details := &domain.PersonalDetails{
			FirstName:      strings.TrimSpace(req.Personal.FirstName),
			LastName:       strings.TrimSpace(req.Personal.LastName),
			IdentityType:   domain.IdentityType(strings.ToUpper(strings.TrimSpace(req.Personal.IdentityType))),
			IdentityNumber: strings.TrimSpace(req.Personal.IdentityNumber),
		}
		if dob := strings.TrimSpace(req.Personal.DateOfBirth); dob != "" {
			parsed, err := time.Parse(dateOfBirthLayout, dob)
			if err != nil {
				return domain.Customer{}, fmt.Errorf("dateOfBirth must be in YYYY-MM-DD format")
			}
			details.DateOfBirth = parsed
		}
		customer.Personal = details
	}
	return customer, nil
}

func createCustomerFailureResponse() commons.Response[models.CustomerResponse] {
	return commons.ErrorResponse[models.CustomerResponse]("failed to create customer", "Unable to create customer right now")
}

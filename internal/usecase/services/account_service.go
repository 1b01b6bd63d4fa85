package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/commons"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
	"github.com/api-sage/minibank-core/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

// AccountService orchestrates account opening: eligibility checks, number
// allocation, the initial deposit, and the approval request that gates
// activation. Everything after number allocation commits atomically.
type AccountService struct {
	txRunner     repo_interfaces.TxRunner
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
	productRepo  repo_interfaces.ProductRepository
	sequenceGen  service_interfaces.SequenceGenerator
	recorder     service_interfaces.TransactionRecorder
	workflow     service_interfaces.ApprovalWorkflow
}

func NewAccountService(
	txRunner repo_interfaces.TxRunner,
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	productRepo repo_interfaces.ProductRepository,
	sequenceGen service_interfaces.SequenceGenerator,
	recorder service_interfaces.TransactionRecorder,
	workflow service_interfaces.ApprovalWorkflow,
) *AccountService {
	return &AccountService{
		txRunner:     txRunner,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		sequenceGen:  sequenceGen,
		recorder:     recorder,
		workflow:     workflow,
	}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.AccountOpeningRequest) (commons.Response[models.AccountOpeningResponse], error) {
	logger.Info("account service opening request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
	}
	if req.InitialDeposit.LessThanOrEqual(decimal.Zero) {
		err := domain.ErrInvalidAmount
		return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountOpeningResponse]("Customer not found"), err
		}
		return openingFailureResponse(), err
	}
	if !customer.IsActive() || !customer.IsApproved() {
		err := domain.ErrCustomerNotActive
		return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountOpeningResponse]("Product not found"), err
		}
		return openingFailureResponse(), err
	}
	if !product.IsActive {
		err := domain.ErrProductNotActive
		return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
	}
	if !product.EligibleFor(customer.CustomerType) {
		err := domain.ErrProductNotEligible
		return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
	}
	if req.InitialDeposit.LessThan(product.MinimumDepositFor(customer.CustomerType)) {
		err := domain.ErrMinimumDepositNotMet
		return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
	}

	accountNumber, err := s.allocateAccountNumber(ctx, customer.CustomerType)
	if err != nil {
		return openingFailureResponse(), err
	}

	var response models.AccountOpeningResponse
	err = withConflictRetry(ctx, func() error {
		var inner error
		response, inner = s.createAccount(ctx, customer, product, accountNumber, req)
		return inner
	})
	if err != nil {
		logger.Error("account service opening failed", err, logger.Fields{
			"customerId":    customer.ID,
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrDuplicatePending) {
			return commons.ErrorResponse[models.AccountOpeningResponse]("validation failed", err.Error()), err
		}
		return openingFailureResponse(), err
	}

	logger.Info("account service account opened", logger.Fields{
		"accountNumber": response.AccountNumber,
		"customerId":    customer.ID,
	})
	return commons.SuccessResponse("account opened pending approval", response), nil
}

// allocateAccountNumber draws from the counter matching the customer
// type. Allocation commits independently of the opening transaction, so
// an aborted opening leaves a gap, never a duplicate.
func (s *AccountService) allocateAccountNumber(ctx context.Context, customerType domain.CustomerType) (string, error) {
	if customerType == domain.CustomerTypeCorporate {
		return s.sequenceGen.NextValue(ctx, domain.SequenceCorporateAccountNumber, domain.PrefixCorporateAccountNumber)
	}
	return s.sequenceGen.NextValue(ctx, domain.SequenceAccountNumber, domain.PrefixAccountNumber)
}

func (s *AccountService) createAccount(
	ctx context.Context,
	customer domain.Customer,
	product domain.Product,
	accountNumber string,
	req models.AccountOpeningRequest,
) (models.AccountOpeningResponse, error) {
	actingUser := actingOrSystem(req.ActingUser)
	now := time.Now()

	var account domain.Account
	var recorded domain.Transaction
	var approval domain.ApprovalRequest
	err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		account, err = s.accountRepo.Create(ctx, tx, domain.Account{
			CustomerID:     customer.ID,
			ProductID:      product.ID,
			BranchID:       customer.BranchID,
			AccountNumber:  accountNumber,
			AccountName:    req.AccountName,
			Balance:        decimal.Zero,
			Status:         domain.AccountStatusInactive,
			ApprovalStatus: domain.EntityApprovalPending,
			OpenedDate:     now,
			CreatedBy:      actingUser,
			UpdatedBy:      actingUser,
		})
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		if err := account.Deposit(req.InitialDeposit); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance, actingUser); err != nil {
			return err
		}

		recorded, err = s.recorder.Record(ctx, tx, service_interfaces.RecordInput{
			Account:         account,
			TransactionType: domain.TransactionTypeDeposit,
			Amount:          req.InitialDeposit,
			BalanceBefore:   decimal.Zero,
			Description:     "Initial deposit for account opening",
			ReferenceNumber: "ACCOUNT-OPENING-" + account.AccountNumber,
			Channel:         domain.ChannelTeller,
			ActingUser:      actingUser,
			When:            now,
		})
		if err != nil {
			return err
		}

		approval, err = s.workflow.CreateRequest(ctx, tx, domain.ApprovalRequest{
			RequestType:   domain.RequestTypeAccountOpening,
			EntityType:    domain.EntityTypeAccount,
			EntityID:      account.ID,
			RequestedBy:   actingUser,
			RequestNotes:  req.RequestNotes,
			RequestedDate: now,
			BranchID:      customer.BranchID,
		})
		return err
	})
	if err != nil {
		return models.AccountOpeningResponse{}, err
	}

	return models.AccountOpeningResponse{
		ID:                account.ID,
		CustomerID:        account.CustomerID,
		AccountNumber:     account.AccountNumber,
		AccountName:       account.AccountName,
		Balance:           account.Balance.StringFixed(2),
		Status:            string(account.Status),
		ApprovalStatus:    string(account.ApprovalStatus),
		ApprovalRequestID: approval.ID,
		TransactionNumber: recorded.TransactionNumber,
		OpenedDate:        account.OpenedDate.Format(time.RFC3339),
	}, nil
}

func openingFailureResponse() commons.Response[models.AccountOpeningResponse] {
	return commons.ErrorResponse[models.AccountOpeningResponse]("failed to open account", "Unable to open account right now")
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/commons"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
	"github.com/api-sage/minibank-core/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

// TransferService moves funds between two accounts in two phases:
// Validate resolves and checks both sides without side effects, Process
// applies both legs atomically inside one database transaction.
type TransferService struct {
	txRunner     repo_interfaces.TxRunner
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
	recorder     service_interfaces.TransactionRecorder
}

func NewTransferService(
	txRunner repo_interfaces.TxRunner,
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	recorder service_interfaces.TransactionRecorder,
) *TransferService {
	return &TransferService{
		txRunner:     txRunner,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		recorder:     recorder,
	}
}

// Validate resolves the source and destination accounts and runs every
// transfer precondition. It never mutates anything; the caller can show
// the destination names for confirmation before calling Process.
func (s *TransferService) Validate(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferValidationResponse], error) {
	logger.Info("transfer service validation request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferValidationResponse]("validation failed", err.Error()), err
	}

	source, destination, err := s.resolveAndCheck(ctx, req)
	if err != nil {
		return transferErrorResponse[models.TransferValidationResponse](err), err
	}

	destinationCustomerName := ""
	if customer, err := s.customerRepo.GetByID(ctx, destination.CustomerID); err == nil {
		destinationCustomerName = customer.DisplayName()
	}

	return commons.SuccessResponse("transfer validated", models.TransferValidationResponse{
		FromAccountID:           source.ID,
		FromAccountNumber:       source.AccountNumber,
		ToAccountID:             destination.ID,
		ToAccountNumber:         destination.AccountNumber,
		DestinationAccountName:  destination.AccountName,
		DestinationCustomerName: destinationCustomerName,
		Amount:                  req.Amount.StringFixed(2),
		ReferenceNumber:         strings.TrimSpace(req.ReferenceNumber),
	}), nil
}

// Process executes the transfer. Both account rows are locked in account
// id order before re-validation so concurrent transfers over the same
// pair cannot deadlock or double-spend.
func (s *TransferService) Process(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service process request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	// Resolve the destination id up front so both rows can be locked in a
	// deterministic order inside the transaction.
	source, destination, err := s.resolveAndCheck(ctx, req)
	if err != nil {
		return transferErrorResponse[models.TransferResponse](err), err
	}

	referenceNumber := strings.TrimSpace(req.ReferenceNumber)
	if referenceNumber == "" {
		referenceNumber = uuid.NewString()
	}

	var response models.TransferResponse
	err = withConflictRetry(ctx, func() error {
		var inner error
		response, inner = s.executeTransfer(ctx, source.ID, destination.ID, req, referenceNumber)
		return inner
	})
	if err != nil {
		logger.Error("transfer service process failed", err, logger.Fields{
			"fromAccountId":   req.FromAccountID,
			"toAccountNumber": req.ToAccountNumber,
		})
		return transferErrorResponse[models.TransferResponse](err), err
	}

	logger.Info("transfer service transfer processed", logger.Fields{
		"referenceNumber":   response.ReferenceNumber,
		"fromAccountNumber": response.FromAccountNumber,
		"toAccountNumber":   response.ToAccountNumber,
	})
	return commons.SuccessResponse("transfer processed", response), nil
}

func (s *TransferService) resolveAndCheck(ctx context.Context, req models.TransferRequest) (domain.Account, domain.Account, error) {
	source, err := s.accountRepo.GetByID(ctx, strings.TrimSpace(req.FromAccountID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.Account{}, fmt.Errorf("source account: %w", err)
		}
		return domain.Account{}, domain.Account{}, err
	}
	destination, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(req.ToAccountNumber))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.Account{}, fmt.Errorf("destination account: %w", err)
		}
		return domain.Account{}, domain.Account{}, err
	}

	if source.ID == destination.ID {
		return domain.Account{}, domain.Account{}, domain.ErrSameAccount
	}
	if err := checkTransferPair(&source, &destination, req); err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	return source, destination, nil
}

// checkTransferPair runs the transfer preconditions against in-memory
// copies. The copies absorb the trial mutations; the caller's rows are
// untouched.
func checkTransferPair(source, destination *domain.Account, req models.TransferRequest) error {
	if err := source.TransferOut(req.Amount); err != nil {
		return err
	}
	if err := destination.TransferIn(req.Amount); err != nil {
		return err
	}
	return nil
}

func (s *TransferService) executeTransfer(
	ctx context.Context,
	sourceID, destinationID string,
	req models.TransferRequest,
	referenceNumber string,
) (models.TransferResponse, error) {
	var source, destination domain.Account
	var outLeg, inLeg domain.Transaction
	err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		firstID, secondID := sourceID, destinationID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		locked := make(map[string]domain.Account, 2)
		for _, id := range []string{firstID, secondID} {
			account, err := s.accountRepo.GetByIDForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}
		source = locked[sourceID]
		destination = locked[destinationID]

		sourceBefore := source.Balance
		destinationBefore := destination.Balance
		if err := source.TransferOut(req.Amount); err != nil {
			return err
		}
		if err := destination.TransferIn(req.Amount); err != nil {
			return err
		}

		actingUser := actingOrSystem(req.ActingUser)
		if err := s.accountRepo.UpdateBalance(ctx, tx, source.ID, source.Balance, actingUser); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateBalance(ctx, tx, destination.ID, destination.Balance, actingUser); err != nil {
			return err
		}

		var err error
		outLeg, err = s.recorder.Record(ctx, tx, service_interfaces.RecordInput{
			Account:              source,
			TransactionType:      domain.TransactionTypeTransferOut,
			Amount:               req.Amount,
			BalanceBefore:        sourceBefore,
			Description:          legDescription("Transfer to", destination.AccountNumber, req.Description),
			ReferenceNumber:      referenceNumber,
			Channel:              domain.ChannelTransfer,
			DestinationAccountID: &destination.ID,
			ActingUser:           actingUser,
		})
		if err != nil {
			return err
		}
		inLeg, err = s.recorder.Record(ctx, tx, service_interfaces.RecordInput{
			Account:         destination,
			TransactionType: domain.TransactionTypeTransferIn,
			Amount:          req.Amount,
			BalanceBefore:   destinationBefore,
			Description:     legDescription("Transfer from", source.AccountNumber, req.Description),
			ReferenceNumber: referenceNumber,
			Channel:         domain.ChannelTransfer,
			ActingUser:      actingUser,
		})
		return err
	})
	if err != nil {
		return models.TransferResponse{}, err
	}

	return models.TransferResponse{
		ReferenceNumber:    referenceNumber,
		TransferOutNumber:  outLeg.TransactionNumber,
		TransferInNumber:   inLeg.TransactionNumber,
		FromAccountNumber:  source.AccountNumber,
		ToAccountNumber:    destination.AccountNumber,
		Amount:             req.Amount.StringFixed(2),
		SourceBalance:      source.Balance.StringFixed(2),
		DestinationBalance: destination.Balance.StringFixed(2),
	}, nil
}

func legDescription(direction, accountNumber, description string) string {
	base := direction + " " + accountNumber
	if description = strings.TrimSpace(description); description != "" {
		return base + " - " + description
	}
	return base
}

func transferErrorResponse[T any](err error) commons.Response[T] {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[T]("Account not found", err.Error())
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAccountClosed),
		errors.Is(err, domain.ErrAccountNotActive),
		errors.Is(err, domain.ErrInsufficientBalance):
		return commons.ErrorResponse[T]("validation failed", err.Error())
	}
	return commons.ErrorResponse[T]("failed to process transfer", "Unable to process transfer right now")
}

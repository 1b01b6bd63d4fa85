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
	"github.com/shopspring/decimal"
)

// LedgerService is the sole authority over account balances. Every
// mutation locks the account row, applies the domain rule, and records
// the paired transaction inside one database transaction.
type LedgerService struct {
	txRunner        repo_interfaces.TxRunner
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	recorder        service_interfaces.TransactionRecorder
}

func NewLedgerService(
	txRunner repo_interfaces.TxRunner,
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	recorder service_interfaces.TransactionRecorder,
) *LedgerService {
	return &LedgerService{
		txRunner:        txRunner,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		recorder:        recorder,
	}
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	var recorded domain.Transaction
	var account domain.Account
	err := withConflictRetry(ctx, func() error {
		var inner error
		recorded, account, inner = s.mutateBalance(ctx, req.AccountID, req.Amount, domain.TransactionTypeDeposit, mutationInput{
			description:     req.Description,
			referenceNumber: req.ReferenceNumber,
			channel:         channelOrDefault(req.Channel),
			actingUser:      req.ActingUser,
		})
		return inner
	})
	if err != nil {
		return depositErrorResponse(err), err
	}

	logger.Info("ledger service deposit applied", logger.Fields{
		"accountNumber":     account.AccountNumber,
		"transactionNumber": recorded.TransactionNumber,
	})
	return commons.SuccessResponse("deposit applied", toTransactionResponse(recorded, account.AccountNumber)), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawalRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service withdrawal request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	var recorded domain.Transaction
	var account domain.Account
	err := withConflictRetry(ctx, func() error {
		var inner error
		recorded, account, inner = s.mutateBalance(ctx, req.AccountID, req.Amount, domain.TransactionTypeWithdrawal, mutationInput{
			description:     req.Description,
			referenceNumber: req.ReferenceNumber,
			channel:         channelOrDefault(req.Channel),
			actingUser:      req.ActingUser,
		})
		return inner
	})
	if err != nil {
		return withdrawalErrorResponse(err), err
	}

	logger.Info("ledger service withdrawal applied", logger.Fields{
		"accountNumber":     account.AccountNumber,
		"transactionNumber": recorded.TransactionNumber,
	})
	return commons.SuccessResponse("withdrawal applied", toTransactionResponse(recorded, account.AccountNumber)), nil
}

// CloseAccount soft-closes a zero-balance account. No transaction row is
// written: closure moves no funds.
func (s *LedgerService) CloseAccount(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.CloseAccountResponse], error) {
	logger.Info("ledger service close account request", logger.Fields{
		"accountId": req.AccountID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CloseAccountResponse]("validation failed", err.Error()), err
	}

	var account domain.Account
	err := withConflictRetry(ctx, func() error {
		return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
			var inner error
			account, inner = s.accountRepo.GetByIDForUpdate(ctx, tx, req.AccountID)
			if inner != nil {
				return inner
			}

			now := time.Now()
			if inner = account.Close(now); inner != nil {
				return inner
			}
			return s.accountRepo.MarkClosed(ctx, tx, account.ID, now, actingOrSystem(req.ActingUser))
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.CloseAccountResponse]("Account not found"), err
		case errors.Is(err, domain.ErrAlreadyClosed), errors.Is(err, domain.ErrNonZeroBalance):
			return commons.ErrorResponse[models.CloseAccountResponse]("unable to close account", err.Error()), err
		}
		logger.Error("ledger service close account failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.CloseAccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	logger.Info("ledger service account closed", logger.Fields{
		"accountNumber": account.AccountNumber,
	})
	return commons.SuccessResponse("account closed", models.CloseAccountResponse{
		AccountNumber: account.AccountNumber,
		Status:        string(account.Status),
		ClosedDate:    account.ClosedDate.Format(time.RFC3339),
	}), nil
}

func (s *LedgerService) GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := fmt.Errorf("accountId is required")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to fetch account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched", toAccountResponse(account)), nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, accountID string, limit int) (commons.Response[[]models.TransactionResponse], error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := fmt.Errorf("accountId is required")
		return commons.ErrorResponse[[]models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	transactions, err := s.transactionRepo.ListByAccountID(ctx, accountID, limit)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, toTransactionResponse(t, account.AccountNumber))
	}
	return commons.SuccessResponse("transactions fetched", responses), nil
}

type mutationInput struct {
	description     string
	referenceNumber string
	channel         domain.TransactionChannel
	actingUser      string
}

// mutateBalance runs one lock-mutate-record cycle for a deposit or
// withdrawal and returns the recorded transaction plus the account as it
// stands after the mutation.
func (s *LedgerService) mutateBalance(
	ctx context.Context,
	accountID string,
	amount decimal.Decimal,
	txType domain.TransactionType,
	input mutationInput,
) (domain.Transaction, domain.Account, error) {
	var recorded domain.Transaction
	var account domain.Account
	err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		account, err = s.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}

		balanceBefore := account.Balance
		switch txType {
		case domain.TransactionTypeDeposit:
			err = account.Deposit(amount)
		case domain.TransactionTypeWithdrawal:
			err = account.Withdraw(amount)
		default:
			err = fmt.Errorf("unsupported ledger mutation %s", txType)
		}
		if err != nil {
			return err
		}

		actingUser := actingOrSystem(input.actingUser)
		if err := s.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance, actingUser); err != nil {
			return err
		}

		recorded, err = s.recorder.Record(ctx, tx, service_interfaces.RecordInput{
			Account:         account,
			TransactionType: txType,
			Amount:          amount,
			BalanceBefore:   balanceBefore,
			Description:     input.description,
			ReferenceNumber: input.referenceNumber,
			Channel:         input.channel,
			ActingUser:      actingUser,
		})
		return err
	})
	if err != nil {
		return domain.Transaction{}, domain.Account{}, err
	}
	return recorded, account, nil
}

func depositErrorResponse(err error) commons.Response[models.TransactionResponse] {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[models.TransactionResponse]("Account not found")
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAccountClosed):
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error())
	}
	return commons.ErrorResponse[models.TransactionResponse]("failed to process deposit", "Unable to process deposit right now")
}

func withdrawalErrorResponse(err error) commons.Response[models.TransactionResponse] {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[models.TransactionResponse]("Account not found")
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAccountClosed),
		errors.Is(err, domain.ErrInsufficientBalance):
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error())
	}
	return commons.ErrorResponse[models.TransactionResponse]("failed to process withdrawal", "Unable to process withdrawal right now")
}

func channelOrDefault(channel string) domain.TransactionChannel {
	switch strings.ToUpper(strings.TrimSpace(channel)) {
	case string(domain.ChannelATM):
		return domain.ChannelATM
	case string(domain.ChannelOnline):
		return domain.ChannelOnline
	case string(domain.ChannelMobile):
		return domain.ChannelMobile
	case string(domain.ChannelTransfer):
		return domain.ChannelTransfer
	default:
		return domain.ChannelTeller
	}
}

func toTransactionResponse(t domain.Transaction, accountNumber string) models.TransactionResponse {
	return models.TransactionResponse{
		TransactionNumber: t.TransactionNumber,
		AccountNumber:     accountNumber,
		TransactionType:   string(t.TransactionType),
		Amount:            t.Amount.StringFixed(2),
		Currency:          t.Currency,
		BalanceBefore:     t.BalanceBefore.StringFixed(2),
		BalanceAfter:      t.BalanceAfter.StringFixed(2),
		Description:       t.Description,
		ReferenceNumber:   t.ReferenceNumber,
		Channel:           string(t.Channel),
		TransactionDate:   t.TransactionDate.Format(time.RFC3339),
	}
}

func toAccountResponse(account domain.Account) models.AccountResponse {
	response := models.AccountResponse{
		ID:             account.ID,
		CustomerID:     account.CustomerID,
		AccountNumber:  account.AccountNumber,
		AccountName:    account.AccountName,
		Balance:        account.Balance.StringFixed(2),
		Status:         string(account.Status),
		ApprovalStatus: string(account.ApprovalStatus),
		OpenedDate:     account.OpenedDate.Format(time.RFC3339),
	}
	if account.ClosedDate != nil {
		closed := account.ClosedDate.Format(time.RFC3339)
		response.ClosedDate = &closed
	}
	return response
}

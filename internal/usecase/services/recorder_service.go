package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
	"github.com/api-sage/minibank-core/internal/usecase/service_interfaces"
)

const systemActor = "SYSTEM"

type RecorderService struct {
	transactionRepo repo_interfaces.TransactionRepository
	sequenceGen     service_interfaces.SequenceGenerator
}

func NewRecorderService(
	transactionRepo repo_interfaces.TransactionRepository,
	sequenceGen service_interfaces.SequenceGenerator,
) *RecorderService {
	return &RecorderService{
		transactionRepo: transactionRepo,
		sequenceGen:     sequenceGen,
	}
}

// Record writes the immutable ledger row paired with a balance mutation.
// The computed balance_after must equal the account's actual post-mutation
// balance; a mismatch means the caller applied a different mutation than it
// is recording, which is a consistency bug, so the whole transaction is
// aborted rather than persisting a lying snapshot.
func (s *RecorderService) Record(ctx context.Context, tx *sql.Tx, input service_interfaces.RecordInput) (domain.Transaction, error) {
	transactionNumber, err := s.sequenceGen.NextValue(ctx, domain.SequenceTransactionNumber, domain.PrefixTransactionNumber)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("allocate transaction number: %w", err)
	}

	balanceAfter := domain.NextBalance(input.BalanceBefore, input.TransactionType, input.Amount)
	if !balanceAfter.Equal(input.Account.Balance) {
		err := fmt.Errorf(
			"ledger consistency violation on account %s: recorded balance %s does not match account balance %s",
			input.Account.ID, balanceAfter.StringFixed(2), input.Account.Balance.StringFixed(2),
		)
		logger.Error("recorder service balance mismatch", err, logger.Fields{
			"accountId":         input.Account.ID,
			"transactionNumber": transactionNumber,
		})
		return domain.Transaction{}, err
	}

	when := input.When
	if when.IsZero() {
		when = time.Now()
	}

	transaction := domain.Transaction{
		AccountID:            input.Account.ID,
		TransactionNumber:    transactionNumber,
		TransactionType:      input.TransactionType,
		Amount:               input.Amount,
		Currency:             domain.DefaultCurrency,
		BalanceBefore:        input.BalanceBefore,
		BalanceAfter:         balanceAfter,
		Description:          strings.TrimSpace(input.Description),
		ReferenceNumber:      strings.TrimSpace(input.ReferenceNumber),
		Channel:              input.Channel,
		DestinationAccountID: input.DestinationAccountID,
		TransactionDate:      when,
		ProcessedDate:        when,
		CreatedBy:            actingOrSystem(input.ActingUser),
	}

	created, err := s.transactionRepo.Create(ctx, tx, transaction)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	return created, nil
}

func actingOrSystem(actingUser string) string {
	actingUser = strings.TrimSpace(actingUser)
	if actingUser == "" {
		return systemActor
	}
	return actingUser
}

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
)

// approvalTarget applies the entity side effect of a resolved request:
// approval activates the entity, rejection marks it rejected.
type approvalTarget interface {
	applyDecision(ctx context.Context, tx *sql.Tx, entityID string, approved bool, actingUser string) error
}

type accountTarget struct {
	accountRepo repo_interfaces.AccountRepository
}

func (t accountTarget) applyDecision(ctx context.Context, tx *sql.Tx, entityID string, approved bool, actingUser string) error {
	if approved {
		return t.accountRepo.UpdateApproval(ctx, tx, entityID, domain.AccountStatusActive, domain.EntityApprovalApproved, actingUser)
	}
	// A rejected opening closes the account outright; it never held
	// cleared funds.
	return t.accountRepo.UpdateApproval(ctx, tx, entityID, domain.AccountStatusClosed, domain.EntityApprovalRejected, actingUser)
}

type customerTarget struct {
	customerRepo repo_interfaces.CustomerRepository
}

func (t customerTarget) applyDecision(ctx context.Context, tx *sql.Tx, entityID string, approved bool, actingUser string) error {
	if approved {
		return t.customerRepo.UpdateApproval(ctx, tx, entityID, domain.CustomerStatusActive, domain.EntityApprovalApproved, actingUser)
	}
	return t.customerRepo.UpdateApproval(ctx, tx, entityID, domain.CustomerStatusInactive, domain.EntityApprovalRejected, actingUser)
}

type ApprovalService struct {
	txRunner     repo_interfaces.TxRunner
	approvalRepo repo_interfaces.ApprovalRequestRepository
	targets      map[domain.EntityType]approvalTarget
}

func NewApprovalService(
	txRunner repo_interfaces.TxRunner,
	approvalRepo repo_interfaces.ApprovalRequestRepository,
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *ApprovalService {
	return &ApprovalService{
		txRunner:     txRunner,
		approvalRepo: approvalRepo,
		targets: map[domain.EntityType]approvalTarget{
			domain.EntityTypeAccount:  accountTarget{accountRepo: accountRepo},
			domain.EntityTypeCustomer: customerTarget{customerRepo: customerRepo},
		},
	}
}

// CreateRequest opens a PENDING request inside the caller's transaction.
// An entity can carry at most one pending request at a time.
func (s *ApprovalService) CreateRequest(ctx context.Context, tx *sql.Tx, request domain.ApprovalRequest) (domain.ApprovalRequest, error) {
	pending, err := s.approvalRepo.HasPending(ctx, tx, request.EntityType, request.EntityID)
	if err != nil {
		return domain.ApprovalRequest{}, err
	}
	if pending {
		return domain.ApprovalRequest{}, domain.ErrDuplicatePending
	}

	request.ApprovalStatus = domain.ApprovalStatusPending
	request.RequestedBy = actingOrSystem(request.RequestedBy)
	if request.RequestedDate.IsZero() {
		request.RequestedDate = time.Now()
	}

	created, err := s.approvalRepo.Create(ctx, tx, request)
	if err != nil {
		return domain.ApprovalRequest{}, fmt.Errorf("create approval request: %w", err)
	}
	return created, nil
}

func (s *ApprovalService) Approve(ctx context.Context, req models.ApproveRequest) (commons.Response[models.ApprovalRequestResponse], error) {
	logger.Info("approval service approve request", logger.Fields{
		"requestId": req.RequestID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ApprovalRequestResponse]("validation failed", err.Error()), err
	}

	request, err := s.resolve(ctx, req.RequestID, func(request *domain.ApprovalRequest, now time.Time) error {
		return request.Approve(strings.TrimSpace(req.ActingUser), strings.TrimSpace(req.ReviewNotes), now)
	})
	if err != nil {
		return decisionErrorResponse(err), err
	}

	logger.Info("approval service request approved", logger.Fields{
		"requestId":  request.ID,
		"entityType": string(request.EntityType),
		"entityId":   request.EntityID,
	})
	return commons.SuccessResponse("request approved", toApprovalResponse(request)), nil
}

func (s *ApprovalService) Reject(ctx context.Context, req models.RejectRequest) (commons.Response[models.ApprovalRequestResponse], error) {
	logger.Info("approval service reject request", logger.Fields{
		"requestId": req.RequestID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ApprovalRequestResponse]("validation failed", err.Error()), err
	}

	request, err := s.resolve(ctx, req.RequestID, func(request *domain.ApprovalRequest, now time.Time) error {
		return request.Reject(strings.TrimSpace(req.ActingUser), strings.TrimSpace(req.RejectionReason), strings.TrimSpace(req.ReviewNotes), now)
	})
	if err != nil {
		return decisionErrorResponse(err), err
	}

	logger.Info("approval service request rejected", logger.Fields{
		"requestId":  request.ID,
		"entityType": string(request.EntityType),
		"entityId":   request.EntityID,
	})
	return commons.SuccessResponse("request rejected", toApprovalResponse(request)), nil
}

// resolve locks the request row, applies the decision through the domain
// transition, persists it, and runs the entity side effect in the same
// transaction.
func (s *ApprovalService) resolve(
	ctx context.Context,
	requestID string,
	decide func(request *domain.ApprovalRequest, now time.Time) error,
) (domain.ApprovalRequest, error) {
	var request domain.ApprovalRequest
	err := withConflictRetry(ctx, func() error {
		return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
			var err error
			request, err = s.approvalRepo.GetByIDForUpdate(ctx, tx, requestID)
			if err != nil {
				return err
			}

			if err := decide(&request, time.Now()); err != nil {
				return err
			}
			if err := s.approvalRepo.UpdateDecision(ctx, tx, request); err != nil {
				return err
			}

			target, ok := s.targets[request.EntityType]
			if !ok {
				return fmt.Errorf("no approval target for entity type %s", request.EntityType)
			}
			reviewedBy := ""
			if request.ReviewedBy != nil {
				reviewedBy = *request.ReviewedBy
			}
			approved := request.ApprovalStatus == domain.ApprovalStatusApproved
			return target.applyDecision(ctx, tx, request.EntityID, approved, actingOrSystem(reviewedBy))
		})
	})
	if err != nil {
		return domain.ApprovalRequest{}, err
	}
	return request, nil
}

func (s *ApprovalService) Get(ctx context.Context, requestID string) (commons.Response[models.ApprovalRequestResponse], error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		err := fmt.Errorf("requestId is required")
		return commons.ErrorResponse[models.ApprovalRequestResponse]("validation failed", err.Error()), err
	}

	request, err := s.approvalRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ApprovalRequestResponse]("Approval request not found"), err
		}
		return commons.ErrorResponse[models.ApprovalRequestResponse]("failed to fetch approval request", "Unable to fetch approval request right now"), err
	}
	return commons.SuccessResponse("approval request fetched", toApprovalResponse(request)), nil
}

func (s *ApprovalService) ListPending(ctx context.Context, filter repo_interfaces.PendingApprovalFilter) (commons.Response[[]models.ApprovalRequestResponse], error) {
	requests, err := s.approvalRepo.ListPending(ctx, filter)
	if err != nil {
		return commons.ErrorResponse[[]models.ApprovalRequestResponse]("failed to list pending requests", "Unable to list pending requests right now"), err
	}

	responses := make([]models.ApprovalRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toApprovalResponse(request))
	}
	return commons.SuccessResponse("pending requests fetched", responses), nil
}

func (s *ApprovalService) CountPending(ctx context.Context) (commons.Response[int64], error) {
	count, err := s.approvalRepo.CountPending(ctx)
	if err != nil {
		return commons.ErrorResponse[int64]("failed to count pending requests", "Unable to count pending requests right now"), err
	}
	return commons.SuccessResponse("pending requests counted", count), nil
}

func decisionErrorResponse(err error) commons.Response[models.ApprovalRequestResponse] {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[models.ApprovalRequestResponse]("Approval request not found")
	case errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrSelfApproval),
		errors.Is(err, domain.ErrMissingReason):
		return commons.ErrorResponse[models.ApprovalRequestResponse]("validation failed", err.Error())
	}
	return commons.ErrorResponse[models.ApprovalRequestResponse]("failed to resolve approval request", "Unable to resolve approval request right now")
}

func toApprovalResponse(request domain.ApprovalRequest) models.ApprovalRequestResponse {
	response := models.ApprovalRequestResponse{
		ID:              request.ID,
		RequestType:     string(request.RequestType),
		EntityType:      string(request.EntityType),
		EntityID:        request.EntityID,
		ApprovalStatus:  string(request.ApprovalStatus),
		RequestedBy:     request.RequestedBy,
		RequestNotes:    request.RequestNotes,
		RequestedDate:   request.RequestedDate.Format(time.RFC3339),
		ReviewedBy:      request.ReviewedBy,
		ReviewNotes:     request.ReviewNotes,
		RejectionReason: request.RejectionReason,
		BranchID:        request.BranchID,
	}
	if request.ReviewedDate != nil {
		reviewed := request.ReviewedDate.Format(time.RFC3339)
		response.ReviewedDate = &reviewed
	}
	return response
}

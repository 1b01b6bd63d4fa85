package repo_interfaces

import (
	"context"
	"database/sql"

	"github.com/api-sage/minibank-core/internal/domain"
)

type PendingApprovalFilter struct {
	BranchID    string
	RequestType domain.RequestType
}

type ApprovalRequestRepository interface {
	Create(ctx context.Context, tx *sql.Tx, request domain.ApprovalRequest) (domain.ApprovalRequest, error)
	GetByID(ctx context.Context, id string) (domain.ApprovalRequest, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (domain.ApprovalRequest, error)
	// UpdateDecision persists the reviewer fields of a resolved request.
	UpdateDecision(ctx context.Context, tx *sql.Tx, request domain.ApprovalRequest) error
	ListPending(ctx context.Context, filter PendingApprovalFilter) ([]domain.ApprovalRequest, error)
	CountPending(ctx context.Context) (int64, error)
	HasPending(ctx context.Context, tx *sql.Tx, entityType domain.EntityType, entityID string) (bool, error)
}

package service_interfaces

import (
	"context"
	"database/sql"

	"github.com/api-sage/minibank-core/internal/domain"
)

type ApprovalWorkflow interface {
	// CreateRequest opens a PENDING request for the entity inside the
	// caller's transaction. At most one pending request may exist per
	// entity at a time.
	CreateRequest(ctx context.Context, tx *sql.Tx, request domain.ApprovalRequest) (domain.ApprovalRequest, error)
}

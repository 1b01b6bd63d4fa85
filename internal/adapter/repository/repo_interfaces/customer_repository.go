package repo_interfaces

import (
	"context"
	"database/sql"

	"github.com/api-sage/minibank-core/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, tx *sql.Tx, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	UpdateApproval(ctx context.Context, tx *sql.Tx, id string, status domain.CustomerStatus, approval domain.EntityApprovalStatus, updatedBy string) error
}

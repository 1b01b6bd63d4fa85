package repo_interfaces

import (
	"context"

	"github.com/api-sage/minibank-core/internal/domain"
)

type BranchRepository interface {
	GetByID(ctx context.Context, id string) (domain.Branch, error)
}

package repo_interfaces

import (
	"context"

	"github.com/api-sage/minibank-core/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)
}

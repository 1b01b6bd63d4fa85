package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const query = `
SELECT id, product_code, product_name, product_type, minimum_opening_balance,
       allowed_customer_types, is_active, created_at, updated_at
FROM products
WHERE id = $1`

	var (
		product              domain.Product
		allowedCustomerTypes sql.NullString
	)

	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.ProductCode,
		&product.ProductName,
		&product.ProductType,
		&product.MinimumOpeningBalance,
		&allowedCustomerTypes,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("product repository record not found", logger.Fields{
				"productId": id,
			})
			return domain.Product{}, domain.ErrRecordNotFound
		}
		logger.Error("product repository get failed", err, logger.Fields{
			"productId": id,
		})
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}

	product.AllowedCustomerTypes = allowedCustomerTypes.String
	return product, nil
}

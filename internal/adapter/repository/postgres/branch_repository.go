package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/minibank-core/internal/domain"
)

type BranchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) GetByID(ctx context.Context, id string) (domain.Branch, error) {
	const query = `
SELECT id, branch_code, branch_name, city, created_at, updated_at
FROM branches
WHERE id = $1 AND is_active = TRUE`

	var branch domain.Branch
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&branch.ID,
		&branch.BranchCode,
		&branch.BranchName,
		&branch.City,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Branch{}, domain.ErrRecordNotFound
		}
		return domain.Branch{}, fmt.Errorf("get branch: %w", err)
	}

	return branch, nil
}

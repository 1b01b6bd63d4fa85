package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

type ApprovalRequestRepository struct {
	db *sql.DB
}

func NewApprovalRequestRepository(db *sql.DB) *ApprovalRequestRepository {
	return &ApprovalRequestRepository{db: db}
}

const approvalColumns = `id, request_type, entity_type, entity_id, approval_status,
       requested_by, request_notes, requested_date,
       reviewed_by, review_notes, reviewed_date, rejection_reason,
       branch_id, created_at, updated_at`

func (r *ApprovalRequestRepository) Create(ctx context.Context, tx *sql.Tx, request domain.ApprovalRequest) (domain.ApprovalRequest, error) {
	logger.Info("approval repository create", logger.Fields{
		"requestType": request.RequestType,
		"entityType":  request.EntityType,
		"entityId":    request.EntityID,
	})

	const query = `
INSERT INTO approval_requests (
	request_type,
	entity_type,
	entity_id,
	approval_status,
	requested_by,
	request_notes,
	requested_date,
	branch_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`

	if err := tx.QueryRowContext(
		ctx,
		query,
		request.RequestType,
		request.EntityType,
		request.EntityID,
		request.ApprovalStatus,
		request.RequestedBy,
		request.RequestNotes,
		request.RequestedDate,
		request.BranchID,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt); err != nil {
		logger.Error("approval repository create failed", err, logger.Fields{
			"entityId": request.EntityID,
		})
		// A concurrent create slipping past HasPending lands on the partial
		// unique index over pending requests.
		if IsUniqueViolation(err) {
			return domain.ApprovalRequest{}, domain.ErrDuplicatePending
		}
		return domain.ApprovalRequest{}, fmt.Errorf("create approval request: %w", mapConcurrencyError(err))
	}

	return request, nil
}

func (r *ApprovalRequestRepository) GetByID(ctx context.Context, id string) (domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1`
	return r.scanRequest(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *ApprovalRequestRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1 FOR UPDATE`
	return r.scanRequest(tx.QueryRowContext(ctx, query, id), id)
}

func (r *ApprovalRequestRepository) UpdateDecision(ctx context.Context, tx *sql.Tx, request domain.ApprovalRequest) error {
	// Guarded on approval_status so a resolved request can never be
	// resolved twice, even by racing reviewers.
	const query = `
UPDATE approval_requests
SET approval_status = $2,
    reviewed_by = $3,
    review_notes = $4,
    reviewed_date = $5,
    rejection_reason = $6,
    updated_at = NOW()
WHERE id = $1
  AND approval_status = 'PENDING'`

	result, err := tx.ExecContext(
		ctx,
		query,
		request.ID,
		request.ApprovalStatus,
		request.ReviewedBy,
		request.ReviewNotes,
		request.ReviewedDate,
		request.RejectionReason,
	)
	if err != nil {
		logger.Error("approval repository update decision failed", err, logger.Fields{
			"requestId": request.ID,
		})
		return fmt.Errorf("update approval decision: %w", mapConcurrencyError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update approval decision rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotPending
	}
	return nil
}

func (r *ApprovalRequestRepository) ListPending(ctx context.Context, filter repo_interfaces.PendingApprovalFilter) ([]domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + `
FROM approval_requests
WHERE approval_status = 'PENDING'
  AND ($1 = '' OR branch_id::text = $1)
  AND ($2 = '' OR request_type = $2)
ORDER BY requested_date DESC`

	rows, err := r.db.QueryContext(ctx, query, filter.BranchID, string(filter.RequestType))
	if err != nil {
		logger.Error("approval repository list pending failed", err, nil)
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.ApprovalRequest, 0)
	for rows.Next() {
		request, err := scanRequestRow(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending approvals: %w", err)
	}

	return requests, nil
}

func (r *ApprovalRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM approval_requests WHERE approval_status = 'PENDING'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending approvals: %w", err)
	}
	return count, nil
}

func (r *ApprovalRequestRepository) HasPending(ctx context.Context, tx *sql.Tx, entityType domain.EntityType, entityID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM approval_requests
	WHERE entity_type = $1
	  AND entity_id = $2
	  AND approval_status = 'PENDING'
)`

	var exists bool
	if err := tx.QueryRowContext(ctx, query, entityType, entityID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending approval: %w", mapConcurrencyError(err))
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ApprovalRequestRepository) scanRequest(row *sql.Row, id string) (domain.ApprovalRequest, error) {
	request, err := scanRequestRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("approval repository record not found", logger.Fields{
				"requestId": id,
			})
			return domain.ApprovalRequest{}, domain.ErrRecordNotFound
		}
		return domain.ApprovalRequest{}, err
	}
	return request, nil
}

func scanRequestRow(row rowScanner) (domain.ApprovalRequest, error) {
	var (
		request         domain.ApprovalRequest
		requestNotes    sql.NullString
		reviewedBy      sql.NullString
		reviewNotes     sql.NullString
		reviewedDate    sql.NullTime
		rejectionReason sql.NullString
	)

	if err := row.Scan(
		&request.ID,
		&request.RequestType,
		&request.EntityType,
		&request.EntityID,
		&request.ApprovalStatus,
		&request.RequestedBy,
		&requestNotes,
		&request.RequestedDate,
		&reviewedBy,
		&reviewNotes,
		&reviewedDate,
		&rejectionReason,
		&request.BranchID,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ApprovalRequest{}, err
		}
		return domain.ApprovalRequest{}, fmt.Errorf("scan approval request: %w", err)
	}

	request.RequestNotes = requestNotes.String
	if reviewedBy.Valid {
		value := reviewedBy.String
		request.ReviewedBy = &value
	}
	if reviewNotes.Valid {
		value := reviewNotes.String
		request.ReviewNotes = &value
	}
	if reviewedDate.Valid {
		value := reviewedDate.Time
		request.ReviewedDate = &value
	}
	if rejectionReason.Valid {
		value := rejectionReason.String
		request.RejectionReason = &value
	}

	return request, nil
}

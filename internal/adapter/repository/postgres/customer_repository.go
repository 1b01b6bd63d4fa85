package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/api-sage/minibank-core/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, tx *sql.Tx, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"customerNumber": customer.CustomerNumber,
		"customerType":   customer.CustomerType,
	})

	const query = `
INSERT INTO customers (
	customer_number,
	customer_type,
	email,
	phone_number,
	address,
	city,
	postal_code,
	status,
	approval_status,
	branch_id,
	created_by,
	updated_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING id, created_at, updated_at`

	if err := tx.QueryRowContext(
		ctx,
		query,
		customer.CustomerNumber,
		customer.CustomerType,
		customer.Email,
		customer.PhoneNumber,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.Status,
		customer.ApprovalStatus,
		customer.BranchID,
		customer.CreatedBy,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
		logger.Error("customer repository create failed", err, logger.Fields{
			"customerNumber": customer.CustomerNumber,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", mapConcurrencyError(err))
	}

	// Joined-table layout: the variant payload lives in its own table keyed
	// by the customer id.
	switch customer.CustomerType {
	case domain.CustomerTypePersonal:
		if customer.Personal == nil {
			return domain.Customer{}, fmt.Errorf("create customer: personal details are required")
		}
		const personalQuery = `
INSERT INTO personal_customers (customer_id, first_name, last_name, date_of_birth, identity_type, identity_number)
VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.ExecContext(
			ctx,
			personalQuery,
			customer.ID,
			customer.Personal.FirstName,
			customer.Personal.LastName,
			customer.Personal.DateOfBirth,
			customer.Personal.IdentityType,
			customer.Personal.IdentityNumber,
		); err != nil {
			return domain.Customer{}, fmt.Errorf("create personal customer details: %w", mapConcurrencyError(err))
		}
	case domain.CustomerTypeCorporate:
		if customer.Corporate == nil {
			return domain.Customer{}, fmt.Errorf("create customer: corporate details are required")
		}
		const corporateQuery = `
INSERT INTO corporate_customers (customer_id, company_name, registration_number, tax_id)
VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(
			ctx,
			corporateQuery,
			customer.ID,
			customer.Corporate.CompanyName,
			customer.Corporate.RegistrationNumber,
			customer.Corporate.TaxID,
		); err != nil {
			return domain.Customer{}, fmt.Errorf("create corporate customer details: %w", mapConcurrencyError(err))
		}
	default:
		return domain.Customer{}, fmt.Errorf("create customer: unknown customer type %q", customer.CustomerType)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	const query = `
SELECT c.id, c.customer_number, c.customer_type, c.email, c.phone_number,
       c.address, c.city, c.postal_code, c.status, c.approval_status,
       c.branch_id, c.created_by, c.updated_by, c.created_at, c.updated_at,
       p.first_name, p.last_name, p.date_of_birth, p.identity_type, p.identity_number,
       o.company_name, o.registration_number, o.tax_id
FROM customers c
LEFT JOIN personal_customers p ON p.customer_id = c.id
LEFT JOIN corporate_customers o ON o.customer_id = c.id
WHERE c.id = $1`

	var (
		customer           domain.Customer
		createdBy          sql.NullString
		updatedBy          sql.NullString
		firstName          sql.NullString
		lastName           sql.NullString
		dateOfBirth        sql.NullTime
		identityType       sql.NullString
		identityNumber     sql.NullString
		companyName        sql.NullString
		registrationNumber sql.NullString
		taxID              sql.NullString
	)

	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.CustomerNumber,
		&customer.CustomerType,
		&customer.Email,
		&customer.PhoneNumber,
		&customer.Address,
		&customer.City,
		&customer.PostalCode,
		&customer.Status,
		&customer.ApprovalStatus,
		&customer.BranchID,
		&createdBy,
		&updatedBy,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&firstName,
		&lastName,
		&dateOfBirth,
		&identityType,
		&identityNumber,
		&companyName,
		&registrationNumber,
		&taxID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": id,
			})
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		logger.Error("customer repository get failed", err, logger.Fields{
			"customerId": id,
		})
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	customer.CreatedBy = createdBy.String
	customer.UpdatedBy = updatedBy.String

	switch customer.CustomerType {
	case domain.CustomerTypePersonal:
		customer.Personal = &domain.PersonalDetails{
			FirstName:      firstName.String,
			LastName:       lastName.String,
			DateOfBirth:    dateOfBirth.Time,
			IdentityType:   domain.IdentityType(identityType.String),
			IdentityNumber: identityNumber.String,
		}
	case domain.CustomerTypeCorporate:
		customer.Corporate = &domain.CorporateDetails{
			CompanyName:        companyName.String,
			RegistrationNumber: registrationNumber.String,
			TaxID:              taxID.String,
		}
	}

	return customer, nil
}

func (r *CustomerRepository) UpdateApproval(ctx context.Context, tx *sql.Tx, id string, status domain.CustomerStatus, approval domain.EntityApprovalStatus, updatedBy string) error {
	const query = `
UPDATE customers
SET status = $2,
    approval_status = $3,
    updated_by = $4,
    updated_at = NOW()
WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, id, status, approval, updatedBy)
	if err != nil {
		logger.Error("customer repository update approval failed", err, logger.Fields{
			"customerId": id,
			"status":     status,
		})
		return fmt.Errorf("update customer approval: %w", mapConcurrencyError(err))
	}

	return requireOneRow(result, "update customer approval")
}

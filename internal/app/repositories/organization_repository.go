package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/dberrors"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, org.Name, org.OwnerID).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM organizations
		WHERE id = $1
	`

	var org models.Organization
	err := r.db.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.OwnerID, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}

	return &org, nil
}

// GetByOwnerID retrieves the organization a user owns, if any
func (r *OrganizationRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*models.Organization, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM organizations
		WHERE owner_id = $1
	`

	var org models.Organization
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&org.ID, &org.Name, &org.OwnerID, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error retrieving organization by owner: %w", err)
	}

	return &org, nil
}

// GetAll retrieves all organizations, used by the public registration form
func (r *OrganizationRepository) GetAll(ctx context.Context) ([]*models.Organization, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM organizations
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var organizations []*models.Organization
	for rows.Next() {
		var org models.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.OwnerID, &org.CreatedAt); err != nil {
			return nil, err
		}
		organizations = append(organizations, &org)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return organizations, nil
}

// Exists checks whether an organization exists
func (r *OrganizationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking organization existence: %w", err)
	}
	return exists, nil
}

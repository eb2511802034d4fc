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

// AssociateRepository handles database operations for organization memberships
type AssociateRepository struct {
	db *pgxpool.Pool
}

// NewAssociateRepository creates a new AssociateRepository
func NewAssociateRepository(db *pgxpool.Pool) *AssociateRepository {
	return &AssociateRepository{db: db}
}

// CreateTx inserts a membership row within an ongoing transaction.
// Registration creates the user and this row atomically.
func (r *AssociateRepository) CreateTx(ctx context.Context, tx pgx.Tx, associate *models.Associate) error {
	query := `
		INSERT INTO associates (user_id, organization_id, approved)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		associate.UserID, associate.OrganizationID, associate.Approved,
	).Scan(&associate.ID, &associate.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAssociateAlreadyExists
		}
		return fmt.Errorf("error creating associate: %w", err)
	}

	return nil
}

// GetByUserID retrieves a user's membership. A user has at most one.
func (r *AssociateRepository) GetByUserID(ctx context.Context, userID int64) (*models.Associate, error) {
	query := `
		SELECT id, user_id, organization_id, approved, created_at
		FROM associates
		WHERE user_id = $1
	`

	var associate models.Associate
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&associate.ID,
		&associate.UserID,
		&associate.OrganizationID,
		&associate.Approved,
		&associate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssociateNotFound
		}
		return nil, fmt.Errorf("error retrieving associate: %w", err)
	}

	return &associate, nil
}

// GetByID retrieves a membership scoped to one organization
func (r *AssociateRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Associate, error) {
	query := `
		SELECT id, user_id, organization_id, approved, created_at
		FROM associates
		WHERE id = $1 AND organization_id = $2
	`

	var associate models.Associate
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&associate.ID,
		&associate.UserID,
		&associate.OrganizationID,
		&associate.Approved,
		&associate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssociateNotFound
		}
		return nil, fmt.Errorf("error retrieving associate: %w", err)
	}

	return &associate, nil
}

// ListByOrganization lists memberships of an organization together with the
// member's identity, optionally restricted to pending approvals.
func (r *AssociateRepository) ListByOrganization(ctx context.Context, organizationID int64, pendingOnly bool) ([]*models.Associate, error) {
	query := `
		SELECT a.id, a.user_id, a.organization_id, a.approved, a.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.bio, u.profile_photo_url, u.created_at, u.updated_at, u.last_login_at
		FROM associates a
		JOIN users u ON u.id = a.user_id
		WHERE a.organization_id = $1
	`
	if pendingOnly {
		query += ` AND a.approved = FALSE`
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var associates []*models.Associate
	for rows.Next() {
		var associate models.Associate
		var user models.User
		if err := rows.Scan(
			&associate.ID,
			&associate.UserID,
			&associate.OrganizationID,
			&associate.Approved,
			&associate.CreatedAt,
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Bio,
			&user.ProfilePhotoURL,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.LastLoginAt,
		); err != nil {
			return nil, err
		}
		associate.User = &user
		associates = append(associates, &associate)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return associates, nil
}

// Approve flips a pending membership to approved. Approving an already
// approved membership is a no-op.
func (r *AssociateRepository) Approve(ctx context.Context, organizationID, id int64) error {
	query := `
		UPDATE associates
		SET approved = TRUE
		WHERE id = $1 AND organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error approving associate: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssociateNotFound
	}

	return nil
}

// CountByOrganization returns total and pending membership counts
func (r *AssociateRepository) CountByOrganization(ctx context.Context, organizationID int64) (total int, pending int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE approved = FALSE)
		FROM associates
		WHERE organization_id = $1
	`

	err = r.db.QueryRow(ctx, query, organizationID).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting associates: %w", err)
	}

	return total, pending, nil
}

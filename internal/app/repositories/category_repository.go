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

// CategoryRepository handles database operations for course categories.
// Every lookup is scoped to one organization; a row belonging to another
// organization is reported the same way as a missing row.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category. The slug is set once here and never updated.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (organization_id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		category.OrganizationID, category.Name, category.Slug,
	).Scan(&category.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetByID retrieves a category scoped to one organization
func (r *CategoryRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Category, error) {
	query := `
		SELECT id, organization_id, name, slug
		FROM categories
		WHERE id = $1 AND organization_id = $2
	`

	var category models.Category
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&category.ID,
		&category.OrganizationID,
		&category.Name,
		&category.Slug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &category, nil
}

// GetBySlug retrieves a category by slug within one organization
func (r *CategoryRepository) GetBySlug(ctx context.Context, organizationID int64, slug string) (*models.Category, error) {
	query := `
		SELECT id, organization_id, name, slug
		FROM categories
		WHERE slug = $1 AND organization_id = $2
	`

	var category models.Category
	err := r.db.QueryRow(ctx, query, slug, organizationID).Scan(
		&category.ID,
		&category.OrganizationID,
		&category.Name,
		&category.Slug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category by slug: %w", err)
	}

	return &category, nil
}

// ListByOrganization lists all categories of an organization
func (r *CategoryRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]*models.Category, error) {
	query := `
		SELECT id, organization_id, name, slug
		FROM categories
		WHERE organization_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID,
			&category.OrganizationID,
			&category.Name,
			&category.Slug,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetByIDs retrieves the given categories when they all belong to the
// organization. Callers compare result length to detect foreign or missing
// categories.
func (r *CategoryRepository) GetByIDs(ctx context.Context, organizationID int64, ids []int64) ([]*models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, organization_id, name, slug
		FROM categories
		WHERE organization_id = $1 AND id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, organizationID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID,
			&category.OrganizationID,
			&category.Name,
			&category.Slug,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// UpdateName renames a category. The slug keeps its original value so
// bookmarked links stay valid.
func (r *CategoryRepository) UpdateName(ctx context.Context, organizationID, id int64, name string) error {
	query := `
		UPDATE categories
		SET name = $1
		WHERE id = $2 AND organization_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, name, id, organizationID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error updating category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category. Course links are removed by the FK cascade on
// the join table; courses themselves are untouched.
func (r *CategoryRepository) Delete(ctx context.Context, organizationID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// CountByOrganization returns the number of categories in an organization
func (r *CategoryRepository) CountByOrganization(ctx context.Context, organizationID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE organization_id = $1`, organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting categories: %w", err)
	}
	return count, nil
}

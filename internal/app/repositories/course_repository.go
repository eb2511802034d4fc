package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/helpers"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// CourseFilter narrows the course list query
type CourseFilter struct {
	CategoryID   int64
	CategorySlug string
	SearchTerm   string
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts a course within an ongoing transaction so category links
// can be written atomically with it.
func (r *CourseRepository) CreateTx(ctx context.Context, tx pgx.Tx, course *models.Course) error {
	query := `
		INSERT INTO courses (organization_id, title, description, instructor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		course.OrganizationID,
		course.Title,
		course.Description,
		helpers.NullableID(course.InstructorID),
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// UpdateTx updates course fields within an ongoing transaction
func (r *CourseRepository) UpdateTx(ctx context.Context, tx pgx.Tx, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, instructor_id = $3, updated_at = NOW()
		WHERE id = $4 AND organization_id = $5
	`

	cmdTag, err := tx.Exec(ctx, query,
		course.Title,
		course.Description,
		helpers.NullableID(course.InstructorID),
		course.ID,
		course.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// SetCategoriesTx replaces the category links of a course
func (r *CourseRepository) SetCategoriesTx(ctx context.Context, tx pgx.Tx, courseID int64, categoryIDs []int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM course_categories WHERE course_id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("error clearing course categories: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO course_categories (course_id, category_id) VALUES ($1, $2)`,
			courseID, categoryID)
		if err != nil {
			return fmt.Errorf("error linking course category: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a course scoped to one organization, with instructor name
// and lesson count, plus its category list.
func (r *CourseRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.organization_id, c.title, c.description, c.cover_image_url,
		       COALESCE(c.instructor_id, 0),
		       c.created_at, c.updated_at,
		       COALESCE(u.first_name || ' ' || u.last_name, ''),
		       (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id)
		FROM courses c
		LEFT JOIN users u ON u.id = c.instructor_id
		WHERE c.id = $1 AND c.organization_id = $2
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&course.ID,
		&course.OrganizationID,
		&course.Title,
		&course.Description,
		&course.CoverImageURL,
		&course.InstructorID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.InstructorName,
		&course.LessonCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	categories, err := r.getCourseCategories(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.Categories = categories

	return &course, nil
}

func (r *CourseRepository) getCourseCategories(ctx context.Context, courseID int64) ([]*models.Category, error) {
	query := `
		SELECT cat.id, cat.organization_id, cat.name, cat.slug
		FROM categories cat
		JOIN course_categories cc ON cc.category_id = cat.id
		WHERE cc.course_id = $1
		ORDER BY cat.name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course categories: %w", err)
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

	return categories, rows.Err()
}

// List returns a page of courses of an organization, newest first, optionally
// filtered by category or a title search term. The second return value is the
// total row count for the filter.
func (r *CourseRepository) List(ctx context.Context, organizationID int64, filter CourseFilter, offset, limit int) ([]*models.Course, int64, error) {
	base := r.sb.Select().
		From("courses c").
		LeftJoin("users u ON u.id = c.instructor_id").
		Where(squirrel.Eq{"c.organization_id": organizationID})

	if filter.CategoryID > 0 {
		base = base.Join("course_categories cc ON cc.course_id = c.id").
			Where(squirrel.Eq{"cc.category_id": filter.CategoryID})
	} else if filter.CategorySlug != "" {
		base = base.Join("course_categories cc ON cc.course_id = c.id").
			Join("categories cat ON cat.id = cc.category_id").
			Where(squirrel.Eq{"cat.slug": filter.CategorySlug, "cat.organization_id": organizationID})
	}

	if filter.SearchTerm != "" {
		base = base.Where(squirrel.ILike{"c.title": "%" + filter.SearchTerm + "%"})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course count SQL")
		return nil, 0, fmt.Errorf("failed to build course count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	listSQL, listArgs, err := base.
		Columns(
			"c.id", "c.organization_id", "c.title", "c.description", "c.cover_image_url",
			"COALESCE(c.instructor_id, 0)",
			"c.created_at", "c.updated_at",
			"COALESCE(u.first_name || ' ' || u.last_name, '')",
			"(SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id)",
		).
		OrderBy("c.created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course list SQL")
		return nil, 0, fmt.Errorf("failed to build course list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.OrganizationID,
			&course.Title,
			&course.Description,
			&course.CoverImageURL,
			&course.InstructorID,
			&course.CreatedAt,
			&course.UpdatedAt,
			&course.InstructorName,
			&course.LessonCount,
		); err != nil {
			return nil, 0, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// SetCoverImage sets or clears the cover image URL
func (r *CourseRepository) SetCoverImage(ctx context.Context, organizationID, id int64, coverURL *string) error {
	query := `
		UPDATE courses
		SET cover_image_url = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, helpers.GetNullString(coverURL), id, organizationID)
	if err != nil {
		return fmt.Errorf("error updating course cover: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course and, by cascade, its lessons, quiz and Q&A
func (r *CourseRepository) Delete(ctx context.Context, organizationID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM courses WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CountByOrganization returns the number of courses in an organization
func (r *CourseRepository) CountByOrganization(ctx context.Context, organizationID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses WHERE organization_id = $1`, organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

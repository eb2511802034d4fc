package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/helpers"
)

// LessonRepository handles database operations for lessons. Tenant scoping
// goes through the owning course: a lesson of another organization's course
// is reported as not found.
type LessonRepository struct {
	db *pgxpool.Pool
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{db: db}
}

// Create creates a new lesson
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (course_id, title, description, video_id, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		lesson.CourseID, lesson.Title, lesson.Description, lesson.VideoID, lesson.Position,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson scoped to one organization
func (r *LessonRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Lesson, error) {
	query := `
		SELECT l.id, l.course_id, l.title, l.description, l.video_id,
		       l.support_material_url, l.position, l.created_at
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		WHERE l.id = $1 AND c.organization_id = $2
	`

	var lesson models.Lesson
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.VideoID,
		&lesson.SupportMaterialURL,
		&lesson.Position,
		&lesson.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}

	return &lesson, nil
}

// ListByCourse lists the lessons of a course in position order
func (r *LessonRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, description, video_id,
		       support_material_url, position, created_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY position, created_at
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		if err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Description,
			&lesson.VideoID,
			&lesson.SupportMaterialURL,
			&lesson.Position,
			&lesson.CreatedAt,
		); err != nil {
			return nil, err
		}
		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lessons, nil
}

// Update updates a lesson's editable fields
func (r *LessonRepository) Update(ctx context.Context, organizationID int64, lesson *models.Lesson) error {
	query := `
		UPDATE lessons l
		SET title = $1, description = $2, video_id = $3, position = $4
		FROM courses c
		WHERE l.course_id = c.id AND l.id = $5 AND c.organization_id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		lesson.Title, lesson.Description, lesson.VideoID, lesson.Position,
		lesson.ID, organizationID,
	)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// SetSupportMaterial sets or clears the support material URL
func (r *LessonRepository) SetSupportMaterial(ctx context.Context, organizationID, id int64, materialURL *string) error {
	query := `
		UPDATE lessons l
		SET support_material_url = $1
		FROM courses c
		WHERE l.course_id = c.id AND l.id = $2 AND c.organization_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, helpers.GetNullString(materialURL), id, organizationID)
	if err != nil {
		return fmt.Errorf("error updating lesson material: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// Delete deletes a lesson
func (r *LessonRepository) Delete(ctx context.Context, organizationID, id int64) error {
	query := `
		DELETE FROM lessons l
		USING courses c
		WHERE l.course_id = c.id AND l.id = $1 AND c.organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// MarkCompleted records a lesson completion. Completing the same lesson
// twice is a silent no-op.
func (r *LessonRepository) MarkCompleted(ctx context.Context, associateID, lessonID int64) error {
	query := `
		INSERT INTO lesson_completions (associate_id, lesson_id)
		VALUES ($1, $2)
		ON CONFLICT (associate_id, lesson_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, associateID, lessonID)
	if err != nil {
		return fmt.Errorf("error marking lesson completed: %w", err)
	}

	return nil
}

// ListCompletedLessonIDs returns the lessons of a course the associate has
// completed
func (r *LessonRepository) ListCompletedLessonIDs(ctx context.Context, associateID, courseID int64) (map[int64]bool, error) {
	query := `
		SELECT lc.lesson_id
		FROM lesson_completions lc
		JOIN lessons l ON l.id = lc.lesson_id
		WHERE lc.associate_id = $1 AND l.course_id = $2
	`

	rows, err := r.db.Query(ctx, query, associateID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make(map[int64]bool)
	for rows.Next() {
		var lessonID int64
		if err := rows.Scan(&lessonID); err != nil {
			return nil, err
		}
		completed[lessonID] = true
	}

	return completed, rows.Err()
}

// CourseProgress returns completed and total lesson counts for one associate
func (r *LessonRepository) CourseProgress(ctx context.Context, associateID, courseID int64) (completed int, total int, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE lc.lesson_id IS NOT NULL)
		FROM lessons l
		LEFT JOIN lesson_completions lc
		       ON lc.lesson_id = l.id AND lc.associate_id = $1
		WHERE l.course_id = $2
	`

	err = r.db.QueryRow(ctx, query, associateID, courseID).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing course progress: %w", err)
	}

	return completed, total, nil
}

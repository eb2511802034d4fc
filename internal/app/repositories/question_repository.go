package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
)

// QuestionRepository handles database operations for lesson questions
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateTx inserts a question within an ongoing transaction so the
// notification fan-out commits together with it.
func (r *QuestionRepository) CreateTx(ctx context.Context, tx pgx.Tx, question *models.Question) error {
	query := `
		INSERT INTO questions (lesson_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		question.LessonID, question.AuthorID, question.Body,
	).Scan(&question.ID, &question.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	return nil
}

// GetByID retrieves a question scoped to one organization
func (r *QuestionRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Question, error) {
	query := `
		SELECT q.id, q.lesson_id, q.author_id, q.body, q.created_at,
		       u.first_name || ' ' || u.last_name
		FROM questions q
		JOIN users u ON u.id = q.author_id
		JOIN lessons l ON l.id = q.lesson_id
		JOIN courses c ON c.id = l.course_id
		WHERE q.id = $1 AND c.organization_id = $2
	`

	var question models.Question
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&question.ID,
		&question.LessonID,
		&question.AuthorID,
		&question.Body,
		&question.CreatedAt,
		&question.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	return &question, nil
}

// ListByLesson lists the questions of a lesson oldest first, with author
// names and answer counts
func (r *QuestionRepository) ListByLesson(ctx context.Context, lessonID int64) ([]*models.Question, error) {
	query := `
		SELECT q.id, q.lesson_id, q.author_id, q.body, q.created_at,
		       u.first_name || ' ' || u.last_name,
		       (SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id)
		FROM questions q
		JOIN users u ON u.id = q.author_id
		WHERE q.lesson_id = $1
		ORDER BY q.created_at
	`

	rows, err := r.db.Query(ctx, query, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(
			&question.ID,
			&question.LessonID,
			&question.AuthorID,
			&question.Body,
			&question.CreatedAt,
			&question.AuthorName,
			&question.AnswerCount,
		); err != nil {
			return nil, err
		}
		questions = append(questions, &question)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// ListAnswerAuthorIDsTx returns the distinct authors who already answered a
// question, read inside the fan-out transaction.
func (r *QuestionRepository) ListAnswerAuthorIDsTx(ctx context.Context, tx pgx.Tx, questionID int64) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT DISTINCT author_id FROM answers WHERE question_id = $1`, questionID)
	if err != nil {
		return nil, fmt.Errorf("error listing answer authors: %w", err)
	}
	defer rows.Close()

	var authorIDs []int64
	for rows.Next() {
		var authorID int64
		if err := rows.Scan(&authorID); err != nil {
			return nil, err
		}
		authorIDs = append(authorIDs, authorID)
	}

	return authorIDs, rows.Err()
}

// Delete deletes a question and, by cascade, its answers and notifications
func (r *QuestionRepository) Delete(ctx context.Context, organizationID, id int64) error {
	query := `
		DELETE FROM questions q
		USING lessons l, courses c
		WHERE q.lesson_id = l.id AND l.course_id = c.id
		  AND q.id = $1 AND c.organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// CountUnansweredByOrganization counts questions with no answers yet across
// the organization's lessons
func (r *QuestionRepository) CountUnansweredByOrganization(ctx context.Context, organizationID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM questions q
		JOIN lessons l ON l.id = q.lesson_id
		JOIN courses c ON c.id = l.course_id
		WHERE c.organization_id = $1
		  AND NOT EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id)
	`

	var count int
	err := r.db.QueryRow(ctx, query, organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unanswered questions: %w", err)
	}

	return count, nil
}

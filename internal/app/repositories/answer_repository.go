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

// AnswerRepository handles database operations for answers and their votes
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// CreateTx inserts an answer within an ongoing transaction so the
// notification fan-out commits together with it.
func (r *AnswerRepository) CreateTx(ctx context.Context, tx pgx.Tx, answer *models.Answer) error {
	query := `
		INSERT INTO answers (question_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		answer.QuestionID, answer.AuthorID, answer.Body,
	).Scan(&answer.ID, &answer.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating answer: %w", err)
	}

	return nil
}

// GetByID retrieves an answer scoped to one organization
func (r *AnswerRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Answer, error) {
	query := `
		SELECT a.id, a.question_id, a.author_id, a.body, a.created_at
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		JOIN lessons l ON l.id = q.lesson_id
		JOIN courses c ON c.id = l.course_id
		WHERE a.id = $1 AND c.organization_id = $2
	`

	var answer models.Answer
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&answer.ID,
		&answer.QuestionID,
		&answer.AuthorID,
		&answer.Body,
		&answer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error retrieving answer: %w", err)
	}

	return &answer, nil
}

// ListByQuestion lists answers ordered by live vote count descending, ties
// broken oldest first. CallerVoted reflects whether callerID voted on each.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID, callerID int64) ([]*models.Answer, error) {
	query := `
		SELECT a.id, a.question_id, a.author_id, a.body, a.created_at,
		       u.first_name || ' ' || u.last_name,
		       (SELECT COUNT(*) FROM answer_votes v WHERE v.answer_id = a.id),
		       EXISTS (SELECT 1 FROM answer_votes v WHERE v.answer_id = a.id AND v.user_id = $2)
		FROM answers a
		JOIN users u ON u.id = a.author_id
		WHERE a.question_id = $1
		ORDER BY 7 DESC, a.created_at
	`

	rows, err := r.db.Query(ctx, query, questionID, callerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		var answer models.Answer
		if err := rows.Scan(
			&answer.ID,
			&answer.QuestionID,
			&answer.AuthorID,
			&answer.Body,
			&answer.CreatedAt,
			&answer.AuthorName,
			&answer.VoteCount,
			&answer.CallerVoted,
		); err != nil {
			return nil, err
		}
		answers = append(answers, &answer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return answers, nil
}

// ToggleVoteTx flips the caller's vote on an answer inside a transaction.
// A first call records the vote, a second call withdraws it. Returns whether
// the vote is present after the call and the live vote count.
func (r *AnswerRepository) ToggleVoteTx(ctx context.Context, tx pgx.Tx, answerID, userID int64) (voted bool, voteCount int, err error) {
	cmdTag, err := tx.Exec(ctx, `
		INSERT INTO answer_votes (answer_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (answer_id, user_id) DO NOTHING
	`, answerID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("error recording vote: %w", err)
	}

	if cmdTag.RowsAffected() > 0 {
		voted = true
	} else {
		// Vote already existed, withdraw it
		_, err = tx.Exec(ctx,
			`DELETE FROM answer_votes WHERE answer_id = $1 AND user_id = $2`, answerID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("error withdrawing vote: %w", err)
		}
		voted = false
	}

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM answer_votes WHERE answer_id = $1`, answerID).Scan(&voteCount)
	if err != nil {
		return false, 0, fmt.Errorf("error counting votes: %w", err)
	}

	return voted, voteCount, nil
}

// Delete deletes an answer and, by cascade, its votes and notifications
func (r *AnswerRepository) Delete(ctx context.Context, organizationID, id int64) error {
	query := `
		DELETE FROM answers a
		USING questions q, lessons l, courses c
		WHERE a.question_id = q.id AND q.lesson_id = l.id AND l.course_id = c.id
		  AND a.id = $1 AND c.organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting answer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnswerNotFound
	}

	return nil
}

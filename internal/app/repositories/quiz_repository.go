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

// QuizRepository handles database operations for quizzes, their questions,
// answer options and submitted results
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

// Upsert creates the course quiz or renames the existing one. The UNIQUE
// constraint on course_id makes a second create converge on the same row.
func (r *QuizRepository) Upsert(ctx context.Context, quiz *models.Quiz) error {
	query := `
		INSERT INTO quizzes (course_id, title)
		VALUES ($1, $2)
		ON CONFLICT (course_id) DO UPDATE SET title = EXCLUDED.title
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, quiz.CourseID, quiz.Title).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("error upserting quiz: %w", err)
	}

	return nil
}

// GetByCourse retrieves the quiz of a course with questions and options
func (r *QuizRepository) GetByCourse(ctx context.Context, courseID int64) (*models.Quiz, error) {
	query := `
		SELECT id, course_id, title, created_at
		FROM quizzes
		WHERE course_id = $1
	`

	var quiz models.Quiz
	err := r.db.QueryRow(ctx, query, courseID).Scan(&quiz.ID, &quiz.CourseID, &quiz.Title, &quiz.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error retrieving quiz: %w", err)
	}

	questions, err := r.listQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions

	return &quiz, nil
}

// GetByID retrieves a quiz scoped to one organization
func (r *QuizRepository) GetByID(ctx context.Context, organizationID, id int64) (*models.Quiz, error) {
	query := `
		SELECT z.id, z.course_id, z.title, z.created_at
		FROM quizzes z
		JOIN courses c ON c.id = z.course_id
		WHERE z.id = $1 AND c.organization_id = $2
	`

	var quiz models.Quiz
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(&quiz.ID, &quiz.CourseID, &quiz.Title, &quiz.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error retrieving quiz: %w", err)
	}

	return &quiz, nil
}

func (r *QuizRepository) listQuestions(ctx context.Context, quizID int64) ([]*models.QuizQuestion, error) {
	query := `
		SELECT id, quiz_id, text, position
		FROM quiz_questions
		WHERE quiz_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.QuizQuestion
	byID := make(map[int64]*models.QuizQuestion)
	for rows.Next() {
		var question models.QuizQuestion
		if err := rows.Scan(&question.ID, &question.QuizID, &question.Text, &question.Position); err != nil {
			return nil, err
		}
		questions = append(questions, &question)
		byID[question.ID] = &question
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(questions) == 0 {
		return questions, nil
	}

	optionRows, err := r.db.Query(ctx, `
		SELECT o.id, o.question_id, o.text, o.correct
		FROM answer_options o
		JOIN quiz_questions qq ON qq.id = o.question_id
		WHERE qq.quiz_id = $1
		ORDER BY o.id
	`, quizID)
	if err != nil {
		return nil, err
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var option models.AnswerOption
		if err := optionRows.Scan(&option.ID, &option.QuestionID, &option.Text, &option.Correct); err != nil {
			return nil, err
		}
		if question, ok := byID[option.QuestionID]; ok {
			question.Options = append(question.Options, &option)
		}
	}

	return questions, optionRows.Err()
}

// GetQuestionByID retrieves a quiz question scoped to one organization
func (r *QuizRepository) GetQuestionByID(ctx context.Context, organizationID, id int64) (*models.QuizQuestion, error) {
	query := `
		SELECT qq.id, qq.quiz_id, qq.text, qq.position
		FROM quiz_questions qq
		JOIN quizzes z ON z.id = qq.quiz_id
		JOIN courses c ON c.id = z.course_id
		WHERE qq.id = $1 AND c.organization_id = $2
	`

	var question models.QuizQuestion
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&question.ID, &question.QuizID, &question.Text, &question.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving quiz question: %w", err)
	}

	return &question, nil
}

// CreateQuestion adds a question to a quiz
func (r *QuizRepository) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	query := `
		INSERT INTO quiz_questions (quiz_id, text, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, question.QuizID, question.Text, question.Position).Scan(&question.ID)
	if err != nil {
		return fmt.Errorf("error creating quiz question: %w", err)
	}

	return nil
}

// UpdateQuestion edits a quiz question
func (r *QuizRepository) UpdateQuestion(ctx context.Context, organizationID int64, question *models.QuizQuestion) error {
	query := `
		UPDATE quiz_questions qq
		SET text = $1, position = $2
		FROM quizzes z, courses c
		WHERE qq.quiz_id = z.id AND z.course_id = c.id
		  AND qq.id = $3 AND c.organization_id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, question.Text, question.Position, question.ID, organizationID)
	if err != nil {
		return fmt.Errorf("error updating quiz question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuizQuestionNotFound
	}

	return nil
}

// DeleteQuestion deletes a quiz question and its options
func (r *QuizRepository) DeleteQuestion(ctx context.Context, organizationID, id int64) error {
	query := `
		DELETE FROM quiz_questions qq
		USING quizzes z, courses c
		WHERE qq.quiz_id = z.id AND z.course_id = c.id
		  AND qq.id = $1 AND c.organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting quiz question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuizQuestionNotFound
	}

	return nil
}

// CountOptions returns the number of options under a question
func (r *QuizRepository) CountOptions(ctx context.Context, questionID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM answer_options WHERE question_id = $1`, questionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting options: %w", err)
	}
	return count, nil
}

// GetOptionByID retrieves an answer option scoped to one organization
func (r *QuizRepository) GetOptionByID(ctx context.Context, organizationID, id int64) (*models.AnswerOption, error) {
	query := `
		SELECT o.id, o.question_id, o.text, o.correct
		FROM answer_options o
		JOIN quiz_questions qq ON qq.id = o.question_id
		JOIN quizzes z ON z.id = qq.quiz_id
		JOIN courses c ON c.id = z.course_id
		WHERE o.id = $1 AND c.organization_id = $2
	`

	var option models.AnswerOption
	err := r.db.QueryRow(ctx, query, id, organizationID).Scan(
		&option.ID, &option.QuestionID, &option.Text, &option.Correct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOptionNotFound
		}
		return nil, fmt.Errorf("error retrieving option: %w", err)
	}

	return &option, nil
}

// ClearCorrectTx resets the correct flag on every option of a question.
// Runs before any write that sets a correct option, inside one transaction,
// so at most one option per question ever holds the flag.
func (r *QuizRepository) ClearCorrectTx(ctx context.Context, tx pgx.Tx, questionID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE answer_options SET correct = FALSE WHERE question_id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("error clearing correct options: %w", err)
	}
	return nil
}

// InsertOptionTx adds an option inside the option-write transaction
func (r *QuizRepository) InsertOptionTx(ctx context.Context, tx pgx.Tx, option *models.AnswerOption) error {
	query := `
		INSERT INTO answer_options (question_id, text, correct)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query, option.QuestionID, option.Text, option.Correct).Scan(&option.ID)
	if err != nil {
		return fmt.Errorf("error creating option: %w", err)
	}

	return nil
}

// UpdateOptionTx edits an option inside the option-write transaction
func (r *QuizRepository) UpdateOptionTx(ctx context.Context, tx pgx.Tx, option *models.AnswerOption) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE answer_options SET text = $1, correct = $2 WHERE id = $3`,
		option.Text, option.Correct, option.ID)
	if err != nil {
		return fmt.Errorf("error updating option: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOptionNotFound
	}

	return nil
}

// DeleteOption deletes an answer option
func (r *QuizRepository) DeleteOption(ctx context.Context, organizationID, id int64) error {
	query := `
		DELETE FROM answer_options o
		USING quiz_questions qq, quizzes z, courses c
		WHERE o.question_id = qq.id AND qq.quiz_id = z.id AND z.course_id = c.id
		  AND o.id = $1 AND c.organization_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("error deleting option: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOptionNotFound
	}

	return nil
}

// CountQuestions returns the number of questions in a quiz
func (r *QuizRepository) CountQuestions(ctx context.Context, quizID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_questions WHERE quiz_id = $1`, quizID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting quiz questions: %w", err)
	}
	return count, nil
}

// CountCorrectSelections counts how many of the selected options are the
// correct option of a question belonging to this quiz
func (r *QuizRepository) CountCorrectSelections(ctx context.Context, quizID int64, optionIDs []int64) (int, error) {
	if len(optionIDs) == 0 {
		return 0, nil
	}

	query := `
		SELECT COUNT(*)
		FROM answer_options o
		JOIN quiz_questions qq ON qq.id = o.question_id
		WHERE qq.quiz_id = $1 AND o.id = ANY($2) AND o.correct
	`

	var count int
	err := r.db.QueryRow(ctx, query, quizID, optionIDs).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error grading submission: %w", err)
	}

	return count, nil
}

// InsertResult stores a graded submission snapshot
func (r *QuizRepository) InsertResult(ctx context.Context, result *models.QuizResult) error {
	query := `
		INSERT INTO quiz_results (quiz_id, user_id, score, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, taken_at
	`

	err := r.db.QueryRow(ctx, query,
		result.QuizID, result.UserID, result.Score, result.Total,
	).Scan(&result.ID, &result.TakenAt)

	if err != nil {
		return fmt.Errorf("error storing quiz result: %w", err)
	}

	return nil
}

// ListResults lists the submissions of a quiz newest first. A positive userID
// narrows the list to that user's own submissions.
func (r *QuizRepository) ListResults(ctx context.Context, quizID, userID int64) ([]*models.QuizResult, error) {
	query := `
		SELECT r.id, r.quiz_id, r.user_id, r.score, r.total, r.taken_at,
		       u.first_name || ' ' || u.last_name
		FROM quiz_results r
		JOIN users u ON u.id = r.user_id
		WHERE r.quiz_id = $1 AND ($2 = 0 OR r.user_id = $2)
		ORDER BY r.taken_at DESC
	`

	rows, err := r.db.Query(ctx, query, quizID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.QuizResult
	for rows.Next() {
		var result models.QuizResult
		if err := rows.Scan(
			&result.ID,
			&result.QuizID,
			&result.UserID,
			&result.Score,
			&result.Total,
			&result.TakenAt,
			&result.UserName,
		); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/db"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
)

// QuizService handles the per-course quiz, its questions and options, and
// submission grading
type QuizService struct {
	database   *db.PostgresDB
	quizRepo   *repositories.QuizRepository
	courseRepo *repositories.CourseRepository
}

// NewQuizService creates a new QuizService
func NewQuizService(database *db.PostgresDB, quizRepo *repositories.QuizRepository, courseRepo *repositories.CourseRepository) *QuizService {
	return &QuizService{
		database:   database,
		quizRepo:   quizRepo,
		courseRepo: courseRepo,
	}
}

// Upsert creates the course quiz or renames the existing one. A course has at
// most one quiz; a second create converges on the same row.
func (s *QuizService) Upsert(ctx context.Context, organizationID, courseID int64, req *dto.UpsertQuizRequest) (*models.Quiz, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		CourseID: courseID,
		Title:    req.Title,
	}

	if err := s.quizRepo.Upsert(ctx, quiz); err != nil {
		return nil, err
	}

	return s.quizRepo.GetByCourse(ctx, courseID)
}

// GetByCourse retrieves the course quiz with questions and options
func (s *QuizService) GetByCourse(ctx context.Context, organizationID, courseID int64) (*models.Quiz, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	return s.quizRepo.GetByCourse(ctx, courseID)
}

// AddQuestion adds a question to the course quiz
func (s *QuizService) AddQuestion(ctx context.Context, organizationID, quizID int64, req *dto.CreateQuizQuestionRequest) (*models.QuizQuestion, error) {
	if _, err := s.quizRepo.GetByID(ctx, organizationID, quizID); err != nil {
		return nil, err
	}

	question := &models.QuizQuestion{
		QuizID:   quizID,
		Text:     req.Text,
		Position: req.Position,
	}

	if err := s.quizRepo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

// UpdateQuestion edits a quiz question
func (s *QuizService) UpdateQuestion(ctx context.Context, organizationID, questionID int64, req *dto.UpdateQuizQuestionRequest) (*models.QuizQuestion, error) {
	question, err := s.quizRepo.GetQuestionByID(ctx, organizationID, questionID)
	if err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Position = req.Position

	if err := s.quizRepo.UpdateQuestion(ctx, organizationID, question); err != nil {
		return nil, err
	}

	return question, nil
}

// DeleteQuestion deletes a quiz question and its options
func (s *QuizService) DeleteQuestion(ctx context.Context, organizationID, questionID int64) error {
	return s.quizRepo.DeleteQuestion(ctx, organizationID, questionID)
}

// AddOption adds an answer option to a question, enforcing the option cap.
// When the new option is marked correct, the sibling flags are cleared in the
// same transaction so at most one option per question is ever correct.
func (s *QuizService) AddOption(ctx context.Context, organizationID, questionID int64, req *dto.SaveOptionRequest) (*models.AnswerOption, error) {
	if _, err := s.quizRepo.GetQuestionByID(ctx, organizationID, questionID); err != nil {
		return nil, err
	}

	count, err := s.quizRepo.CountOptions(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxOptionsPerQuestion {
		return nil, apperrors.ErrTooManyOptions
	}

	option := &models.AnswerOption{
		QuestionID: questionID,
		Text:       req.Text,
		Correct:    req.Correct,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if option.Correct {
			if err := s.quizRepo.ClearCorrectTx(ctx, tx, questionID); err != nil {
				return err
			}
		}
		return s.quizRepo.InsertOptionTx(ctx, tx, option)
	})
	if err != nil {
		return nil, err
	}

	return option, nil
}

// UpdateOption edits an answer option, clearing sibling correct flags first
// when this one becomes the correct option
func (s *QuizService) UpdateOption(ctx context.Context, organizationID, optionID int64, req *dto.SaveOptionRequest) (*models.AnswerOption, error) {
	option, err := s.quizRepo.GetOptionByID(ctx, organizationID, optionID)
	if err != nil {
		return nil, err
	}

	option.Text = req.Text
	option.Correct = req.Correct

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if option.Correct {
			if err := s.quizRepo.ClearCorrectTx(ctx, tx, option.QuestionID); err != nil {
				return err
			}
		}
		return s.quizRepo.UpdateOptionTx(ctx, tx, option)
	})
	if err != nil {
		return nil, err
	}

	return option, nil
}

// DeleteOption deletes an answer option
func (s *QuizService) DeleteOption(ctx context.Context, organizationID, optionID int64) error {
	return s.quizRepo.DeleteOption(ctx, organizationID, optionID)
}

// Submit grades a submission: one point per selected option that is the
// correct option of one of this quiz's questions. The snapshot is stored and
// returned.
func (s *QuizService) Submit(ctx context.Context, organizationID, userID, courseID int64, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	total, err := s.quizRepo.CountQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}

	score, err := s.quizRepo.CountCorrectSelections(ctx, quiz.ID, req.SelectedOptionIDs)
	if err != nil {
		return nil, err
	}

	result := &models.QuizResult{
		QuizID: quiz.ID,
		UserID: userID,
		Score:  score,
		Total:  total,
	}

	if err := s.quizRepo.InsertResult(ctx, result); err != nil {
		return nil, err
	}

	return &dto.QuizResultResponse{
		QuizID: quiz.ID,
		Score:  score,
		Total:  total,
	}, nil
}

// ListResults lists every submission of the course quiz, newest first
func (s *QuizService) ListResults(ctx context.Context, organizationID, courseID int64) ([]*models.QuizResult, error) {
	return s.listResults(ctx, organizationID, courseID, 0)
}

// ListMyResults lists the caller's own submissions, newest first
func (s *QuizService) ListMyResults(ctx context.Context, organizationID, userID, courseID int64) ([]*models.QuizResult, error) {
	return s.listResults(ctx, organizationID, courseID, userID)
}

func (s *QuizService) listResults(ctx context.Context, organizationID, courseID, userID int64) ([]*models.QuizResult, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return s.quizRepo.ListResults(ctx, quiz.ID, userID)
}

package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rafael/coursehub/internal/app/auth"
	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/db"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// QAService handles lesson questions, answers, votes and the notification
// fan-out that accompanies new posts
type QAService struct {
	database         *db.PostgresDB
	questionRepo     *repositories.QuestionRepository
	answerRepo       *repositories.AnswerRepository
	notificationRepo *repositories.NotificationRepository
	lessonRepo       *repositories.LessonRepository
	organizationRepo *repositories.OrganizationRepository
}

// NewQAService creates a new QAService
func NewQAService(
	database *db.PostgresDB,
	questionRepo *repositories.QuestionRepository,
	answerRepo *repositories.AnswerRepository,
	notificationRepo *repositories.NotificationRepository,
	lessonRepo *repositories.LessonRepository,
	organizationRepo *repositories.OrganizationRepository,
) *QAService {
	return &QAService{
		database:         database,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		notificationRepo: notificationRepo,
		lessonRepo:       lessonRepo,
		organizationRepo: organizationRepo,
	}
}

// AnswerRecipients computes who gets notified about a new answer: the
// question author plus everyone who answered before, minus the author of the
// new answer. Duplicates collapse, so a prior answerer who also asked the
// question receives one notification.
func AnswerRecipients(questionAuthorID int64, priorAnswererIDs []int64, newAnswerAuthorID int64) []int64 {
	seen := make(map[int64]bool, len(priorAnswererIDs)+1)
	var recipients []int64

	add := func(id int64) {
		if id == newAnswerAuthorID || seen[id] {
			return
		}
		seen[id] = true
		recipients = append(recipients, id)
	}

	add(questionAuthorID)
	for _, id := range priorAnswererIDs {
		add(id)
	}

	return recipients
}

// PostQuestion creates a question on a lesson and notifies the organization
// owner, unless the owner asked it. Question and notifications commit in one
// transaction.
func (s *QAService) PostQuestion(ctx context.Context, tenant *auth.TenantContext, lessonID int64, req *dto.CreateQuestionRequest) (*models.Question, error) {
	if _, err := s.lessonRepo.GetByID(ctx, tenant.OrganizationID, lessonID); err != nil {
		return nil, err
	}

	org, err := s.organizationRepo.GetByID(ctx, tenant.OrganizationID)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		LessonID: lessonID,
		AuthorID: tenant.UserID,
		Body:     req.Body,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.questionRepo.CreateTx(ctx, tx, question); err != nil {
			return err
		}

		if org.OwnerID == tenant.UserID {
			return nil
		}
		return s.notificationRepo.InsertForQuestionTx(ctx, tx, question.ID, []int64{org.OwnerID})
	})
	if err != nil {
		return nil, err
	}

	return s.questionRepo.GetByID(ctx, tenant.OrganizationID, question.ID)
}

// ListQuestions lists the questions of a lesson oldest first, each with its
// answers ordered by votes
func (s *QAService) ListQuestions(ctx context.Context, tenant *auth.TenantContext, lessonID int64) ([]*models.Question, error) {
	if _, err := s.lessonRepo.GetByID(ctx, tenant.OrganizationID, lessonID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	for _, question := range questions {
		answers, err := s.answerRepo.ListByQuestion(ctx, question.ID, tenant.UserID)
		if err != nil {
			return nil, err
		}
		question.Answers = answers
	}

	return questions, nil
}

// PostAnswer creates an answer and fans out notifications to the question
// author and all prior answerers, excluding the new answer's author. Answer
// and notifications commit in one transaction; a failure mid-way leaves
// neither.
func (s *QAService) PostAnswer(ctx context.Context, tenant *auth.TenantContext, questionID int64, req *dto.CreateAnswerRequest) (*models.Answer, error) {
	question, err := s.questionRepo.GetByID(ctx, tenant.OrganizationID, questionID)
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		QuestionID: questionID,
		AuthorID:   tenant.UserID,
		Body:       req.Body,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Prior answerers are read before the insert so the new answer's
		// author does not count as one
		priorAnswerers, err := s.questionRepo.ListAnswerAuthorIDsTx(ctx, tx, questionID)
		if err != nil {
			return err
		}

		if err := s.answerRepo.CreateTx(ctx, tx, answer); err != nil {
			return err
		}

		recipients := AnswerRecipients(question.AuthorID, priorAnswerers, tenant.UserID)
		return s.notificationRepo.InsertForAnswerTx(ctx, tx, answer.ID, recipients)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Int64("answerID", answer.ID).Int64("questionID", questionID).Msg("Answer posted")

	// Reload through the list query to pick up author name and vote fields
	answers, err := s.answerRepo.ListByQuestion(ctx, questionID, tenant.UserID)
	if err == nil {
		for _, a := range answers {
			if a.ID == answer.ID {
				return a, nil
			}
		}
	}

	return answer, nil
}

// ToggleVote flips the caller's vote on an answer. Voting is open to anyone
// in the organization, including the answer's author.
func (s *QAService) ToggleVote(ctx context.Context, tenant *auth.TenantContext, answerID int64) (*dto.VoteToggleResponse, error) {
	if _, err := s.answerRepo.GetByID(ctx, tenant.OrganizationID, answerID); err != nil {
		return nil, err
	}

	var response dto.VoteToggleResponse
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		voted, count, err := s.answerRepo.ToggleVoteTx(ctx, tx, answerID, tenant.UserID)
		if err != nil {
			return err
		}
		response = dto.VoteToggleResponse{
			AnswerID:  answerID,
			Voted:     voted,
			VoteCount: count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// DeleteQuestion removes a question. Allowed for the question author and the
// organization owner.
func (s *QAService) DeleteQuestion(ctx context.Context, tenant *auth.TenantContext, questionID int64) error {
	question, err := s.questionRepo.GetByID(ctx, tenant.OrganizationID, questionID)
	if err != nil {
		return err
	}

	if question.AuthorID != tenant.UserID && !tenant.IsOwner {
		return apperrors.ErrPermissionDenied
	}

	return s.questionRepo.Delete(ctx, tenant.OrganizationID, questionID)
}

// DeleteAnswer removes an answer. Allowed for the answer author and the
// organization owner.
func (s *QAService) DeleteAnswer(ctx context.Context, tenant *auth.TenantContext, answerID int64) error {
	answer, err := s.answerRepo.GetByID(ctx, tenant.OrganizationID, answerID)
	if err != nil {
		return err
	}

	if answer.AuthorID != tenant.UserID && !tenant.IsOwner {
		return apperrors.ErrPermissionDenied
	}

	return s.answerRepo.Delete(ctx, tenant.OrganizationID, answerID)
}

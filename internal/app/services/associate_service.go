package services

import (
	"context"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// AssociateService handles membership management and the owner dashboard
type AssociateService struct {
	organizationRepo *repositories.OrganizationRepository
	associateRepo    *repositories.AssociateRepository
	courseRepo       *repositories.CourseRepository
	categoryRepo     *repositories.CategoryRepository
	questionRepo     *repositories.QuestionRepository
}

// NewAssociateService creates a new AssociateService
func NewAssociateService(
	organizationRepo *repositories.OrganizationRepository,
	associateRepo *repositories.AssociateRepository,
	courseRepo *repositories.CourseRepository,
	categoryRepo *repositories.CategoryRepository,
	questionRepo *repositories.QuestionRepository,
) *AssociateService {
	return &AssociateService{
		organizationRepo: organizationRepo,
		associateRepo:    associateRepo,
		courseRepo:       courseRepo,
		categoryRepo:     categoryRepo,
		questionRepo:     questionRepo,
	}
}

// ListOrganizations lists all organizations for the public registration form
func (s *AssociateService) ListOrganizations(ctx context.Context) ([]*models.Organization, error) {
	return s.organizationRepo.GetAll(ctx)
}

// ListMembers lists the organization's memberships, optionally only the
// pending approvals
func (s *AssociateService) ListMembers(ctx context.Context, organizationID int64, pendingOnly bool) ([]*dto.AssociateResponse, error) {
	associates, err := s.associateRepo.ListByOrganization(ctx, organizationID, pendingOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AssociateResponse, 0, len(associates))
	for _, associate := range associates {
		responses = append(responses, &dto.AssociateResponse{
			ID:        associate.ID,
			UserID:    associate.UserID,
			Email:     associate.User.Email,
			FirstName: associate.User.FirstName,
			LastName:  associate.User.LastName,
			Approved:  associate.Approved,
		})
	}

	return responses, nil
}

// ApproveMember approves a pending membership. Approving twice is a no-op.
func (s *AssociateService) ApproveMember(ctx context.Context, organizationID, associateID int64) error {
	if err := s.associateRepo.Approve(ctx, organizationID, associateID); err != nil {
		return err
	}

	logger.Info().Int64("associateID", associateID).Int64("organizationID", organizationID).Msg("Associate approved")
	return nil
}

// Dashboard aggregates the owner's organization overview
func (s *AssociateService) Dashboard(ctx context.Context, organizationID int64) (*dto.DashboardResponse, error) {
	org, err := s.organizationRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	courseCount, err := s.courseRepo.CountByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	categoryCount, err := s.categoryRepo.CountByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	associateCount, pendingCount, err := s.associateRepo.CountByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	openQuestions, err := s.questionRepo.CountUnansweredByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Organization:      org,
		CourseCount:       courseCount,
		CategoryCount:     categoryCount,
		AssociateCount:    associateCount,
		PendingApprovals:  pendingCount,
		OpenQuestionCount: openQuestions,
	}, nil
}

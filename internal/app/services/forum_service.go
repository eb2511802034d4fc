package services

import (
	"context"
	"mime/multipart"

	"github.com/rafael/coursehub/internal/app/auth"
	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/filestorage"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// ForumService handles the organization discussion board
type ForumService struct {
	topicRepo   *repositories.TopicRepository
	fileStorage filestorage.FileStorage
}

// NewForumService creates a new ForumService
func NewForumService(topicRepo *repositories.TopicRepository, fileStorage filestorage.FileStorage) *ForumService {
	return &ForumService{
		topicRepo:   topicRepo,
		fileStorage: fileStorage,
	}
}

// CreateTopic opens a discussion topic in the caller's organization
func (s *ForumService) CreateTopic(ctx context.Context, tenant *auth.TenantContext, req *dto.CreateTopicRequest) (*models.DiscussionTopic, error) {
	topic := &models.DiscussionTopic{
		OrganizationID: tenant.OrganizationID,
		AuthorID:       tenant.UserID,
		Title:          req.Title,
		Body:           req.Body,
	}

	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	return s.topicRepo.GetByID(ctx, tenant.OrganizationID, topic.ID)
}

// GetTopic retrieves a topic with its comments
func (s *ForumService) GetTopic(ctx context.Context, organizationID, id int64) (*models.DiscussionTopic, error) {
	return s.topicRepo.GetByID(ctx, organizationID, id)
}

// ListTopics returns a page of the organization's topics, newest first
func (s *ForumService) ListTopics(ctx context.Context, organizationID int64, offset, limit int) ([]*models.DiscussionTopic, int64, error) {
	return s.topicRepo.ListByOrganization(ctx, organizationID, offset, limit)
}

// DeleteTopic removes a topic. Allowed for the topic author and the
// organization owner.
func (s *ForumService) DeleteTopic(ctx context.Context, tenant *auth.TenantContext, id int64) error {
	topic, err := s.topicRepo.GetByID(ctx, tenant.OrganizationID, id)
	if err != nil {
		return err
	}

	if topic.AuthorID != tenant.UserID && !tenant.IsOwner {
		return apperrors.ErrPermissionDenied
	}

	if err := s.topicRepo.Delete(ctx, tenant.OrganizationID, id); err != nil {
		return err
	}

	for _, comment := range topic.Comments {
		if comment.AttachmentURL != nil {
			if err := s.fileStorage.DeleteFile(*comment.AttachmentURL); err != nil {
				logger.Warn().Err(err).Str("path", *comment.AttachmentURL).Msg("Failed to remove comment attachment")
			}
		}
	}

	return nil
}

// AddComment replies on a topic with an optional file attachment
func (s *ForumService) AddComment(ctx context.Context, tenant *auth.TenantContext, topicID int64, req *dto.CreateCommentRequest, attachment *multipart.FileHeader) (*models.TopicComment, error) {
	if _, err := s.topicRepo.GetByID(ctx, tenant.OrganizationID, topicID); err != nil {
		return nil, err
	}

	comment := &models.TopicComment{
		TopicID:  topicID,
		AuthorID: tenant.UserID,
		Body:     req.Body,
	}

	if attachment != nil {
		attachmentURL, err := s.fileStorage.SaveFile(attachment, filestorage.SubdirForumFiles)
		if err != nil {
			return nil, err
		}
		comment.AttachmentURL = &attachmentURL
	}

	if err := s.topicRepo.CreateComment(ctx, comment); err != nil {
		if comment.AttachmentURL != nil {
			if delErr := s.fileStorage.DeleteFile(*comment.AttachmentURL); delErr != nil {
				logger.Warn().Err(delErr).Str("path", *comment.AttachmentURL).Msg("Failed to remove orphaned attachment")
			}
		}
		return nil, err
	}

	return s.topicRepo.GetCommentByID(ctx, tenant.OrganizationID, comment.ID)
}

// DeleteComment removes a comment. Allowed for the comment author and the
// organization owner.
func (s *ForumService) DeleteComment(ctx context.Context, tenant *auth.TenantContext, id int64) error {
	comment, err := s.topicRepo.GetCommentByID(ctx, tenant.OrganizationID, id)
	if err != nil {
		return err
	}

	if comment.AuthorID != tenant.UserID && !tenant.IsOwner {
		return apperrors.ErrPermissionDenied
	}

	if err := s.topicRepo.DeleteComment(ctx, tenant.OrganizationID, id); err != nil {
		return err
	}

	if comment.AttachmentURL != nil {
		if err := s.fileStorage.DeleteFile(*comment.AttachmentURL); err != nil {
			logger.Warn().Err(err).Str("path", *comment.AttachmentURL).Msg("Failed to remove comment attachment")
		}
	}

	return nil
}

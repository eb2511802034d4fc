package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/db"
)

// NotificationService handles the caller's notification feed
type NotificationService struct {
	database         *db.PostgresDB
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(database *db.PostgresDB, notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		database:         database,
		notificationRepo: notificationRepo,
	}
}

// List returns the caller's notifications newest first and marks every
// previously-unread one as read in the same transaction. The returned read
// flags and unread count reflect the state before marking, so the client can
// highlight what is new exactly once.
func (s *NotificationService) List(ctx context.Context, userID int64) (*dto.NotificationListResponse, error) {
	var response dto.NotificationListResponse

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		notifications, err := s.notificationRepo.ListByRecipientTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		marked, err := s.notificationRepo.MarkAllReadTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		response.Notifications = notifications
		response.UnreadCount = int(marked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if response.Notifications == nil {
		response.Notifications = []*models.Notification{}
	}

	return &response, nil
}

// UnreadCount returns the caller's unread notification count without marking
// anything read
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

package services

import (
	"context"
	"mime/multipart"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/filestorage"
	"github.com/rafael/coursehub/internal/pkg/logger"
	"github.com/rafael/coursehub/internal/pkg/videoid"
)

// LessonService handles lessons, their video references and completion
// tracking
type LessonService struct {
	lessonRepo  *repositories.LessonRepository
	courseRepo  *repositories.CourseRepository
	fileStorage filestorage.FileStorage
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonRepo *repositories.LessonRepository,
	courseRepo *repositories.CourseRepository,
	fileStorage filestorage.FileStorage,
) *LessonService {
	return &LessonService{
		lessonRepo:  lessonRepo,
		courseRepo:  courseRepo,
		fileStorage: fileStorage,
	}
}

// decorate fills the derived embed URL
func decorateLesson(lesson *models.Lesson) {
	lesson.EmbedURL = videoid.EmbedURL(lesson.VideoID)
}

// Create creates a lesson under a course of the caller's organization.
// Only the extracted video id is persisted, never the pasted URL.
func (s *LessonService) Create(ctx context.Context, organizationID, courseID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	id, err := videoid.Extract(req.VideoURL)
	if err != nil {
		return nil, apperrors.NewValidationError("videoUrl", apperrors.ErrInvalidVideoURL.Error())
	}

	lesson := &models.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoID:     id,
		Position:    req.Position,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	decorateLesson(lesson)
	return lesson, nil
}

// Get retrieves one lesson of the caller's organization, with the caller's
// completion state when they hold an associate profile
func (s *LessonService) Get(ctx context.Context, organizationID, associateID, id int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	decorateLesson(lesson)

	if associateID > 0 {
		completed, err := s.lessonRepo.ListCompletedLessonIDs(ctx, associateID, lesson.CourseID)
		if err != nil {
			return nil, err
		}
		lesson.Completed = completed[lesson.ID]
	}

	return lesson, nil
}

// ListByCourse lists the lessons of a course in position order, with the
// caller's completion flags
func (s *LessonService) ListByCourse(ctx context.Context, organizationID, associateID, courseID int64) ([]*models.Lesson, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var completed map[int64]bool
	if associateID > 0 {
		completed, err = s.lessonRepo.ListCompletedLessonIDs(ctx, associateID, courseID)
		if err != nil {
			return nil, err
		}
	}

	for _, lesson := range lessons {
		decorateLesson(lesson)
		if completed != nil {
			lesson.Completed = completed[lesson.ID]
		}
	}

	return lessons, nil
}

// Update edits a lesson, re-extracting the video id from the submitted URL
func (s *LessonService) Update(ctx context.Context, organizationID, id int64, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	videoID, err := videoid.Extract(req.VideoURL)
	if err != nil {
		return nil, apperrors.NewValidationError("videoUrl", apperrors.ErrInvalidVideoURL.Error())
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.VideoID = videoID
	lesson.Position = req.Position

	if err := s.lessonRepo.Update(ctx, organizationID, lesson); err != nil {
		return nil, err
	}

	decorateLesson(lesson)
	return lesson, nil
}

// UpdateSupportMaterial stores a support material file for the lesson,
// replacing any previous one
func (s *LessonService) UpdateSupportMaterial(ctx context.Context, organizationID, id int64, fileHeader *multipart.FileHeader) (string, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return "", err
	}

	materialURL, err := s.fileStorage.SaveFile(fileHeader, filestorage.SubdirLessonMaterials)
	if err != nil {
		return "", err
	}

	if err := s.lessonRepo.SetSupportMaterial(ctx, organizationID, id, &materialURL); err != nil {
		if delErr := s.fileStorage.DeleteFile(materialURL); delErr != nil {
			logger.Warn().Err(delErr).Str("path", materialURL).Msg("Failed to remove orphaned support material")
		}
		return "", err
	}

	if lesson.SupportMaterialURL != nil {
		if err := s.fileStorage.DeleteFile(*lesson.SupportMaterialURL); err != nil {
			logger.Warn().Err(err).Str("path", *lesson.SupportMaterialURL).Msg("Failed to remove previous support material")
		}
	}

	return materialURL, nil
}

// Delete deletes a lesson and its stored support material
func (s *LessonService) Delete(ctx context.Context, organizationID, id int64) error {
	lesson, err := s.lessonRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, organizationID, id); err != nil {
		return err
	}

	if lesson.SupportMaterialURL != nil {
		if err := s.fileStorage.DeleteFile(*lesson.SupportMaterialURL); err != nil {
			logger.Warn().Err(err).Str("path", *lesson.SupportMaterialURL).Msg("Failed to remove support material file")
		}
	}

	return nil
}

// MarkCompleted records that the caller finished a lesson. Marking twice is
// a no-op. Only associates track progress.
func (s *LessonService) MarkCompleted(ctx context.Context, organizationID, associateID, lessonID int64) error {
	if associateID <= 0 {
		return apperrors.NewBadRequestError("organization owners do not track lesson completion")
	}

	if _, err := s.lessonRepo.GetByID(ctx, organizationID, lessonID); err != nil {
		return err
	}

	return s.lessonRepo.MarkCompleted(ctx, associateID, lessonID)
}

// CourseProgress reports the caller's completion within a course
func (s *LessonService) CourseProgress(ctx context.Context, organizationID, associateID, courseID int64) (*dto.CourseProgressResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, organizationID, courseID); err != nil {
		return nil, err
	}

	// For an owner (no associate profile) this yields zero completions over
	// the full lesson count
	completed, total, err := s.lessonRepo.CourseProgress(ctx, associateID, courseID)
	if err != nil {
		return nil, err
	}

	return &dto.CourseProgressResponse{
		CourseID:         courseID,
		CompletedLessons: completed,
		TotalLessons:     total,
	}, nil
}

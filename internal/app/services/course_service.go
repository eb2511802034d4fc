package services

import (
	"context"
	"mime/multipart"

	"github.com/jackc/pgx/v5"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/db"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/filestorage"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// CourseService handles course management within one organization
type CourseService struct {
	database     *db.PostgresDB
	courseRepo   *repositories.CourseRepository
	categoryRepo *repositories.CategoryRepository
	fileStorage  filestorage.FileStorage
}

// NewCourseService creates a new CourseService
func NewCourseService(
	database *db.PostgresDB,
	courseRepo *repositories.CourseRepository,
	categoryRepo *repositories.CategoryRepository,
	fileStorage filestorage.FileStorage,
) *CourseService {
	return &CourseService{
		database:     database,
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		fileStorage:  fileStorage,
	}
}

// checkCategories verifies every referenced category belongs to the caller's
// organization. A foreign category id is rejected before anything is written.
func (s *CourseService) checkCategories(ctx context.Context, organizationID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, organizationID, categoryIDs)
	if err != nil {
		return err
	}

	found := make(map[int64]bool, len(categories))
	for _, category := range categories {
		found[category.ID] = true
	}

	for _, id := range categoryIDs {
		if !found[id] {
			return apperrors.ErrCategoryOrganizationMismatch
		}
	}

	return nil
}

// Create creates a course and its category links atomically. The creator
// becomes the instructor.
func (s *CourseService) Create(ctx context.Context, organizationID, creatorID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.checkCategories(ctx, organizationID, req.CategoryIDs); err != nil {
		return nil, err
	}

	course := &models.Course{
		OrganizationID: organizationID,
		Title:          req.Title,
		Description:    req.Description,
		InstructorID:   creatorID,
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.CreateTx(ctx, tx, course); err != nil {
			return err
		}
		return s.courseRepo.SetCategoriesTx(ctx, tx, course.ID, req.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, organizationID, course.ID)
}

// Get retrieves one course of the caller's organization
func (s *CourseService) Get(ctx context.Context, organizationID, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, organizationID, id)
}

// List returns a page of the organization's courses
func (s *CourseService) List(ctx context.Context, organizationID int64, filter repositories.CourseFilter, offset, limit int) ([]*models.Course, int64, error) {
	if filter.CategorySlug != "" {
		// Resolve the slug first so an unknown slug is a not-found, not an
		// empty list
		if _, err := s.categoryRepo.GetBySlug(ctx, organizationID, filter.CategorySlug); err != nil {
			return nil, 0, err
		}
	}

	return s.courseRepo.List(ctx, organizationID, filter, offset, limit)
}

// Update edits a course and replaces its category links atomically
func (s *CourseService) Update(ctx context.Context, organizationID, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	existing, err := s.courseRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategories(ctx, organizationID, req.CategoryIDs); err != nil {
		return nil, err
	}

	existing.Title = req.Title
	existing.Description = req.Description

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.UpdateTx(ctx, tx, existing); err != nil {
			return err
		}
		return s.courseRepo.SetCategoriesTx(ctx, tx, existing.ID, req.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, organizationID, id)
}

// UpdateCoverImage stores a new cover image, replacing any previous one
func (s *CourseService) UpdateCoverImage(ctx context.Context, organizationID, id int64, fileHeader *multipart.FileHeader) (string, error) {
	course, err := s.courseRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return "", err
	}

	coverURL, err := s.fileStorage.SaveFile(fileHeader, filestorage.SubdirCourseCovers)
	if err != nil {
		return "", err
	}

	if err := s.courseRepo.SetCoverImage(ctx, organizationID, id, &coverURL); err != nil {
		if delErr := s.fileStorage.DeleteFile(coverURL); delErr != nil {
			logger.Warn().Err(delErr).Str("path", coverURL).Msg("Failed to remove orphaned cover image")
		}
		return "", err
	}

	if course.CoverImageURL != nil {
		if err := s.fileStorage.DeleteFile(*course.CoverImageURL); err != nil {
			logger.Warn().Err(err).Str("path", *course.CoverImageURL).Msg("Failed to remove previous cover image")
		}
	}

	return coverURL, nil
}

// Delete deletes a course and its stored cover image
func (s *CourseService) Delete(ctx context.Context, organizationID, id int64) error {
	course, err := s.courseRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, organizationID, id); err != nil {
		return err
	}

	if course.CoverImageURL != nil {
		if err := s.fileStorage.DeleteFile(*course.CoverImageURL); err != nil {
			logger.Warn().Err(err).Str("path", *course.CoverImageURL).Msg("Failed to remove cover image file")
		}
	}

	return nil
}

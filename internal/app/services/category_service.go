package services

import (
	"context"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/pkg/slugify"
)

// CategoryService handles category management within one organization
type CategoryService struct {
	categoryRepo *repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a category. The slug is derived from the name here and
// never recomputed afterwards.
func (s *CategoryService) Create(ctx context.Context, organizationID int64, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		OrganizationID: organizationID,
		Name:           req.Name,
		Slug:           slugify.Make(req.Name),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Get retrieves one category of the caller's organization
func (s *CategoryService) Get(ctx context.Context, organizationID, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, organizationID, id)
}

// List lists the categories of the caller's organization
func (s *CategoryService) List(ctx context.Context, organizationID int64) ([]*models.Category, error) {
	return s.categoryRepo.ListByOrganization(ctx, organizationID)
}

// Update renames a category, keeping the original slug so existing links
// stay valid
func (s *CategoryService) Update(ctx context.Context, organizationID, id int64, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.categoryRepo.UpdateName(ctx, organizationID, id, req.Name); err != nil {
		return nil, err
	}

	return s.categoryRepo.GetByID(ctx, organizationID, id)
}

// Delete deletes a category. Courses keep existing, only the link is removed.
func (s *CategoryService) Delete(ctx context.Context, organizationID, id int64) error {
	return s.categoryRepo.Delete(ctx, organizationID, id)
}

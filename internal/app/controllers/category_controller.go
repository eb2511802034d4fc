package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
)

// CategoryController handles category management
type CategoryController struct {
	categoryService *services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// ListCategories lists the organization's categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	categories, err := c.categoryService.List(ctx, tenant.OrganizationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      categories,
		Timestamp: time.Now(),
	})
}

// GetCategory retrieves one category
// @Summary Get category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categoryService.Get(ctx, tenant.OrganizationID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// CreateCategory creates a category
// @Summary Create category
// @Description Creates a category; the slug is derived from the name once and never changes
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=models.Category} "Category created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	category, err := c.categoryService.Create(ctx, tenant.OrganizationID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// UpdateCategory renames a category
// @Summary Rename category
// @Description Renames a category; the slug keeps its original value
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category information"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	category, err := c.categoryService.Update(ctx, tenant.OrganizationID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// DeleteCategory deletes a category
// @Summary Delete category
// @Description Deletes a category; linked courses keep existing without it
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse "Category deleted"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categoryService.Delete(ctx, tenant.OrganizationID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Category deleted"},
		Timestamp: time.Now(),
	})
}

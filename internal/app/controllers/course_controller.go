package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
	"github.com/rafael/coursehub/internal/pkg/helpers"
)

// CourseController handles course management
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses lists the organization's courses
// @Summary List courses
// @Description Returns a page of the organization's courses, newest first
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param categoryId query int false "Filter by category ID"
// @Param category query string false "Filter by category slug"
// @Param q query string false "Title search term"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := repositories.CourseFilter{
		CategorySlug: ctx.Query("category"),
		SearchTerm:   ctx.Query("q"),
	}
	if categoryIDStr := ctx.Query("categoryId"); categoryIDStr != "" {
		if categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64); err == nil {
			filter.CategoryID = categoryID
		}
	}

	courses, total, err := c.courseService.List(ctx, tenant.OrganizationID, filter, int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      courses,
			Pagination: helpers.NewPaginationInfo(total, page, limit),
		},
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx, tenant.OrganizationID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// CreateCourse creates a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or foreign category"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx, tenant.OrganizationID, tenant.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UpdateCourse edits a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or foreign category"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx, tenant.OrganizationID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UploadCoverImage stores a new course cover image
// @Summary Upload course cover
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param cover formData file true "Cover image"
// @Success 200 {object} dto.APIResponse "Cover stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/cover [post]
func (c *CourseController) UploadCoverImage(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("cover")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Cover file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	coverURL, err := c.courseService.UpdateCoverImage(ctx, tenant.OrganizationID, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"coverImageUrl": coverURL},
		Timestamp: time.Now(),
	})
}

// DeleteCourse deletes a course
// @Summary Delete course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx, tenant.OrganizationID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted"},
		Timestamp: time.Now(),
	})
}

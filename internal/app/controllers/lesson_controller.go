package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
)

// LessonController handles lessons, completion tracking and course progress
type LessonController struct {
	lessonService *services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService *services.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// ListLessons lists a course's lessons
// @Summary List course lessons
// @Description Lists the lessons of a course in position order, with the caller's completion flags
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson} "Lessons"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	lessons, err := c.lessonService.ListByCourse(ctx, tenant.OrganizationID, tenant.AssociateID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lessons,
		Timestamp: time.Now(),
	})
}

// CreateLesson adds a lesson to a course
// @Summary Create lesson
// @Description Creates a lesson; the pasted video URL is reduced to its platform id before storage
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=models.Lesson} "Lesson created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or unrecognizable video URL"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lesson, err := c.lessonService.Create(ctx, tenant.OrganizationID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      lesson,
		Timestamp: time.Now(),
	})
}

// GetLesson retrieves one lesson
// @Summary Get lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	lesson, err := c.lessonService.Get(ctx, tenant.OrganizationID, tenant.AssociateID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lesson,
		Timestamp: time.Now(),
	})
}

// UpdateLesson edits a lesson
// @Summary Update lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Lesson information"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or unrecognizable video URL"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lesson, err := c.lessonService.Update(ctx, tenant.OrganizationID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lesson,
		Timestamp: time.Now(),
	})
}

// UploadSupportMaterial stores a lesson's support material file
// @Summary Upload support material
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param material formData file true "Support material file"
// @Success 200 {object} dto.APIResponse "Material stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId}/material [post]
func (c *LessonController) UploadSupportMaterial(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("material")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Material file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materialURL, err := c.lessonService.UpdateSupportMaterial(ctx, tenant.OrganizationID, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"supportMaterialUrl": materialURL},
		Timestamp: time.Now(),
	})
}

// DeleteLesson deletes a lesson
// @Summary Delete lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse "Lesson deleted"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	if err := c.lessonService.Delete(ctx, tenant.OrganizationID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Lesson deleted"},
		Timestamp: time.Now(),
	})
}

// CompleteLesson marks a lesson as completed by the caller
// @Summary Complete lesson
// @Description Records the caller's completion; repeating the call changes nothing
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse "Completion recorded"
// @Failure 400 {object} dto.ErrorResponse "Owners do not track completion"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	if err := c.lessonService.MarkCompleted(ctx, tenant.OrganizationID, tenant.AssociateID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Lesson completed"},
		Timestamp: time.Now(),
	})
}

// GetCourseProgress reports the caller's progress in a course
// @Summary Course progress
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseProgressResponse} "Progress"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/progress [get]
func (c *LessonController) GetCourseProgress(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	progress, err := c.lessonService.CourseProgress(ctx, tenant.OrganizationID, tenant.AssociateID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      progress,
		Timestamp: time.Now(),
	})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
	"github.com/rafael/coursehub/internal/pkg/helpers"
)

// ForumController handles the organization discussion board
type ForumController struct {
	forumService *services.ForumService
}

// NewForumController creates a new ForumController
func NewForumController(forumService *services.ForumService) *ForumController {
	return &ForumController{forumService: forumService}
}

// ListTopics lists discussion topics
// @Summary List forum topics
// @Description Returns a page of the organization's topics, newest first
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Topics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/topics [get]
func (c *ForumController) ListTopics(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	topics, total, err := c.forumService.ListTopics(ctx, tenant.OrganizationID, int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      topics,
			Pagination: helpers.NewPaginationInfo(total, page, limit),
		},
		Timestamp: time.Now(),
	})
}

// CreateTopic opens a discussion topic
// @Summary Create forum topic
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTopicRequest true "Topic content"
// @Success 201 {object} dto.APIResponse{data=models.DiscussionTopic} "Topic created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/topics [post]
func (c *ForumController) CreateTopic(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	var req dto.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	topic, err := c.forumService.CreateTopic(ctx, tenant, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      topic,
		Timestamp: time.Now(),
	})
}

// GetTopic retrieves a topic with its comments
// @Summary Get forum topic
// @Description Returns the topic with its comments ordered oldest first
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} dto.APIResponse{data=models.DiscussionTopic} "Topic"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/topics/{topicId} [get]
func (c *ForumController) GetTopic(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	topic, err := c.forumService.GetTopic(ctx, tenant.OrganizationID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      topic,
		Timestamp: time.Now(),
	})
}

// DeleteTopic removes a topic
// @Summary Delete forum topic
// @Description Allowed for the topic author and the organization owner
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} dto.APIResponse "Topic deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author or owner"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/topics/{topicId} [delete]
func (c *ForumController) DeleteTopic(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	if err := c.forumService.DeleteTopic(ctx, tenant, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Topic deleted"},
		Timestamp: time.Now(),
	})
}

// AddComment replies on a topic
// @Summary Add topic comment
// @Description Accepts multipart form data with an optional file attachment
// @Tags forum
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Param body formData string true "Comment body"
// @Param attachment formData file false "Optional attachment"
// @Success 201 {object} dto.APIResponse{data=models.TopicComment} "Comment added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/topics/{topicId}/comments [post]
func (c *ForumController) AddComment(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	topicID, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	// The attachment is optional; a missing file is not an error.
	attachment, err := ctx.FormFile("attachment")
	if err != nil {
		attachment = nil
	}

	comment, err := c.forumService.AddComment(ctx, tenant, topicID, &req, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      comment,
		Timestamp: time.Now(),
	})
}

// DeleteComment removes a comment
// @Summary Delete topic comment
// @Description Allowed for the comment author and the organization owner
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.APIResponse "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author or owner"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/comments/{commentId} [delete]
func (c *ForumController) DeleteComment(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	if err := c.forumService.DeleteComment(ctx, tenant, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Comment deleted"},
		Timestamp: time.Now(),
	})
}

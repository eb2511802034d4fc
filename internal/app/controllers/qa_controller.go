package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
)

// QAController handles lesson questions, answers and votes
type QAController struct {
	qaService *services.QAService
}

// NewQAController creates a new QAController
func NewQAController(qaService *services.QAService) *QAController {
	return &QAController{qaService: qaService}
}

// ListQuestions lists a lesson's questions with answers
// @Summary List lesson questions
// @Description Questions come oldest first; each carries its answers ordered by votes
// @Tags qa
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Question} "Questions"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId}/questions [get]
func (c *QAController) ListQuestions(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	questions, err := c.qaService.ListQuestions(ctx, tenant, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      questions,
		Timestamp: time.Now(),
	})
}

// PostQuestion asks a question on a lesson
// @Summary Post question
// @Description Creates the question and notifies the organization owner in one transaction
// @Tags qa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param request body dto.CreateQuestionRequest true "Question body"
// @Success 201 {object} dto.APIResponse{data=models.Question} "Question posted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lessonId}/questions [post]
func (c *QAController) PostQuestion(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	question, err := c.qaService.PostQuestion(ctx, tenant, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      question,
		Timestamp: time.Now(),
	})
}

// PostAnswer answers a question
// @Summary Post answer
// @Description Creates the answer and fans out notifications to the asker and prior answerers in one transaction
// @Tags qa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param request body dto.CreateAnswerRequest true "Answer body"
// @Success 201 {object} dto.APIResponse{data=models.Answer} "Answer posted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{questionId}/answers [post]
func (c *QAController) PostAnswer(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	var req dto.CreateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	answer, err := c.qaService.PostAnswer(ctx, tenant, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      answer,
		Timestamp: time.Now(),
	})
}

// ToggleVote toggles the caller's vote on an answer
// @Summary Toggle vote
// @Description First call records the vote, second call withdraws it; the count is a live recount
// @Tags qa
// @Produce json
// @Security BearerAuth
// @Param answerId path int true "Answer ID"
// @Success 200 {object} dto.APIResponse{data=dto.VoteToggleResponse} "Vote state"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/{answerId}/vote [post]
func (c *QAController) ToggleVote(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	answerID, ok := parseIDParam(ctx, "answerId")
	if !ok {
		return
	}

	result, err := c.qaService.ToggleVote(ctx, tenant, answerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// DeleteQuestion removes a question
// @Summary Delete question
// @Description Allowed for the question author and the organization owner
// @Tags qa
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} dto.APIResponse "Question deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author or owner"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{questionId} [delete]
func (c *QAController) DeleteQuestion(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.qaService.DeleteQuestion(ctx, tenant, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Question deleted"},
		Timestamp: time.Now(),
	})
}

// DeleteAnswer removes an answer
// @Summary Delete answer
// @Description Allowed for the answer author and the organization owner
// @Tags qa
// @Produce json
// @Security BearerAuth
// @Param answerId path int true "Answer ID"
// @Success 200 {object} dto.APIResponse "Answer deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author or owner"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/{answerId} [delete]
func (c *QAController) DeleteAnswer(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "answerId")
	if !ok {
		return
	}

	if err := c.qaService.DeleteAnswer(ctx, tenant, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Answer deleted"},
		Timestamp: time.Now(),
	})
}

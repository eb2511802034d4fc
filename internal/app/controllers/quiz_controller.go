package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
)

// QuizController handles the per-course quiz, its building blocks and
// submissions
type QuizController struct {
	quizService *services.QuizService
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService *services.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// GetQuiz retrieves the course quiz
// @Summary Get course quiz
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Quiz} "Quiz"
// @Failure 404 {object} dto.ErrorResponse "Course or quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	quiz, err := c.quizService.GetByCourse(ctx, tenant.OrganizationID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      quiz,
		Timestamp: time.Now(),
	})
}

// UpsertQuiz creates or renames the course quiz
// @Summary Create or rename quiz
// @Description A course has at most one quiz; a second create converges on the existing one
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.UpsertQuizRequest true "Quiz title"
// @Success 200 {object} dto.APIResponse{data=models.Quiz} "Quiz"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/quiz [put]
func (c *QuizController) UpsertQuiz(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.UpsertQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	quiz, err := c.quizService.Upsert(ctx, tenant.OrganizationID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      quiz,
		Timestamp: time.Now(),
	})
}

// AddQuestion adds a question to a quiz
// @Summary Add quiz question
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param request body dto.CreateQuizQuestionRequest true "Question"
// @Success 201 {object} dto.APIResponse{data=models.QuizQuestion} "Question added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quizId}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	quizID, ok := parseIDParam(ctx, "quizId")
	if !ok {
		return
	}

	var req dto.CreateQuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	question, err := c.quizService.AddQuestion(ctx, tenant.OrganizationID, quizID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      question,
		Timestamp: time.Now(),
	})
}

// UpdateQuestion edits a quiz question
// @Summary Update quiz question
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param request body dto.UpdateQuizQuestionRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=models.QuizQuestion} "Question updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz-questions/{questionId} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	var req dto.UpdateQuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	question, err := c.quizService.UpdateQuestion(ctx, tenant.OrganizationID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      question,
		Timestamp: time.Now(),
	})
}

// DeleteQuestion deletes a quiz question
// @Summary Delete quiz question
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} dto.APIResponse "Question deleted"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz-questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.quizService.DeleteQuestion(ctx, tenant.OrganizationID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Quiz question deleted"},
		Timestamp: time.Now(),
	})
}

// AddOption adds an answer option to a quiz question
// @Summary Add answer option
// @Description At most 4 options per question; marking one correct clears any sibling's correct flag
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param request body dto.SaveOptionRequest true "Option"
// @Success 201 {object} dto.APIResponse{data=models.AnswerOption} "Option added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or option cap reached"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz-questions/{questionId}/options [post]
func (c *QuizController) AddOption(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	var req dto.SaveOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	option, err := c.quizService.AddOption(ctx, tenant.OrganizationID, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      option,
		Timestamp: time.Now(),
	})
}

// UpdateOption edits an answer option
// @Summary Update answer option
// @Description Marking the option correct clears any sibling's correct flag in the same transaction
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param optionId path int true "Option ID"
// @Param request body dto.SaveOptionRequest true "Option"
// @Success 200 {object} dto.APIResponse{data=models.AnswerOption} "Option updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Option not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz-options/{optionId} [put]
func (c *QuizController) UpdateOption(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "optionId")
	if !ok {
		return
	}

	var req dto.SaveOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	option, err := c.quizService.UpdateOption(ctx, tenant.OrganizationID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      option,
		Timestamp: time.Now(),
	})
}

// DeleteOption deletes an answer option
// @Summary Delete answer option
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param optionId path int true "Option ID"
// @Success 200 {object} dto.APIResponse "Option deleted"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Option not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quiz-options/{optionId} [delete]
func (c *QuizController) DeleteOption(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "optionId")
	if !ok {
		return
	}

	if err := c.quizService.DeleteOption(ctx, tenant.OrganizationID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Answer option deleted"},
		Timestamp: time.Now(),
	})
}

// SubmitQuiz grades a quiz submission
// @Summary Submit quiz
// @Description Grades the selected options and stores the score snapshot
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.SubmitQuizRequest true "Selected option IDs"
// @Success 200 {object} dto.APIResponse{data=dto.QuizResultResponse} "Graded result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course or quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.quizService.Submit(ctx, tenant.OrganizationID, tenant.UserID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ListMyResults lists the caller's own quiz submissions
// @Summary List own quiz results
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.QuizResult} "Own results"
// @Failure 404 {object} dto.ErrorResponse "Course or quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/quiz/my-results [get]
func (c *QuizController) ListMyResults(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	results, err := c.quizService.ListMyResults(ctx, tenant.OrganizationID, tenant.UserID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      results,
		Timestamp: time.Now(),
	})
}

// ListResults lists the quiz submissions
// @Summary List quiz results
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.QuizResult} "Results"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Course or quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/quiz/results [get]
func (c *QuizController) ListResults(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	results, err := c.quizService.ListResults(ctx, tenant.OrganizationID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      results,
		Timestamp: time.Now(),
	})
}

package dto

// UpsertQuizRequest creates the course quiz or updates its title
// (lookup-or-create: at most one quiz per course).
type UpsertQuizRequest struct {
	Title string `json:"title" binding:"required,min=2,max=350"`
}

// CreateQuizQuestionRequest adds a question to the quiz
type CreateQuizQuestionRequest struct {
	Text     string `json:"text" binding:"required,min=2"`
	Position int    `json:"position" binding:"required,gt=0"`
}

// UpdateQuizQuestionRequest edits a quiz question
type UpdateQuizQuestionRequest struct {
	Text     string `json:"text" binding:"required,min=2"`
	Position int    `json:"position" binding:"required,gt=0"`
}

// SaveOptionRequest creates or edits an answer option. Setting Correct forces
// every sibling option to correct=false first.
type SaveOptionRequest struct {
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"correct"`
}

// SubmitQuizRequest grades the selected option per question
type SubmitQuizRequest struct {
	SelectedOptionIDs []int64 `json:"selectedOptionIds" binding:"required,min=1"`
}

// QuizResultResponse is the graded snapshot returned after submission
type QuizResultResponse struct {
	QuizID  int64 `json:"quizId"`
	Score   int   `json:"score"`
	Total   int   `json:"total"`
}

package dto

// CreateQuestionRequest posts a question on a lesson
type CreateQuestionRequest struct {
	Body string `json:"body" binding:"required,min=2"`
}

// CreateAnswerRequest posts an answer to a question
type CreateAnswerRequest struct {
	Body string `json:"body" binding:"required,min=2"`
}

// VoteToggleResponse reports the state after an idempotent vote toggle
type VoteToggleResponse struct {
	AnswerID  int64 `json:"answerId"`
	Voted     bool  `json:"voted"`
	VoteCount int   `json:"voteCount"`
}

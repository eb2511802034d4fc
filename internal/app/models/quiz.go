package models

import "time"

// MaxOptionsPerQuestion caps the options under one quiz question.
const MaxOptionsPerQuestion = 4

// Quiz is the single quiz attached to a course (UNIQUE on course_id).
type Quiz struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Questions []*QuizQuestion `json:"questions,omitempty"`
}

// QuizQuestion is one question of a quiz, ordered by Position.
type QuizQuestion struct {
	ID       int64  `json:"id" db:"id"`
	QuizID   int64  `json:"quizId" db:"quiz_id"`
	Text     string `json:"text" db:"text"`
	Position int    `json:"position" db:"position"`

	// Related entities
	Options []*AnswerOption `json:"options,omitempty"`
}

// AnswerOption is one selectable option of a quiz question. At most one
// option per question has Correct set; every option write goes through the
// service path that clears sibling correct flags first, and a partial unique
// index backs the invariant at the storage level.
type AnswerOption struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"questionId" db:"question_id"`
	Text       string `json:"text" db:"text"`
	Correct    bool   `json:"correct" db:"correct"`
}

// QuizResult is the score snapshot of one submission.
type QuizResult struct {
	ID      int64     `json:"id" db:"id"`
	QuizID  int64     `json:"quizId" db:"quiz_id"`
	UserID  int64     `json:"userId" db:"user_id"`
	Score   int       `json:"score" db:"score"`
	Total   int       `json:"total" db:"total"`
	TakenAt time.Time `json:"takenAt" db:"taken_at"`

	// Derived
	UserName string `json:"userName,omitempty"`
}

package models

import "time"

// Question is asked on a lesson. Listed oldest first.
type Question struct {
	ID        int64     `json:"id" db:"id"`
	LessonID  int64     `json:"lessonId" db:"lesson_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	AuthorName  string    `json:"authorName,omitempty"`
	Answers     []*Answer `json:"answers,omitempty"`
	AnswerCount int       `json:"answerCount,omitempty"`
}

// Answer replies to a question. Ordering is vote count descending, then
// creation time ascending. VoteCount is always a live recount of the voters
// join table, never cached.
type Answer struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"questionId" db:"question_id"`
	AuthorID   int64     `json:"authorId" db:"author_id"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Derived
	AuthorName   string `json:"authorName,omitempty"`
	VoteCount    int    `json:"voteCount"`
	CallerVoted  bool   `json:"callerVoted"`
}

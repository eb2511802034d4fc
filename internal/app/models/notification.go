package models

import "time"

// Notification is created by the fan-out when an answer or question is
// posted. Exactly one of AnswerID and QuestionID is set (CHECK constraint).
// There is no read→unread transition and no deletion path.
type Notification struct {
	ID          int64     `json:"id" db:"id"`
	RecipientID int64     `json:"recipientId" db:"recipient_id"`
	AnswerID    *int64    `json:"answerId,omitempty" db:"answer_id"`
	QuestionID  *int64    `json:"questionId,omitempty" db:"question_id"`
	Read        bool      `json:"read" db:"read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Denormalized context for rendering the list
	ActorName    string `json:"actorName,omitempty"`
	LessonID     int64  `json:"lessonId,omitempty"`
	LessonTitle  string `json:"lessonTitle,omitempty"`
	BodyPreview  string `json:"bodyPreview,omitempty"`
}

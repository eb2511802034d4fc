package models

import "time"

// DiscussionTopic is a forum thread scoped to one organization.
type DiscussionTopic struct {
	ID             int64     `json:"id" db:"id"`
	OrganizationID int64     `json:"organizationId" db:"organization_id"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
	Title          string    `json:"title" db:"title"`
	Body           string    `json:"body" db:"body"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Derived
	AuthorName   string          `json:"authorName,omitempty"`
	CommentCount int             `json:"commentCount,omitempty"`
	Comments     []*TopicComment `json:"comments,omitempty"`
}

// TopicComment is a reply on a discussion topic, with an optional file
// attachment.
type TopicComment struct {
	ID            int64     `json:"id" db:"id"`
	TopicID       int64     `json:"topicId" db:"topic_id"`
	AuthorID      int64     `json:"authorId" db:"author_id"`
	Body          string    `json:"body" db:"body"`
	AttachmentURL *string   `json:"attachmentUrl,omitempty" db:"attachment_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Derived
	AuthorName string `json:"authorName,omitempty"`
}

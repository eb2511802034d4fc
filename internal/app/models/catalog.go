package models

import "time"

// Category groups courses within one organization.
// (organization_id, name) is unique; the slug is derived from the name at
// first save and never changes afterwards.
type Category struct {
	ID             int64  `json:"id" db:"id"`
	OrganizationID int64  `json:"organizationId" db:"organization_id"`
	Name           string `json:"name" db:"name"`
	Slug           string `json:"slug" db:"slug"`
}

// Course is a published course belonging to one organization.
type Course struct {
	ID             int64     `json:"id" db:"id"`
	OrganizationID int64     `json:"organizationId" db:"organization_id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	CoverImageURL  *string   `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	InstructorID   int64     `json:"instructorId,omitempty" db:"instructor_id"` // nullable, SET NULL on user delete
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Instructor     *User       `json:"instructor,omitempty"`
	Categories     []*Category `json:"categories,omitempty"`
	LessonCount    int         `json:"lessonCount,omitempty"`
	InstructorName string      `json:"instructorName,omitempty"`
}

// Lesson is a single video lesson inside a course, ordered by Position.
// VideoID holds the bare 11-character platform identifier, never a URL.
type Lesson struct {
	ID                 int64     `json:"id" db:"id"`
	CourseID           int64     `json:"courseId" db:"course_id"`
	Title              string    `json:"title" db:"title"`
	Description        string    `json:"description" db:"description"`
	VideoID            string    `json:"videoId" db:"video_id"`
	SupportMaterialURL *string   `json:"supportMaterialUrl,omitempty" db:"support_material_url"`
	Position           int       `json:"position" db:"position"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`

	// Derived, not stored
	EmbedURL  string `json:"embedUrl,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// LessonCompletion records that an associate finished a lesson.
// (associate_id, lesson_id) is unique, completing twice is a no-op.
type LessonCompletion struct {
	AssociateID int64     `json:"associateId" db:"associate_id"`
	LessonID    int64     `json:"lessonId" db:"lesson_id"`
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

package dto

// CreateCategoryRequest creates a category; the slug is derived from the name
// once, at create time.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateCategoryRequest renames a category. The slug never changes.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// CreateCourseRequest creates a course in the caller's organization
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=350"`
	Description string  `json:"description"`
	CategoryIDs []int64 `json:"categoryIds"`
}

// UpdateCourseRequest edits a course
type UpdateCourseRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=350"`
	Description string  `json:"description"`
	CategoryIDs []int64 `json:"categoryIds"`
}

// CreateLessonRequest creates a lesson. VideoURL accepts any recognized
// pasted URL shape; only the extracted 11-character id is persisted.
type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=350"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" binding:"required,videourl"`
	Position    int    `json:"position" binding:"required,gt=0"`
}

// UpdateLessonRequest edits a lesson
type UpdateLessonRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=350"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" binding:"required,videourl"`
	Position    int    `json:"position" binding:"required,gt=0"`
}

// CourseProgressResponse reports lesson completion within a course
type CourseProgressResponse struct {
	CourseID         int64 `json:"courseId"`
	TotalLessons     int   `json:"totalLessons"`
	CompletedLessons int   `json:"completedLessons"`
}

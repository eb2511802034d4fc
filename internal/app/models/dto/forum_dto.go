package dto

// CreateTopicRequest opens a discussion topic in the caller's organization
type CreateTopicRequest struct {
	Title string `json:"title" binding:"required,min=2,max=350"`
	Body  string `json:"body" binding:"required,min=2"`
}

// CreateCommentRequest replies on a topic. Sent as multipart form so an
// optional file attachment can ride along.
type CreateCommentRequest struct {
	Body string `form:"body" binding:"required,min=2"`
}

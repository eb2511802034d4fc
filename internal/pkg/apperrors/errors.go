package apperrors

import "errors"

// Common errors
var (
	// Resource errors. Tenant-scoped lookups that miss return ErrResourceNotFound
	// whether the row does not exist or belongs to another organization; the two
	// cases are deliberately indistinguishable.
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountNotApproved = errors.New("account is awaiting approval")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	// Authorization errors
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNotOrganizationOwner = errors.New("only the organization owner can perform this action")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Membership errors
var (
	ErrAssociateNotFound      = errors.New("associate not found")
	ErrAssociateAlreadyExists = errors.New("user already has an associate profile")
	ErrOrganizationNotFound   = errors.New("organization not found")
)

// Catalog errors
var (
	ErrCategoryNotFound             = errors.New("category not found")
	ErrCategoryAlreadyExists        = errors.New("category with this name already exists in the organization")
	ErrCategoryOrganizationMismatch = errors.New("category belongs to a different organization")
	ErrCourseNotFound               = errors.New("course not found")
	ErrLessonNotFound               = errors.New("lesson not found")
	ErrInvalidVideoURL              = errors.New("could not extract a video id from the provided url")
)

// Q&A errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
)

// Quiz errors
var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizQuestionNotFound = errors.New("quiz question not found")
	ErrOptionNotFound       = errors.New("answer option not found")
	ErrTooManyOptions       = errors.New("a quiz question can have at most 4 options")
)

// Forum errors
var (
	ErrTopicNotFound   = errors.New("discussion topic not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for a failed field validation
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// Is returns whether target or any of the errors in errList matches err
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewResourceNotFoundError("course not found")
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Equal(t, "course not found", err.Error())

	wrapped := fmt.Errorf("service layer: %w", err)
	assert.ErrorIs(t, wrapped, ErrResourceNotFound)
}

func TestCustomErrorMessageFallback(t *testing.T) {
	e := &CustomError{Err: ErrPermissionDenied}
	assert.Equal(t, ErrPermissionDenied.Error(), e.Error())

	empty := &CustomError{}
	assert.Equal(t, "unknown error", empty.Error())
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("videoUrl", "could not extract a video id")
	assert.ErrorIs(t, err, ErrValidationFailed)

	var ce *CustomError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "videoUrl", ce.Details["field"])
}

func TestIsMatchesAnyTarget(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrCourseNotFound)
	assert.True(t, Is(err, ErrCategoryNotFound, ErrCourseNotFound, ErrLessonNotFound))
	assert.False(t, Is(err, ErrCategoryNotFound, ErrLessonNotFound))
}

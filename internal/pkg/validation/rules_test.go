package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoURLRule(t *testing.T) {
	require.NoError(t, RegisterCustomRules())

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type form struct {
		VideoURL string `binding:"videourl"`
	}

	assert.NoError(t, v.Struct(form{VideoURL: "https://youtu.be/dQw4w9WgXcQ"}))
	assert.NoError(t, v.Struct(form{VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"}))

	assert.Error(t, v.Struct(form{VideoURL: "not a video url"}))
	// An over-length id must fail validation, never be truncated.
	assert.Error(t, v.Struct(form{VideoURL: "https://youtu.be/dQw4w9WgXcQx"}))
}

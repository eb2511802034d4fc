package videoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url no scheme", "www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url no www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url v not first param", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url trailing params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"legacy v url", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"http scheme", "http://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"id with underscore and dash", "https://youtu.be/a_b-C1d2E3f", "a_b-C1d2E3f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, IDLength)
		})
	}
}

func TestExtractRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"random text", "not a url at all"},
		{"other host", "https://vimeo.com/123456789"},
		{"watch without v param", "https://www.youtube.com/watch?list=PL123"},
		{"id too short", "https://youtu.be/short"},
		{"bare id too long", "dQw4w9WgXcQdQw4w9WgXcQ"},
		{"short url id too long", "https://youtu.be/dQw4w9WgXcQx"},
		{"watch id too long", "https://www.youtube.com/watch?v=dQw4w9WgXcQx"},
		{"watch id too long with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQxyz&t=42s"},
		{"embed id too long", "https://www.youtube.com/embed/dQw4w9WgXcQxyz"},
		{"channel url", "https://www.youtube.com/c/somechannel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.input)
			assert.ErrorIs(t, err, ErrNoVideoID)
		})
	}
}

func TestEmbedURL(t *testing.T) {
	id, err := Extract("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL(id))

	// Re-deriving the embed URL and extracting again round-trips the id.
	again, err := Extract(EmbedURL(id))
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

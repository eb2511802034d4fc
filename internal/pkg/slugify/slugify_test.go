package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Web Development", "web-development"},
		{"accents folded", "Programação Básica", "programacao-basica"},
		{"punctuation collapsed", "C++ & Go: Basics!", "c-go-basics"},
		{"leading trailing junk", "  --Data Science--  ", "data-science"},
		{"digits kept", "Algebra 101", "algebra-101"},
		{"multiple spaces", "Machine   Learning", "machine-learning"},
		{"already slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIsStable(t *testing.T) {
	// Slugging a slug returns the same slug, so re-derivation never drifts.
	s := Make("Engenharia de Software")
	assert.Equal(t, s, Make(s))
}

func TestMakeNonASCIIFallback(t *testing.T) {
	// A name with no ASCII-representable characters still gets a slug, so
	// the (organization, slug) unique key never sees an empty value.
	s := Make("日本語")
	assert.NotEmpty(t, s)
	assert.Equal(t, s, Make("日本語"))
	assert.Equal(t, s, Make(s))

	// Distinct names get distinct slugs, punctuation-only included.
	assert.NotEqual(t, s, Make("中文分類"))
	assert.NotEmpty(t, Make("!!!"))
	assert.NotEqual(t, Make("!!!"), Make("???"))
}

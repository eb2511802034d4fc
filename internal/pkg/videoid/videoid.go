package videoid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoVideoID is returned when no video identifier can be extracted from the input
var ErrNoVideoID = errors.New("no video id found in url")

// IDLength is the length of a platform video identifier
const IDLength = 11

// Recognized URL shapes. Each pattern captures the 11-character id followed
// by a delimiter or the end of the input, so an over-length identifier fails
// instead of being truncated to its first 11 characters. Anything after the
// id (extra query params, fragments) is tolerated.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:[^#&]*&)*v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/v/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

// idOnly matches a bare 11-character id pasted without any URL around it.
var idOnly = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Extract parses a free-form pasted URL and returns the bare video identifier.
// Only the identifier is ever persisted, never the full URL. A bare id is
// accepted as-is so users who followed the old "paste only the code" help text
// keep working.
func Extract(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoVideoID
	}

	if idOnly.MatchString(input) {
		return input, nil
	}

	for _, p := range patterns {
		if m := p.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}

	return "", ErrNoVideoID
}

// EmbedURL re-derives the canonical embed URL for a stored identifier.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

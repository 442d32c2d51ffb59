package slack

import (
	"net/http"
	"strings"
)

// ParseCaptions splits command text into top and bottom captions.
//
// For example, "Hello:World" gives "Hello" and "World", and "Hello" gives
// "Hello" and "". Anything after a second ':' is dropped, so "a:b:c" gives
// "a" and "b". Captions are not trimmed.
func ParseCaptions(text string) (text0, text1 string) {
	parts := strings.Split(text, ":")
	text0 = parts[0]
	if len(parts) > 1 {
		text1 = parts[1]
	}
	return text0, text1
}

// ParseImageID returns the {image_id} path segment, or fallback for "/".
func ParseImageID(r *http.Request, fallback string) string {
	if id := r.PathValue("image_id"); id != "" {
		return id
	}
	return fallback
}

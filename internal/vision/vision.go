package vision

import (
	"context"
	"io"
	"strings"
)

// TagPrompt is the shared prompt used by all tagging backends.
const TagPrompt = `You are cataloguing a theatre prop from this photo.
Respond with exactly two lines:
keywords: comma-separated search keywords describing the prop
category: one short category name (e.g. Furniture, Weapons, Lighting)`

// Tagger suggests search keywords and a category for a prop photo.
type Tagger interface {
	SuggestTags(ctx context.Context, r io.Reader, mimeType string) (*Suggestion, error)
}

type Suggestion struct {
	Keywords []string
	Category string
}

// MIMEForExt maps a stored photo extension to its media type. Unknown
// extensions fall back to JPEG, matching how stored files are served.
func MIMEForExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

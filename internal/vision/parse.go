package vision

import "strings"

// ParseSuggestion parses model output in the two-line format
// "keywords: ..." / "category: ...". Lines that match neither prefix are
// ignored, so leading chatter from verbose models is harmless.
func ParseSuggestion(raw string) *Suggestion {
	s := &Suggestion{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "keywords:"):
			for _, kw := range strings.Split(line[len("keywords:"):], ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					s.Keywords = append(s.Keywords, kw)
				}
			}
		case strings.HasPrefix(lower, "category:"):
			s.Category = strings.TrimSpace(line[len("category:"):])
		}
	}

	return s
}

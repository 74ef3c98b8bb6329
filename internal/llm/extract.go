package llm

import "strings"

// ExtractJSON normalizes a model response down to its JSON payload.
// It strips markdown code fences and surrounding prose, returning the
// outermost JSON object or array. When no JSON-like payload is found the
// trimmed response is returned unchanged so the caller's parse error
// carries the real content.
func ExtractJSON(response string) string {
	s := strings.TrimSpace(response)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	objStart := strings.IndexAny(s, "{[")
	if objStart < 0 {
		return s
	}

	open := s[objStart]
	var close byte
	if open == '{' {
		close = '}'
	} else {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := objStart; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[objStart : i+1]
			}
		}
	}

	return s[objStart:]
}

package formatting

import "strings"

// FirstArray returns the first balanced top-level JSON array substring in
// content, scanning with string and escape awareness so brackets inside
// string values do not affect nesting depth. Returns "[]" and false when
// no balanced array is found. The result is a candidate for JSON parsing,
// not guaranteed to be valid JSON.
func FirstArray(content string) (string, bool) {
	start := strings.IndexByte(content, '[')
	if start == -1 {
		return "[]", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}

	return "[]", false
}

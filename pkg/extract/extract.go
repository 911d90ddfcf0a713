// Package extract provides plain-text extraction from uploaded document
// bytes, routed by declared media type.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Result carries extracted text and the number of source pages visited.
type Result struct {
	Text  string
	Pages int
}

// IsTextBearing reports whether a declared media type routes to text
// extraction. Routing is a pure function of the media type; content is
// never sniffed.
func IsTextBearing(mediaType string) bool {
	mt := normalizeMediaType(mediaType)
	return mt == "application/pdf" || strings.HasPrefix(mt, "text/")
}

// Text extracts plain text from data according to the declared media type,
// bounded by budget characters; a budget <= 0 means unbounded. PDF pages are
// concatenated in order with page-boundary markers; extraction stops early
// once the budget is exceeded and the result is truncated to exactly budget
// characters. Returns an error for media types that are not text-bearing.
func Text(data []byte, mediaType string, budget int) (Result, error) {
	mt := normalizeMediaType(mediaType)

	switch {
	case mt == "application/pdf":
		return pdfText(data, budget)
	case strings.HasPrefix(mt, "text/"):
		return plainText(data, budget), nil
	default:
		return Result{}, fmt.Errorf("media type %q is not text-bearing", mediaType)
	}
}

func plainText(data []byte, budget int) Result {
	text := strings.ToValidUTF8(string(data), "")
	return Result{
		Text:  truncate(text, budget),
		Pages: 1,
	}
}

// normalizeMediaType strips parameters (e.g. "; charset=utf-8") and lowercases.
func normalizeMediaType(mediaType string) string {
	mt := mediaType
	if idx := strings.IndexByte(mt, ';'); idx != -1 {
		mt = mt[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

func truncate(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget])
}

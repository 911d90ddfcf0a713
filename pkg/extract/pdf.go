package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in a PDF document.
// It fails for genuinely corrupt files, making it usable as an
// up-front validation gate.
func PageCount(data []byte) (int, error) {
	count, err := pdfapi.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("pdf page count: %w", err)
	}
	return count, nil
}

// pdfText extracts page text in page order through joinPages. Pages beyond
// the character budget are never read from the document.
func pdfText(data []byte, budget int) (Result, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}

	numPages := r.NumPage()
	var pageErr error

	result := joinPages(numPages, budget, func(i int) string {
		page := r.Page(i)
		if page.V.IsNull() {
			return ""
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pageErr = fmt.Errorf("extract page %d: %w", i, err)
			return ""
		}
		return text
	})

	if pageErr != nil {
		return Result{}, pageErr
	}
	return result, nil
}

// joinPages concatenates 1-based pages in order, prefixing each with a
// boundary marker so downstream prompts retain locality cues. Accumulation
// stops once the running length exceeds budget (later pages are never
// requested), then the text is truncated to exactly budget characters.
func joinPages(numPages, budget int, pageText func(i int) string) Result {
	var buf strings.Builder
	total := 0
	visited := 0

	for i := 1; i <= numPages; i++ {
		if budget > 0 && total > budget {
			break
		}

		chunk := fmt.Sprintf("--- Page %d ---\n%s\n", i, pageText(i))
		buf.WriteString(chunk)
		total += utf8.RuneCountInString(chunk)
		visited = i
	}

	return Result{
		Text:  truncate(buf.String(), budget),
		Pages: visited,
	}
}

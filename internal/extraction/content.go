package extraction

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/orderlens/orderlens/pkg/extract"
)

// TextBudget caps extracted document text to bound inference cost and
// latency on arbitrarily long documents. Tail content past the budget is
// deliberately discarded.
const TextBudget = 15000

// ContentKind discriminates the two prepared content variants.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// PreparedContent is the text-or-image payload handed to the inference
// call. Exactly one variant is populated per request. PagesRead counts the
// pages actually extracted; PageCount is the document total.
type PreparedContent struct {
	Kind      ContentKind
	Text      string
	PagesRead int
	PageCount int
	MIMEType  string
	Base64    string
}

// PrepareContent routes raw document bytes by their declared media type.
// Text-bearing documents are extracted page by page under TextBudget;
// anything else is base64-encoded for inline image reference. Corrupt PDFs
// fail validation and surface as ErrInvalidFile.
func PrepareContent(data []byte, mediaType string) (PreparedContent, error) {
	if !extract.IsTextBearing(mediaType) {
		return PreparedContent{
			Kind:     ContentImage,
			MIMEType: mediaType,
			Base64:   base64.StdEncoding.EncodeToString(data),
		}, nil
	}

	pageCount := 1
	if isPDF(mediaType) {
		count, err := extract.PageCount(data)
		if err != nil {
			return PreparedContent{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
		pageCount = count
	}

	result, err := extract.Text(data, mediaType, TextBudget)
	if err != nil {
		return PreparedContent{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return PreparedContent{
		Kind:      ContentText,
		Text:      result.Text,
		PagesRead: result.Pages,
		PageCount: pageCount,
	}, nil
}

func isPDF(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "application/pdf")
}

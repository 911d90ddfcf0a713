package extraction

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orderlens/orderlens/pkg/storage"
)

// ExtractCommand carries one uploaded document through the pipeline.
type ExtractCommand struct {
	Data         []byte
	Filename     string
	ContentType  string
	VendorHint   string
	CustomerHint string
}

// ExtractResult is the final payload for one processed document.
type ExtractResult struct {
	Items         []OrderLineItem
	SourceFileURL string
}

// System defines the public contract for the extraction domain.
type System interface {
	Handler(maxUploadSize int64) *Handler
	Extract(ctx context.Context, cmd ExtractCommand) (*ExtractResult, error)
}

type pipeline struct {
	storage storage.System
	client  Invoker
	logger  *slog.Logger
}

// New creates the extraction pipeline implementing the System interface.
func New(store storage.System, client Invoker, logger *slog.Logger) System {
	return &pipeline{
		storage: store,
		client:  client,
		logger:  logger.With("system", "extraction"),
	}
}

func (p *pipeline) Handler(maxUploadSize int64) *Handler {
	return NewHandler(p, p.logger, maxUploadSize)
}

// Extract runs the pipeline sequentially on the request context: upload the
// original to blob storage, prepare text or image content, compose the
// prompt, invoke the model, and normalize the completion. Storage and
// inference failures abort the request; everything after a successful
// inference call always produces a usable result.
func (p *pipeline) Extract(ctx context.Context, cmd ExtractCommand) (*ExtractResult, error) {
	filename := sanitizeFilename(cmd.Filename)
	key := uuid.New().String() + "/" + filename

	if err := p.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload order document: %w", err)
	}
	fileURL := p.storage.URL(key)

	content, err := PrepareContent(cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, err
	}

	p.logger.Info(
		"content prepared",
		"kind", content.Kind,
		"pages_read", content.PagesRead,
		"page_count", content.PageCount,
		"text_len", len(content.Text),
	)

	prompt := BuildPrompt(content, cmd.VendorHint, cmd.CustomerHint)

	raw, err := p.client.Invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	rc := RequestContext{
		VendorHint:      cmd.VendorHint,
		CustomerHint:    cmd.CustomerHint,
		SourceInvoiceID: invoiceID(filename),
		SourceFileURL:   fileURL,
		ProcessedAt:     time.Now().UTC(),
	}

	items := Normalize(raw, rc)

	p.logger.Info(
		"extraction complete",
		"key", key,
		"items", len(items),
	)

	return &ExtractResult{
		Items:         items,
		SourceFileURL: fileURL,
	}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	clean := unsafeKeyChars.ReplaceAllString(base, "_")
	if clean == "" || clean == "." {
		return "document"
	}
	return clean
}

// invoiceID derives the stable source identifier from the stored file's
// name with its extension stripped.
func invoiceID(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

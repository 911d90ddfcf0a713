package extraction

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/orderlens/orderlens/pkg/formatting"
	"github.com/orderlens/orderlens/pkg/handlers"
	"github.com/orderlens/orderlens/pkg/routes"
)

// Handler provides the HTTP endpoint for order document extraction.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// ExtractResponse is the success envelope for the extraction endpoint.
type ExtractResponse struct {
	Success       bool            `json:"success"`
	Data          []OrderLineItem `json:"data"`
	SourceFileURL string          `json:"source_file_url"`
}

// NewHandler creates a Handler with the given system, logger, and upload
// size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "extractions"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for extraction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/extractions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Extract},
		},
	}
}

// Extract processes a multipart form upload containing the order document
// and optional vendor/customer hints, returning normalized line items.
// No storage or inference call is attempted when the file is missing.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.logger.Info(
		"document received",
		"filename", header.Filename,
		"content_type", contentType,
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	cmd := ExtractCommand{
		Data:         data,
		Filename:     header.Filename,
		ContentType:  contentType,
		VendorHint:   r.FormValue("vendorName"),
		CustomerHint: r.FormValue("customerName"),
	}

	result, err := h.sys.Extract(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ExtractResponse{
		Success:       true,
		Data:          result.Items,
		SourceFileURL: result.SourceFileURL,
	})
}

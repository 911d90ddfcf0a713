// Package textfetch provides a standalone text-retrieval endpoint: fetch a
// remote file by URL and return its raw extracted text. It shares no state
// with the extraction pipeline.
package textfetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/orderlens/orderlens/pkg/extract"
	"github.com/orderlens/orderlens/pkg/handlers"
	"github.com/orderlens/orderlens/pkg/routes"
)

const maxFetchBytes = 50 * 1024 * 1024

var (
	ErrMissingURL       = errors.New("fileUrl is required")
	ErrUnsupportedMedia = errors.New("file is not a text-bearing document")
)

// Handler serves the text-retrieval endpoint.
type Handler struct {
	http   *http.Client
	logger *slog.Logger
}

// FetchRequest is the inbound JSON body.
type FetchRequest struct {
	FileURL string `json:"fileUrl"`
}

// FetchResponse is the outbound JSON body.
type FetchResponse struct {
	Text string `json:"text"`
}

// NewHandler creates a Handler with its own HTTP client for remote fetches.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		http:   &http.Client{Timeout: 2 * time.Minute},
		logger: logger.With("handler", "text"),
	}
}

// Routes returns the route group definition for the text endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/text",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Fetch},
		},
	}
}

// Fetch downloads the remote file and returns its raw text. Only
// text-bearing media types are supported; there is no line-item
// structuring on this path.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileURL == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingURL)
		return
	}

	data, mediaType, err := h.fetch(r, req.FileURL)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if !extract.IsTextBearing(mediaType) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrUnsupportedMedia)
		return
	}

	result, err := extract.Text(data, mediaType, 0)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.logger.Info(
		"text retrieved",
		"url", req.FileURL,
		"media_type", mediaType,
		"pages", result.Pages,
		"text_len", len(result.Text),
	)

	handlers.RespondJSON(w, http.StatusOK, FetchResponse{Text: result.Text})
}

func (h *Handler) fetch(r *http.Request, fileURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, "", fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}

	return data, mediaType(resp, fileURL), nil
}

// mediaType prefers the response Content-Type header, falling back to the
// URL's file extension.
func mediaType(resp *http.Response, fileURL string) string {
	if ct := resp.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if u, err := url.Parse(fileURL); err == nil {
		if mt := mime.TypeByExtension(path.Ext(u.Path)); mt != "" {
			return mt
		}
	}
	return "application/octet-stream"
}

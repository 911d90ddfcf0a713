package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/orderlens/orderlens/pkg/handlers"
	"github.com/orderlens/orderlens/pkg/routes"
	"github.com/orderlens/orderlens/pkg/storage"
)

// filesHandler streams stored originals back to the caller so that
// source file locators resolve even without a public container.
type filesHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newFilesHandler(store storage.System, logger *slog.Logger) *filesHandler {
	return &filesHandler{
		store:  store,
		logger: logger.With("handler", "files"),
	}
}

func (h *filesHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/files",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

func (h *filesHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	result, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	}
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, result.Body)
}

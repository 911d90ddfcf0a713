package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orderlens/orderlens/pkg/lifecycle"
	"github.com/orderlens/orderlens/pkg/storage"
)

type fakeStore struct {
	blobs map[string]string
}

func (fs *fakeStore) Start(lc *lifecycle.Coordinator) error { return nil }

func (fs *fakeStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	return nil
}

func (fs *fakeStore) Download(ctx context.Context, key string) (*storage.DownloadResult, error) {
	body, ok := fs.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.DownloadResult{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentType:   "application/pdf",
		ContentLength: int64(len(body)),
	}, nil
}

func (fs *fakeStore) URL(key string) string {
	return "https://storage.example.com/orders/" + key
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func filesMux(store storage.System) *http.ServeMux {
	mux := http.NewServeMux()
	group := newFilesHandler(store, testLogger()).routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}
	return mux
}

func TestFilesDownload(t *testing.T) {
	store := &fakeStore{blobs: map[string]string{
		"abc-123/order.pdf": "%PDF-1.4 content",
	}}
	mux := filesMux(store)

	req := httptest.NewRequest(http.MethodGet, "/files/abc-123/order.pdf", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "%PDF-1.4 content" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cl := rec.Header().Get("Content-Length"); cl != "16" {
		t.Errorf("Content-Length = %q", cl)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `"order.pdf"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestFilesDownloadNotFound(t *testing.T) {
	mux := filesMux(&fakeStore{blobs: map[string]string{}})

	req := httptest.NewRequest(http.MethodGet, "/files/missing/file.pdf", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

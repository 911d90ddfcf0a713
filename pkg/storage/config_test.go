package storage_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/orderlens/orderlens/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// the well-known Azurite development credentials
const devConnectionString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := &storage.Config{ConnectionString: devConnectionString}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.ContainerName != "orders" {
		t.Errorf("ContainerName = %q, want orders", cfg.ContainerName)
	}
}

func TestConfigFinalizeRequiresConnectionString(t *testing.T) {
	cfg := &storage.Config{}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected validation error for missing connection string")
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_STORAGE_CONTAINER", "invoices")
	t.Setenv("TEST_STORAGE_CONNECTION", devConnectionString)

	cfg := &storage.Config{}
	err := cfg.Finalize(&storage.Env{
		ContainerName:    "TEST_STORAGE_CONTAINER",
		ConnectionString: "TEST_STORAGE_CONNECTION",
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ContainerName != "invoices" {
		t.Errorf("ContainerName = %q, want invoices", cfg.ContainerName)
	}
	if cfg.ConnectionString != devConnectionString {
		t.Errorf("ConnectionString = %q", cfg.ConnectionString)
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "orders",
		ConnectionString: "base",
	}

	cfg.Merge(&storage.Config{PublicEndpoint: "https://cdn.example.com"})

	if cfg.PublicEndpoint != "https://cdn.example.com" {
		t.Errorf("PublicEndpoint = %q", cfg.PublicEndpoint)
	}
	if cfg.ContainerName != "orders" || cfg.ConnectionString != "base" {
		t.Errorf("merge overwrote unset fields: %+v", cfg)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"empty key", storage.ErrEmptyKey, http.StatusBadRequest},
		{"invalid key", storage.ErrInvalidKey, http.StatusBadRequest},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestURLUsesPublicEndpoint(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "orders",
		ConnectionString: devConnectionString,
		PublicEndpoint:   "https://cdn.example.com/",
	}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := sys.URL("abc/order.pdf")
	want := "https://cdn.example.com/orders/abc/order.pdf"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

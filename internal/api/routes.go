package api

import (
	"net/http"

	"github.com/orderlens/orderlens/internal/config"
	"github.com/orderlens/orderlens/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Extraction.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Text.Routes(),
		domain.files.routes(),
	)
}

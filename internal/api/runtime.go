package api

import (
	"github.com/orderlens/orderlens/internal/config"
	"github.com/orderlens/orderlens/internal/infrastructure"
)

// Runtime extends Infrastructure with a module-scoped logger.
type Runtime struct {
	*infrastructure.Infrastructure
}

// NewRuntime creates an API runtime from the shared infrastructure.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
			Inference: infra.Inference,
		},
	}
}

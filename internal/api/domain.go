package api

import (
	"github.com/orderlens/orderlens/internal/extraction"
	"github.com/orderlens/orderlens/internal/textfetch"
)

// Domain holds the domain systems and handlers that comprise the API.
type Domain struct {
	Extraction extraction.System
	Text       *textfetch.Handler
	files      *filesHandler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	extractionSystem := extraction.New(
		runtime.Storage,
		runtime.Inference,
		runtime.Logger,
	)

	return &Domain{
		Extraction: extractionSystem,
		Text:       textfetch.NewHandler(runtime.Logger),
		files:      newFilesHandler(runtime.Storage, runtime.Logger),
	}
}

package app

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"nearby/internal/capability/sim"
	"nearby/internal/directory"
	"nearby/internal/logging"
	"nearby/internal/services/session"
)

// Wire bundles the logger, clients and services for the CLI.
type Wire struct {
	Log         zerolog.Logger
	Capability  *sim.Capability
	Directory   *directory.Client
	Coordinator *session.Coordinator
	HTTP        *http.Client
}

// NewWire constructs the dependency graph from cfg. Logs go to logOut.
func NewWire(cfg Config, logOut io.Writer) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.New("nearby", cfg.Log, logOut)

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	capability := sim.New(cfg.Simulator, logging.Component(log, "sim"))

	dc := directory.NewHTTP(cfg.DirectoryURL, httpClient, logging.Component(log, "directory"))
	dc.Validate = capability.ValidateToken

	coord := session.New(capability, dc, logging.Component(log, "coordinator"))

	return &Wire{
		Log:         log,
		Capability:  capability,
		Directory:   dc,
		Coordinator: coord,
		HTTP:        httpClient,
	}, nil
}

package handlers

import (
	"net/http"
	"time"

	"cardrender/internal/pkg/logger"
	"cardrender/internal/ports"
	"cardrender/internal/render"
	"cardrender/internal/renderer"
	"cardrender/internal/videostore"
)

type Deps struct {
	Videos   *videostore.Store
	Sessions *render.Manager
	SP       ports.StorageProvider
	KV       ports.KVStore
	CLI      *renderer.CLI
	Log      *logger.Logger

	// AllowedDomains are the trusted hosts for the download proxy.
	AllowedDomains []string
}

type Handler struct {
	videos   *videostore.Store
	sessions *render.Manager
	sp       ports.StorageProvider
	kv       ports.KVStore
	cli      *renderer.CLI
	log      *logger.Logger

	allowedDomains []string
	downloadClient *http.Client
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		videos:         d.Videos,
		sessions:       d.Sessions,
		sp:             d.SP,
		kv:             d.KV,
		cli:            d.CLI,
		log:            log.WithComponent("httpapi"),
		allowedDomains: d.AllowedDomains,
		downloadClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

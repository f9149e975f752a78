package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cardrender/internal/httpapi/handlers"
	"cardrender/internal/httpkit"
	"cardrender/internal/pkg/logger"
	"cardrender/internal/pkg/middleware"
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

	AllowedDomains []string
	CORSOrigins    []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.Log))
	r.Use(middleware.Recovery(d.Log))

	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAgeSeconds:    600,
	}))

	h := handlers.New(handlers.Deps{
		Videos:         d.Videos,
		Sessions:       d.Sessions,
		SP:             d.SP,
		KV:             d.KV,
		CLI:            d.CLI,
		Log:            d.Log,
		AllowedDomains: d.AllowedDomains,
	})

	// ---- HEALTH ----
	r.Get("/health", h.Health)

	// ---- RENDERS (remote, asynchronous) ----
	r.Post("/renders", h.PostRender)
	r.Get("/renders/{renderId}", h.GetRender)
	r.Delete("/renders/{renderId}", h.DeleteRender)

	// ---- LOCAL RENDERS (CLI, synchronous) ----
	r.Post("/local-renders", h.PostLocalRender)

	// ---- VIDEOS ----
	r.Get("/videos/{videoId}", h.GetVideo)
	r.Get("/videos/{videoId}/content", h.StreamVideo)
	r.Delete("/videos/{videoId}", h.DeleteVideo)

	// ---- DOWNLOAD PROXY ----
	r.Get("/download-video", h.DownloadVideo)

	return r
}

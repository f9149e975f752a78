package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"cardrender/internal/config"
	"cardrender/internal/httpapi"
	"cardrender/internal/kvstore"
	"cardrender/internal/pkg/logger"
	"cardrender/internal/pkg/shutdown"
	"cardrender/internal/render"
	"cardrender/internal/renderer"
	"cardrender/internal/renderservice"
	"cardrender/internal/storage"
	"cardrender/internal/videostore"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:       config.Env("LOG_LEVEL", "info"),
		Format:      config.Env("LOG_FORMAT", "json"),
		ServiceName: "cardrender-api",
		AddSource:   config.Env("LOG_SOURCE", "false") == "true",
	})

	log.Info("starting cardrender API",
		"version", "0.1.0",
	)

	cfg := config.Load()
	ctx := context.Background()

	// Initialize shutdown manager
	shutdownMgr := shutdown.NewManager(log, 30*time.Second)

	// Initialize KV provider for the video metadata cache
	log.Info("initializing kv provider")
	kv, err := kvstore.NewProvider(ctx)
	if err != nil {
		log.LogFatal("failed to initialize kv provider", err)
	}
	if closer, ok := kv.(io.Closer); ok {
		shutdownMgr.Register("kv", func(ctx context.Context) error {
			return closer.Close()
		})
	}
	log.Info("kv provider initialized", "provider", kv.Provider())

	// Initialize storage provider for rendered artifacts
	log.Info("initializing storage provider")
	sp, err := storage.NewProvider()
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err)
	}
	log.Info("storage provider initialized", "provider", sp.Provider())

	// Video metadata cache
	videos := videostore.New(videostore.Config{
		KV:         kv,
		Log:        log,
		MaxEntries: cfg.VideoCacheMax,
	})

	// Remote render service client drives orchestrator sessions
	rsc := renderservice.NewClient(cfg.RenderServiceBaseURL)
	sessions := render.NewManager(func() *render.Orchestrator {
		return render.New(render.Config{
			Submitter:    rsc,
			Poller:       rsc,
			Videos:       videos,
			Log:          log,
			PollInterval: cfg.PollInterval,
		})
	}, 0)

	// Local CLI renderer
	cli := renderer.NewCLI(renderer.Config{
		Bin:      cfg.RenderCLIBin,
		BaseArgs: cfg.RenderCLIBaseArgs,
		Entry:    cfg.RenderCLIEntry,
		Timeout:  cfg.RenderCLITimeout,
		Log:      log,
	})

	// Retention sweeper
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepCron, func() {
		removed := videos.SweepOlderThan(context.Background(), cfg.VideoRetentionDays)
		log.Info("video cache sweep complete",
			"removed", removed,
			"retention_days", cfg.VideoRetentionDays,
		)
	}); err != nil {
		log.LogFatal("invalid sweep cron expression", err)
	}
	sweeper.Start()
	shutdownMgr.Register("sweeper", func(ctx context.Context) error {
		sweeper.Stop()
		return nil
	})

	// Create HTTP router
	router := httpapi.NewRouter(httpapi.Deps{
		Videos:         videos,
		Sessions:       sessions,
		SP:             sp,
		KV:             kv,
		CLI:            cli,
		Log:            log,
		AllowedDomains: cfg.DownloadAllowedDomains,
		CORSOrigins:    cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Register server shutdown
	shutdownMgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening",
			"addr", server.Addr,
			"port", cfg.HTTPPort,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogFatal("HTTP server failed", err)
		}
	}()

	// Wait for shutdown signal
	shutdownMgr.Wait()
}

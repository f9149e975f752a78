// Package config loads service configuration from the environment, with
// optional .env file support for local development.
//
// Environment variables:
//   - HTTP_PORT: API listen port (default 8080)
//   - RENDER_SERVICE_BASEURL: base URL of the remote render service (required
//     for remote renders)
//   - POLL_INTERVAL_MS: wait between progress polls (default 1000)
//   - VIDEO_CACHE_MAX: cap on stored video entries (default 50)
//   - VIDEO_RETENTION_DAYS: sweep horizon in days (default 7)
//   - SWEEP_CRON: cron expression for the metadata sweep (default daily at 03:00)
//   - DOWNLOAD_ALLOWED_DOMAINS: CSV of trusted download domains
//     (default "amazonaws.com,s3.")
//   - CORS_ALLOWED_ORIGINS: CSV of allowed origins
//   - RENDER_CLI_BIN / RENDER_CLI_BASE_ARGS / RENDER_CLI_ENTRY /
//     RENDER_CLI_TIMEOUT: local render CLI invocation
//   - KV_PROVIDER, STORAGE_PROVIDER and their per-provider settings are read
//     by the kvstore and storage factories.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	RenderServiceBaseURL string
	PollInterval         time.Duration

	VideoCacheMax      int
	VideoRetentionDays int
	SweepCron          string

	DownloadAllowedDomains []string
	CORSAllowedOrigins     []string

	RenderCLIBin      string
	RenderCLIBaseArgs []string
	RenderCLIEntry    string
	RenderCLITimeout  time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort: Env("HTTP_PORT", "8080"),

		RenderServiceBaseURL: Env("RENDER_SERVICE_BASEURL", ""),
		PollInterval:         time.Duration(IntEnv("POLL_INTERVAL_MS", 1000)) * time.Millisecond,

		VideoCacheMax:      IntEnv("VIDEO_CACHE_MAX", 50),
		VideoRetentionDays: IntEnv("VIDEO_RETENTION_DAYS", 7),
		SweepCron:          Env("SWEEP_CRON", "0 3 * * *"),

		DownloadAllowedDomains: CSVEnv("DOWNLOAD_ALLOWED_DOMAINS", []string{"amazonaws.com", "s3."}),
		CORSAllowedOrigins: CSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RenderCLIBin:      Env("RENDER_CLI_BIN", "npx"),
		RenderCLIBaseArgs: CSVEnv("RENDER_CLI_BASE_ARGS", []string{"remotion", "render"}),
		RenderCLIEntry:    Env("RENDER_CLI_ENTRY", "src/remotion/index.ts"),
		RenderCLITimeout:  time.Duration(IntEnv("RENDER_CLI_TIMEOUT_SECONDS", 600)) * time.Second,
	}
}

// Env reads an env var with a default.
func Env(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

// MustEnv reads a required env var or panics.
func MustEnv(k string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}

// IntEnv reads an env var as int. Empty or invalid values return def.
func IntEnv(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// CSVEnv reads an env var as a comma-separated list, trimming blanks.
func CSVEnv(k string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(k))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

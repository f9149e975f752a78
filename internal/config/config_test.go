package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 50, cfg.VideoCacheMax)
	assert.Equal(t, 7, cfg.VideoRetentionDays)
	assert.Equal(t, []string{"amazonaws.com", "s3."}, cfg.DownloadAllowedDomains)
	assert.Equal(t, "npx", cfg.RenderCLIBin)
	assert.Equal(t, 10*time.Minute, cfg.RenderCLITimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POLL_INTERVAL_MS", "250")
	t.Setenv("VIDEO_CACHE_MAX", "10")
	t.Setenv("DOWNLOAD_ALLOWED_DOMAINS", "cdn.example.com, media.example.org ,")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 10, cfg.VideoCacheMax)
	assert.Equal(t, []string{"cdn.example.com", "media.example.org"}, cfg.DownloadAllowedDomains)
}

func TestIntEnvInvalid(t *testing.T) {
	t.Setenv("VIDEO_CACHE_MAX", "not-a-number")
	assert.Equal(t, 50, Load().VideoCacheMax)
}

func TestCSVEnvEmptyFallsBack(t *testing.T) {
	t.Setenv("DOWNLOAD_ALLOWED_DOMAINS", " , ,")
	assert.Equal(t, []string{"amazonaws.com", "s3."}, Load().DownloadAllowedDomains)
}

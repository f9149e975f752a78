package handlers

import (
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"cardrender/internal/httpkit"
)

// DownloadVideo proxies a remote media file back with attachment
// disposition so the browser saves it instead of playing it. Only hosts
// on the trusted storage domain list are fetched; everything else is
// rejected before any outbound request is made.
func (h *Handler) DownloadVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log.FromContext(ctx)

	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "url query parameter is required", map[string]any{"field": "url"})
		return
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "url must be an absolute http(s) URL", map[string]any{"url": raw})
		return
	}

	if !hostAllowed(u.Hostname(), h.allowedDomains) {
		log.Warn("download rejected for untrusted host", "host", u.Hostname())
		httpkit.WriteErr(w, 400, "UNTRUSTED_DOMAIN", "url host is not a trusted storage domain", map[string]any{"host": u.Hostname()})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid url", map[string]any{"url": raw})
		return
	}

	resp, err := h.downloadClient.Do(req)
	if err != nil {
		log.Warn("download fetch failed", "host", u.Hostname(), "error", err.Error())
		httpkit.WriteErr(w, 502, "UPSTREAM_ERROR", "failed to fetch video", nil)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpkit.WriteErr(w, 502, "UPSTREAM_ERROR", "upstream returned an error", map[string]any{"status": resp.StatusCode})
		return
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "video/mp4"
	}
	w.Header().Set("Content-Type", ct)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename(u)+`"`)
	_, _ = io.Copy(w, resp.Body)
}

// hostAllowed matches host against the trusted domain patterns. A
// pattern ending in "." matches as a host prefix ("s3." covers
// s3.eu-west-1.amazonaws.com); any other pattern matches the host
// exactly or as a parent domain ("amazonaws.com" covers
// bucket.s3.amazonaws.com but not evilamazonaws.com).
func hostAllowed(host string, patterns []string) bool {
	host = strings.ToLower(host)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, ".") {
			if strings.HasPrefix(host, p) {
				return true
			}
			continue
		}
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}

func downloadFilename(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "video.mp4"
	}
	return name
}

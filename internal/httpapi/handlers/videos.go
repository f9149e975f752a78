package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cardrender/internal/httpkit"
)

// GetVideo returns the cached metadata entry for a video.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID := chi.URLParam(r, "videoId")

	entry, ok := h.videos.Get(ctx, videoID)
	if !ok {
		httpkit.WriteErr(w, 404, "VIDEO_NOT_FOUND", "video not found", map[string]any{"video_id": videoID})
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{
		"video": map[string]any{
			"id":         videoID,
			"url":        entry.URL,
			"size":       entry.Size,
			"title":      entry.Title,
			"created_at": entry.CreatedAt,
		},
	})
}

// DeleteVideo drops the cache entry and, for locally stored artifacts,
// the artifact itself. Absent IDs still return 204.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID := chi.URLParam(r, "videoId")
	log := h.log.WithVideoID(videoID)

	entry, ok := h.videos.Get(ctx, videoID)
	if ok && entry.ObjectKey != "" {
		if err := h.sp.DeleteObject(ctx, entry.ObjectKey); err != nil {
			log.Warn("artifact delete failed", "object_key", entry.ObjectKey, "error", err.Error())
		}
	}

	h.videos.Remove(ctx, videoID)
	w.WriteHeader(http.StatusNoContent)
}

// StreamVideo serves the stored artifact for locally rendered videos.
// Remote renders carry a playable URL and no object key, so there is
// nothing to stream for them.
func (h *Handler) StreamVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID := chi.URLParam(r, "videoId")

	entry, ok := h.videos.Get(ctx, videoID)
	if !ok {
		httpkit.WriteErr(w, 404, "VIDEO_NOT_FOUND", "video not found", map[string]any{"video_id": videoID})
		return
	}
	if entry.ObjectKey == "" {
		httpkit.WriteErr(w, 404, "VIDEO_FILE_MISSING", "video has no stored artifact", map[string]any{"video_id": videoID})
		return
	}

	rc, ct, size, err := h.sp.GetObject(ctx, entry.ObjectKey)
	if err != nil {
		httpkit.WriteErr(w, 404, "VIDEO_FILE_MISSING", "video file missing", map[string]any{"object_key": entry.ObjectKey})
		return
	}
	defer rc.Close()

	if ct == "" {
		ct = "video/mp4"
	}
	w.Header().Set("Content-Type", ct)
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+videoID+`.mp4"`)
	_, _ = io.Copy(w, rc)
}

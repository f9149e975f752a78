package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cardrender/internal/httpkit"
	"cardrender/internal/pkg/ids"
	"cardrender/internal/ports"
	"cardrender/internal/render"
	"cardrender/internal/videostore"
)

// PostLocalRender renders the composition with the local CLI renderer,
// stores the artifact, and caches its metadata. Unlike POST /renders this
// is synchronous: the response carries the finished video.
func (h *Handler) PostLocalRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log.FromContext(ctx)

	var req StartRenderRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	compositionID := req.CompositionID
	if compositionID == "" {
		compositionID = render.DefaultCompositionID
	}
	if err := req.Props.Validate(); err != nil {
		httpkit.WriteDomainErr(w, err)
		return
	}

	videoID := ids.NewVideoID()
	log = log.WithVideoID(videoID)

	tmpDir, err := os.MkdirTemp("", "cardrender-out-*")
	if err != nil {
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "could not create work dir", nil)
		return
	}
	defer os.RemoveAll(tmpDir)
	outputPath := filepath.Join(tmpDir, "video.mp4")

	started := time.Now()
	if err := h.cli.Render(ctx, compositionID, req.Props.Map(), outputPath); err != nil {
		log.LogError(ctx, "local render failed", err, "composition_id", compositionID)
		httpkit.WriteErr(w, 500, "RENDER_FAILED", "local render failed", nil)
		return
	}

	f, err := os.Open(outputPath)
	if err != nil {
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "render produced no output", nil)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "render produced no output", nil)
		return
	}

	out, err := h.sp.PutObject(ctx, putObjectInput(videoID, f, info.Size()))
	if err != nil {
		log.LogError(ctx, "artifact upload failed", err)
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "artifact upload failed", nil)
		return
	}

	contentURL := "/videos/" + videoID + "/content"
	h.videos.Put(ctx, videoID, videostore.Entry{
		URL:       contentURL,
		Size:      out.Size,
		Title:     req.Props.Title(),
		ObjectKey: out.ObjectKey,
	})

	log.Info("local render complete",
		"composition_id", compositionID,
		"size_bytes", out.Size,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	httpkit.WriteJSON(w, 201, map[string]any{
		"video": map[string]any{
			"id":    videoID,
			"url":   contentURL,
			"size":  out.Size,
			"title": req.Props.Title(),
		},
	})
}

func putObjectInput(videoID string, f *os.File, size int64) ports.PutObjectInput {
	return ports.PutObjectInput{
		ObjectKey:   "renders/" + videoID + "/video.mp4",
		ContentType: "video/mp4",
		Reader:      f,
		Size:        size,
	}
}

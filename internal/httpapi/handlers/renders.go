package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cardrender/internal/httpkit"
	"cardrender/internal/pkg/errors"
	"cardrender/internal/render"
)

type StartRenderRequest struct {
	CompositionID string           `json:"composition_id,omitempty"`
	Props         render.CardProps `json:"props"`
}

// PostRender creates a render session and starts the remote render.
// The response is 202: progress is read back through GET /renders/{id}.
func (h *Handler) PostRender(w http.ResponseWriter, r *http.Request) {
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

	id, o, err := h.sessions.Create()
	if err != nil {
		httpkit.WriteDomainErr(w, err)
		return
	}

	// The poll loop must outlive this request; keep the context values
	// for logging but detach from the request's cancellation.
	if err := o.Start(context.WithoutCancel(ctx), compositionID, req.Props); err != nil {
		h.sessions.Remove(id)
		httpkit.WriteDomainErr(w, err)
		return
	}

	log.Info("render session started", "session_id", id, "composition_id", compositionID)
	httpkit.WriteJSON(w, 202, map[string]any{
		"render": map[string]any{
			"id":     id,
			"status": statusJSON(o.Status()),
		},
	})
}

// GetRender reports the session status as a discriminated JSON object.
func (h *Handler) GetRender(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "renderId")

	o, ok := h.sessions.Get(sessionID)
	if !ok {
		httpkit.WriteErr(w, 404, "RENDER_NOT_FOUND", "render session not found", map[string]any{"render_session_id": sessionID})
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{
		"render": map[string]any{
			"id":     sessionID,
			"status": statusJSON(o.Status()),
		},
	})
}

// DeleteRender cancels the session's polling loop and forgets it.
func (h *Handler) DeleteRender(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "renderId")
	h.sessions.Remove(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// statusJSON maps the status union onto its wire shape. Each variant
// carries only its own fields under a "type" discriminant.
func statusJSON(s render.Status) map[string]any {
	switch v := s.(type) {
	case render.Init:
		return map[string]any{"type": "init"}
	case render.Invoking:
		return map[string]any{"type": "invoking"}
	case render.Rendering:
		return map[string]any{
			"type":        "rendering",
			"render_id":   v.RenderID,
			"bucket_name": v.BucketName,
			"progress":    v.Progress,
		}
	case render.Failed:
		out := map[string]any{
			"type":    "error",
			"message": errorMessage(v.Err),
		}
		if v.RenderID != "" {
			out["render_id"] = v.RenderID
		}
		return out
	case render.Done:
		return map[string]any{
			"type":     "done",
			"url":      v.URL,
			"size":     v.Size,
			"video_id": v.VideoID,
		}
	default:
		return map[string]any{"type": "init"}
	}
}

func errorMessage(err error) string {
	if err == nil {
		return "render failed"
	}
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Package v1 holds the wire contract for the remote render service.
// The client posts a composition plus card props, gets back a job handle,
// then polls with that handle until the job reports done or error.
package v1

// SubmitRequest starts a render job.
type SubmitRequest struct {
	CompositionID string            `json:"composition_id"`
	Props         map[string]string `json:"props"`
}

// SubmitResponse is the job handle for progress polling.
type SubmitResponse struct {
	RenderID   string `json:"render_id"`
	BucketName string `json:"bucket_name"`
}

// ProgressRequest asks for the current state of a job.
type ProgressRequest struct {
	RenderID   string `json:"render_id"`
	BucketName string `json:"bucket_name"`
}

// Progress outcome kinds.
const (
	KindProgress = "progress"
	KindDone     = "done"
	KindError    = "error"
)

// ProgressResponse is one of three shapes, discriminated by Type:
// progress carries Progress, done carries URL and Size, error carries
// Message.
type ProgressResponse struct {
	Type     string  `json:"type"`
	Progress float64 `json:"progress,omitempty"`
	URL      string  `json:"url,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Message  string  `json:"message,omitempty"`
}

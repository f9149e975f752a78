package render

import "context"

// JobHandle identifies a submitted render job on the external service.
type JobHandle struct {
	RenderID   string
	BucketName string
}

// Submitter starts a render job on the external render service.
type Submitter interface {
	Submit(ctx context.Context, compositionID string, props CardProps) (JobHandle, error)
}

// PollKind discriminates PollResult.
type PollKind int

const (
	PollProgress PollKind = iota
	PollDone
	PollError
)

// PollResult is one progress observation: progress carries Progress,
// done carries URL and Size, error carries Message.
type PollResult struct {
	Kind     PollKind
	Progress float64
	URL      string
	Size     int64
	Message  string
}

// Poller reports the state of a submitted job.
type Poller interface {
	Poll(ctx context.Context, renderID, bucketName string) (PollResult, error)
}

package render

// Status is the single value the UI renders a job from. It is a sealed
// union: exactly one variant is active, and each variant carries only its
// own fields, so there are no stale cross-state reads.
type Status interface {
	isStatus()
}

// Init means no render has been attempted.
type Init struct{}

// Invoking means the submission request is in flight, no job handle yet.
type Invoking struct{}

// Rendering means a job handle exists and the job is in progress.
type Rendering struct {
	RenderID   string
	BucketName string
	// Progress is the completed fraction in [0,1].
	Progress float64
}

// Failed is terminal. RenderID is empty when submission never produced
// a handle.
type Failed struct {
	RenderID string
	Err      error
}

// Done is terminal: the artifact is playable at URL and its metadata is
// cached under VideoID.
type Done struct {
	URL     string
	Size    int64
	VideoID string
}

func (Init) isStatus()      {}
func (Invoking) isStatus()  {}
func (Rendering) isStatus() {}
func (Failed) isStatus()    {}
func (Done) isStatus()      {}

// Terminal reports whether no further polling will occur for s.
func Terminal(s Status) bool {
	switch s.(type) {
	case Failed, Done:
		return true
	default:
		return false
	}
}

// Active reports whether a render is currently being driven: submission
// in flight or polling underway.
func Active(s Status) bool {
	switch s.(type) {
	case Invoking, Rendering:
		return true
	default:
		return false
	}
}

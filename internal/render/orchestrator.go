package render

import (
	"context"
	"sync"
	"time"

	"cardrender/internal/pkg/errors"
	"cardrender/internal/pkg/ids"
	"cardrender/internal/pkg/logger"
	"cardrender/internal/videostore"
)

// DefaultPollInterval is the fixed wait between progress polls.
const DefaultPollInterval = time.Second

// Config holds orchestrator dependencies.
type Config struct {
	Submitter Submitter
	Poller    Poller
	Videos    *videostore.Store
	Log       *logger.Logger
	// PollInterval overrides the fixed wait between polls (tests).
	PollInterval time.Duration
	// NewVideoID overrides video ID generation (tests).
	NewVideoID func() string
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Orchestrator drives one render job at a time from submission through
// progress polling to a terminal status, and records finished videos in
// the metadata store.
//
// The poll loop runs on its own goroutine; status writes are gated by a
// generation counter so a loop outlived by Reset can never clobber a
// newer status.
type Orchestrator struct {
	submitter Submitter
	poller    Poller
	videos    *videostore.Store
	log       *logger.Logger
	interval  time.Duration

	newVideoID func() string
	now        func() time.Time

	mu     sync.Mutex
	status Status
	gen    uint64
	cancel context.CancelFunc
}

func New(cfg Config) *Orchestrator {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	newVideoID := cfg.NewVideoID
	if newVideoID == nil {
		newVideoID = ids.NewVideoID
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Orchestrator{
		submitter:  cfg.Submitter,
		poller:     cfg.Poller,
		videos:     cfg.Videos,
		log:        log.WithComponent("orchestrator"),
		interval:   interval,
		newVideoID: newVideoID,
		now:        now,
		status:     Init{},
	}
}

// Status returns the current status snapshot.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Start validates props, transitions init -> invoking, and launches the
// submission plus poll loop on a new goroutine. Starting while a render
// is already invoking or rendering is rejected.
func (o *Orchestrator) Start(ctx context.Context, compositionID string, props CardProps) error {
	if err := props.Validate(); err != nil {
		return err
	}
	if compositionID == "" {
		compositionID = DefaultCompositionID
	}

	o.mu.Lock()
	if Active(o.status) {
		o.mu.Unlock()
		return errors.Conflict("a render is already in progress")
	}

	o.gen++
	gen := o.gen
	o.status = Invoking{}

	loopCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.mu.Unlock()

	go o.run(loopCtx, gen, compositionID, props)
	return nil
}

// Reset cancels any in-flight poll loop and returns the status to init.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.gen++
	o.status = Init{}
}

func (o *Orchestrator) run(ctx context.Context, gen uint64, compositionID string, props CardProps) {
	log := o.log.FromContext(ctx)

	handle, err := o.submitter.Submit(ctx, compositionID, props)
	if err != nil {
		log.Warn("render submission failed", "error", err.Error())
		o.setStatus(gen, Failed{Err: errors.Wrap(err, "render.submit", "submission failed")})
		return
	}

	log = log.WithRenderID(handle.RenderID)
	log.Info("render submitted", "bucket", handle.BucketName)
	o.setStatus(gen, Rendering{RenderID: handle.RenderID, BucketName: handle.BucketName, Progress: 0})

	for {
		result, err := o.poller.Poll(ctx, handle.RenderID, handle.BucketName)
		if err != nil {
			log.Warn("progress poll failed", "error", err.Error())
			o.setStatus(gen, Failed{
				RenderID: handle.RenderID,
				Err:      errors.Wrap(err, "render.poll", "progress poll failed"),
			})
			return
		}

		switch result.Kind {
		case PollError:
			log.Warn("render reported error", "message", result.Message)
			o.setStatus(gen, Failed{
				RenderID: handle.RenderID,
				Err:      errors.New(errors.CodeInternal, result.Message),
			})
			return

		case PollDone:
			// A loop superseded by Reset must not write the cache either.
			if !o.currentGen(gen) {
				return
			}
			videoID := o.newVideoID()
			o.videos.Put(ctx, videoID, videostore.Entry{
				URL:       result.URL,
				Size:      result.Size,
				Title:     props.Title(),
				CreatedAt: o.now(),
			})
			log.Info("render done", "video_id", videoID, "size", result.Size)
			o.setStatus(gen, Done{URL: result.URL, Size: result.Size, VideoID: videoID})
			return

		case PollProgress:
			o.setStatus(gen, Rendering{
				RenderID:   handle.RenderID,
				BucketName: handle.BucketName,
				Progress:   result.Progress,
			})

			select {
			case <-ctx.Done():
				return
			case <-time.After(o.interval):
			}
		}
	}
}

// setStatus applies the status only if gen is still the active generation.
func (o *Orchestrator) setStatus(gen uint64, s Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	o.status = s
	if Terminal(s) {
		o.cancel = nil
	}
}

func (o *Orchestrator) currentGen(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return gen == o.gen
}

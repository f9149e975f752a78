// Package ids generates identifiers for videos and render sessions.
package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// New returns an identifier of the form <prefix>_<unix-millis>_<random-hex>.
// The millisecond timestamp keeps IDs roughly sortable by creation time;
// the random suffix makes collisions negligible at this storage scale.
func New(prefix string) string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Degrade to time-only rather than fail ID generation.
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}

// NewVideoID returns an identifier for a shareable video entry.
func NewVideoID() string {
	return New("video")
}

// NewSessionID returns an identifier for a render orchestration session.
func NewSessionID() string {
	return New("rnd")
}

package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalAndActive(t *testing.T) {
	cases := []struct {
		name     string
		status   Status
		terminal bool
		active   bool
	}{
		{"init", Init{}, false, false},
		{"invoking", Invoking{}, false, true},
		{"rendering", Rendering{RenderID: "r1", BucketName: "b1", Progress: 0.5}, false, true},
		{"failed", Failed{Err: errors.New("boom")}, true, false},
		{"done", Done{URL: "https://cdn/v.mp4", Size: 1, VideoID: "video_1"}, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.terminal, Terminal(tc.status))
			assert.Equal(t, tc.active, Active(tc.status))
		})
	}
}

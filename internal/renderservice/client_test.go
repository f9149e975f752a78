package renderservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "cardrender/internal/contracts/renderapi/v1"
	"cardrender/internal/render"
)

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/renders", r.URL.Path)

		var req v1.SubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "IDCard", req.CompositionID)
		assert.Equal(t, "Ana", req.Props["name"])

		json.NewEncoder(w).Encode(v1.SubmitResponse{RenderID: "r1", BucketName: "b1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	handle, err := c.Submit(context.Background(), "IDCard", render.CardProps{
		Name: "Ana", Position: "Engineer", Department: "R&D", EmployeeID: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, render.JobHandle{RenderID: "r1", BucketName: "b1"}, handle)
}

func TestSubmitIncompleteHandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(v1.SubmitResponse{RenderID: "r1"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), "IDCard", render.CardProps{Name: "x"})
	require.ErrorContains(t, err, "incomplete job handle")
}

func TestSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), "IDCard", render.CardProps{Name: "x"})
	require.ErrorContains(t, err, "http 502")
}

func TestPollOutcomes(t *testing.T) {
	tests := []struct {
		name string
		resp v1.ProgressResponse
		want render.PollResult
	}{
		{
			name: "progress",
			resp: v1.ProgressResponse{Type: v1.KindProgress, Progress: 0.5},
			want: render.PollResult{Kind: render.PollProgress, Progress: 0.5},
		},
		{
			name: "done",
			resp: v1.ProgressResponse{Type: v1.KindDone, URL: "https://cdn.example.com/v1.mp4", Size: 123456},
			want: render.PollResult{Kind: render.PollDone, URL: "https://cdn.example.com/v1.mp4", Size: 123456},
		},
		{
			name: "error",
			resp: v1.ProgressResponse{Type: v1.KindError, Message: "render crashed"},
			want: render.PollResult{Kind: render.PollError, Message: "render crashed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/progress", r.URL.Path)

				var req v1.ProgressRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "r1", req.RenderID)
				assert.Equal(t, "b1", req.BucketName)

				json.NewEncoder(w).Encode(tt.resp)
			}))
			defer srv.Close()

			got, err := NewClient(srv.URL).Poll(context.Background(), "r1", "b1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPollUnknownType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(v1.ProgressResponse{Type: "bizarre"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Poll(context.Background(), "r1", "b1")
	require.ErrorContains(t, err, "unknown progress type")
}

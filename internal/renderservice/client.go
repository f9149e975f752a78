// Package renderservice is the HTTP client for the external render
// service. It implements both render.Submitter and render.Poller.
package renderservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	v1 "cardrender/internal/contracts/renderapi/v1"
	"cardrender/internal/render"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Submit(ctx context.Context, compositionID string, props render.CardProps) (render.JobHandle, error) {
	req := v1.SubmitRequest{
		CompositionID: compositionID,
		Props:         props.Map(),
	}

	var resp v1.SubmitResponse
	if err := c.post(ctx, "/renders", req, &resp); err != nil {
		return render.JobHandle{}, err
	}
	if resp.RenderID == "" || resp.BucketName == "" {
		return render.JobHandle{}, fmt.Errorf("render service returned incomplete job handle")
	}
	return render.JobHandle{RenderID: resp.RenderID, BucketName: resp.BucketName}, nil
}

func (c *Client) Poll(ctx context.Context, renderID, bucketName string) (render.PollResult, error) {
	req := v1.ProgressRequest{RenderID: renderID, BucketName: bucketName}

	var resp v1.ProgressResponse
	if err := c.post(ctx, "/progress", req, &resp); err != nil {
		return render.PollResult{}, err
	}

	switch resp.Type {
	case v1.KindProgress:
		return render.PollResult{Kind: render.PollProgress, Progress: resp.Progress}, nil
	case v1.KindDone:
		return render.PollResult{Kind: render.PollDone, URL: resp.URL, Size: resp.Size}, nil
	case v1.KindError:
		return render.PollResult{Kind: render.PollError, Message: resp.Message}, nil
	default:
		return render.PollResult{}, fmt.Errorf("render service returned unknown progress type %q", resp.Type)
	}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("render service http %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

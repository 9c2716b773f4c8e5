package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no origin is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// RequestError is the only error kind propagated from the client: a non-2xx
// response status or a transport failure. Failure bodies are not parsed for
// structured detail.
type RequestError struct {
	Method string
	Path   string
	Status int // 0 when the request never produced a response
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client issues JSON/HTTP requests against the orchestrator service.
// It holds no view state; every call maps one client intent to one HTTP call.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// New returns a client for the given base URL (e.g. http://localhost:8000/api).
// The logger may be nil. No retries and no client-enforced timeout beyond the
// transport default.
func New(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
		log:     log,
	}
}

// ListTemplates fetches the template catalog.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var out []Template
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPosts fetches all posts.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCampaigns fetches all campaigns.
func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	if err := c.do(ctx, http.MethodGet, "/campaigns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePost submits a post draft and returns the generated post preview.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, "/posts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCampaign submits a campaign draft. The returned campaign's posts are
// generated asynchronously server-side.
func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error) {
	var out Campaign
	if err := c.do(ctx, http.MethodPost, "/campaigns", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost deletes the post with the given id. The acknowledgement body is
// discarded after the status check.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
}

// do performs one request. body (if non-nil) is marshaled as JSON; out (if
// non-nil) receives the decoded success response. Every failure comes back as
// a *RequestError and is logged exactly once here.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Method: method, Path: path, Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.Error("request failed", zap.Int("status", resp.StatusCode))
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Error("decode response failed", zap.Error(err))
			return &RequestError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	log.Debug("request ok", zap.Int("status", resp.StatusCode))
	return nil
}

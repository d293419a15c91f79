// Package api talks to the food-delivery backend's REST resources and
// normalizes its response envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Client performs single-attempt GET/POST calls against one base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a Client around an existing http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches a collection and returns the data array of the envelope.
func (c *Client) List(ctx context.Context, path string) ([]Record, error) {
	env, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.hasData() {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, &UnknownError{Path: path, Status: http.StatusOK, Body: string(env.Data)}
	}
	return records, nil
}

// Create posts body to path and returns the created record.
func (c *Client) Create(ctx context.Context, path string, body any) (Record, error) {
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	if !env.hasData() {
		return Record{}, nil
	}
	var rec Record
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		// some endpoints answer with a bare id or a list; keep the call a success
		return Record{"data": string(env.Data)}, nil
	}
	return rec, nil
}

// Post sends a POST with optional query parameters and returns the raw envelope.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, query, body)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{
			Op:      method,
			Path:    path,
			Timeout: isTimeout(err),
			Refused: isRefused(err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method, Path: path, Timeout: isTimeout(err), Err: err}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &UnknownError{Path: path, Status: resp.StatusCode, Body: string(raw)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if env.EC == nil && env.EM == "" {
			return nil, &UnknownError{Path: path, Status: resp.StatusCode, Body: string(raw)}
		}
		return nil, &ValidationError{Path: path, Status: resp.StatusCode, Code: env.Code(), Message: env.EM, Details: env.DT}
	}

	if !env.OK() {
		return nil, &ValidationError{Path: path, Status: resp.StatusCode, Code: env.Code(), Message: env.EM, Details: env.DT}
	}

	return &env, nil
}

// Package client is a thin typed client for the text-to-image API. It covers
// the two operations the browser form used to call directly.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls a running text-to-image API instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Options configures the client. BaseURL is required.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// APIError is the decoded structured error body returned by the service.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("api: %s: %s", e.Code, e.Message)
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("client: base url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// GenerateParams mirrors the /images/generate request body. Zero values take
// the server-side defaults.
type GenerateParams struct {
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	Style          string `json:"style,omitempty"`
	Quality        string `json:"quality,omitempty"`
}

// GenerateResult holds the ordered image references and the prompt.
type GenerateResult struct {
	Images []string `json:"images"`
	Prompt string   `json:"prompt"`
}

func (c *Client) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	var result GenerateResult
	if err := c.post(ctx, "/images/generate", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OverlayParams mirrors the /images/overlay request body. Image may be a URL,
// a base64 string or a data URL; data URL prefixes are handled server-side.
type OverlayParams struct {
	Image             string   `json:"image"`
	Text              string   `json:"text"`
	FontSize          int      `json:"font_size,omitempty"`
	Position          [2]int   `json:"position"`
	Color             *[3]int  `json:"color,omitempty"`
	Opacity           *float64 `json:"opacity,omitempty"`
	Align             string   `json:"align,omitempty"`
	BackgroundColor   [3]int   `json:"background_color"`
	BackgroundOpacity float64  `json:"background_opacity,omitempty"`
	Padding           int      `json:"padding,omitempty"`
	BorderRadius      int      `json:"border_radius,omitempty"`
}

// Overlay captions an image and returns the composited PNG bytes.
func (c *Client) Overlay(ctx context.Context, params OverlayParams) ([]byte, error) {
	var result struct {
		Image string `json:"image"`
	}
	if err := c.post(ctx, "/images/overlay", params, &result); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(result.Image)
	if err != nil {
		return nil, fmt.Errorf("client: decode overlay image: %w", err)
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("client: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = "http_error"
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

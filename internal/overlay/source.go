package overlay

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"texttoimage/internal/domain"
)

// Source identifies the input image by exactly one of its three encodings:
// raw bytes, a fetchable URL or a base64 string (optionally a data URL).
type Source struct {
	Data   []byte
	URL    string
	Base64 string
}

// ParseSource classifies a caller-supplied image string. HTTP(S) references
// become URL sources, everything else is treated as base64 data.
func ParseSource(image string) Source {
	trimmed := strings.TrimSpace(image)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return Source{URL: trimmed}
	}
	return Source{Base64: trimmed}
}

func (c *Compositor) resolveSource(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case len(src.Data) > 0:
		return src.Data, nil
	case src.URL != "":
		return c.fetch(ctx, src.URL)
	case src.Base64 != "":
		return decodeBase64(src.Base64)
	default:
		return nil, domain.Invalid("image source is required")
	}
}

func (c *Compositor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrImageFetch, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: fetch %q timed out: %w", domain.ErrImageFetch, url, err)
		}
		return nil, fmt.Errorf("%w: fetch %q: %w", domain.ErrImageFetch, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetch %q: status %d", domain.ErrImageFetch, url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", domain.ErrImageFetch, url, err)
	}
	return data, nil
}

func decodeBase64(encoded string) ([]byte, error) {
	// Data URLs carry a "data:image/png;base64," prefix the browser side adds.
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(strings.ToLower(encoded), "data:") {
		encoded = encoded[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", domain.ErrImageDecode, err)
	}
	return data, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

package image

import (
	"context"
	"strings"

	"texttoimage/internal/domain"
)

// Enumerations accepted by the generation API. They mirror what the upstream
// provider supports so bad requests are rejected before any network call.
var (
	ValidSizes = []string{"256x256", "512x512", "1024x1024", "1792x1024", "1024x1792"}

	ResponseFormatURL     = "url"
	ResponseFormatB64JSON = "b64_json"
)

const (
	DefaultN              = 1
	DefaultSize           = "1024x1024"
	DefaultResponseFormat = "url"
	DefaultStyle          = "vivid"
	DefaultQuality        = "standard"

	MaxN = 10
)

// GenerateRequest describes a normalized request passed to any image provider.
type GenerateRequest struct {
	Prompt         string
	N              int
	Size           string
	ResponseFormat string
	Style          string
	Quality        string
}

// GenerateResult is the ordered set of image references plus the prompt that
// produced them. References are URLs or base64 strings depending on the
// requested response format.
type GenerateResult struct {
	Images []string
	Prompt string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// Normalize trims the prompt, collapses internal whitespace runs and applies
// defaults for every optional field left empty.
func (r *GenerateRequest) Normalize() {
	r.Prompt = strings.Join(strings.Fields(r.Prompt), " ")
	if r.N == 0 {
		r.N = DefaultN
	}
	if r.Size == "" {
		r.Size = DefaultSize
	}
	if r.ResponseFormat == "" {
		r.ResponseFormat = DefaultResponseFormat
	}
	if r.Style == "" {
		r.Style = DefaultStyle
	}
	if r.Quality == "" {
		r.Quality = DefaultQuality
	}
}

// Validate checks every field against its enumeration. It assumes Normalize
// has already been applied.
func (r GenerateRequest) Validate() error {
	if r.Prompt == "" {
		return domain.Invalid("prompt is required")
	}
	if r.N < 1 || r.N > MaxN {
		return domain.Invalid("n must be between 1 and %d", MaxN)
	}
	if !contains(ValidSizes, r.Size) {
		return domain.Invalid("size must be one of %s", strings.Join(ValidSizes, ", "))
	}
	if r.ResponseFormat != ResponseFormatURL && r.ResponseFormat != ResponseFormatB64JSON {
		return domain.Invalid("response_format must be url or b64_json")
	}
	if r.Style != "vivid" && r.Style != "natural" {
		return domain.Invalid("style must be vivid or natural")
	}
	if r.Quality != "standard" && r.Quality != "hd" {
		return domain.Invalid("quality must be standard or hd")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

package image

import (
	"context"

	"texttoimage/internal/providers/openai"
)

// OpenAIGenerator adapts the raw OpenAI client to the Generator contract.
type OpenAIGenerator struct {
	client *openai.Client
}

func NewOpenAIGenerator(client *openai.Client) *OpenAIGenerator {
	return &OpenAIGenerator{client: client}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	images, err := g.client.GenerateImages(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		N:              req.N,
		Size:           req.Size,
		ResponseFormat: req.ResponseFormat,
		Style:          req.Style,
		Quality:        req.Quality,
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResult{Images: images, Prompt: req.Prompt}, nil
}

var _ Generator = (*OpenAIGenerator)(nil)

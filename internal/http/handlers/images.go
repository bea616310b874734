package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"texttoimage/internal/overlay"
	"texttoimage/internal/providers/image"
)

type imageGenerateRequest struct {
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
	Style          string `json:"style"`
	Quality        string `json:"quality"`
}

type imageGenerateResponse struct {
	Images []string `json:"images"`
	Prompt string   `json:"prompt"`
}

func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	result, err := a.Generator.Generate(r.Context(), image.GenerateRequest{
		Prompt:         req.Prompt,
		N:              req.N,
		Size:           req.Size,
		ResponseFormat: req.ResponseFormat,
		Style:          req.Style,
		Quality:        req.Quality,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, imageGenerateResponse{Images: result.Images, Prompt: result.Prompt})
}

type imageOverlayRequest struct {
	Image             string   `json:"image"`
	Text              string   `json:"text"`
	FontSize          int      `json:"font_size"`
	Position          [2]int   `json:"position"`
	Color             *[3]int  `json:"color"`
	Opacity           *float64 `json:"opacity"`
	Align             string   `json:"align"`
	BackgroundColor   [3]int   `json:"background_color"`
	BackgroundOpacity float64  `json:"background_opacity"`
	Padding           int      `json:"padding"`
	BorderRadius      int      `json:"border_radius"`
	MaxTextWidth      int      `json:"max_text_width"`
}

type imageOverlayResponse struct {
	Image string `json:"image"`
}

// ImagesOverlay draws caption text onto the supplied image and returns the
// result as base64 PNG. The source is always resolved and decoded here, no
// matter which response format the generation call used.
func (a *App) ImagesOverlay(w http.ResponseWriter, r *http.Request) {
	var req imageOverlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.FontSize == 0 {
		req.FontSize = 60
	}
	color := overlay.RGB{255, 255, 255}
	if req.Color != nil {
		color = overlay.RGB(*req.Color)
	}
	opacity := 0.8
	if req.Opacity != nil {
		opacity = *req.Opacity
	}

	result, err := a.Compositor.Render(r.Context(), overlay.Request{
		Source:            overlay.ParseSource(req.Image),
		Text:              req.Text,
		FontSize:          req.FontSize,
		OffsetX:           req.Position[0],
		OffsetY:           req.Position[1],
		Color:             color,
		Opacity:           opacity,
		Align:             req.Align,
		Background:        overlay.RGB(req.BackgroundColor),
		BackgroundOpacity: req.BackgroundOpacity,
		Padding:           req.Padding,
		CornerRadius:      req.BorderRadius,
		MaxTextWidth:      req.MaxTextWidth,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, imageOverlayResponse{Image: base64.StdEncoding.EncodeToString(result)})
}

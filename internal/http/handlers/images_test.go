package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"texttoimage/internal/domain"
	"texttoimage/internal/infra"
	"texttoimage/internal/overlay"
	imageprovider "texttoimage/internal/providers/image"
)

type stubGenerator struct {
	result *imageprovider.GenerateResult
	err    error
	last   imageprovider.GenerateRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req imageprovider.GenerateRequest) (*imageprovider.GenerateResult, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestApp(t *testing.T, gen imageprovider.Generator) *App {
	t.Helper()
	compositor, err := overlay.NewCompositor(overlay.Options{FontBytes: goregular.TTF})
	if err != nil {
		t.Fatalf("new compositor: %v", err)
	}
	logger := infra.NewLogger("test")
	return NewApp(&infra.Config{AppEnv: "test"}, logger, gen, compositor)
}

func testPNGBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{30, 30, 30, 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestImagesGenerateReturnsImagesAndPrompt(t *testing.T) {
	gen := &stubGenerator{result: &imageprovider.GenerateResult{
		Images: []string{"https://cdn.example.com/sunset.png"},
		Prompt: "A sunset over the mountains",
	}}
	app := newTestApp(t, gen)

	rec := postJSON(t, app.ImagesGenerate, "/images/generate", map[string]any{
		"prompt":          "A sunset over the mountains",
		"n":               1,
		"size":            "1024x1024",
		"response_format": "url",
		"style":           "vivid",
		"quality":         "standard",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp imageGenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Images) != 1 || !strings.HasPrefix(resp.Images[0], "https://") {
		t.Fatalf("images = %v", resp.Images)
	}
	if resp.Prompt != "A sunset over the mountains" {
		t.Fatalf("prompt = %q", resp.Prompt)
	}
	if gen.last.Size != "1024x1024" {
		t.Fatalf("generator saw size %q", gen.last.Size)
	}
}

func TestImagesGenerateInvalidParameterIs400(t *testing.T) {
	gen := &stubGenerator{err: domain.Invalid("n must be between 1 and 10")}
	app := newTestApp(t, gen)

	rec := postJSON(t, app.ImagesGenerate, "/images/generate", map[string]any{"prompt": "p", "n": 99})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "invalid_parameter" {
		t.Fatalf("code = %q", body.Code)
	}
}

func TestImagesGenerateSurfacesUpstreamStatus(t *testing.T) {
	gen := &stubGenerator{err: &domain.ProviderError{Status: 429, Message: "Rate limit exceeded"}}
	app := newTestApp(t, gen)

	rec := postJSON(t, app.ImagesGenerate, "/images/generate", map[string]any{"prompt": "p"})
	if rec.Code != 429 {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "provider_error" || body.Detail != "Rate limit exceeded" {
		t.Fatalf("body = %+v", body)
	}
}

func TestImagesGenerateMalformedBodyIs400(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})
	req := httptest.NewRequest(http.MethodPost, "/images/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	app.ImagesGenerate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestImagesOverlayReturnsCompositedImage(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})

	rec := postJSON(t, app.ImagesOverlay, "/images/overlay", map[string]any{
		"image":     testPNGBase64(t, 64, 64),
		"text":      "Hi",
		"font_size": 16,
		"position":  []int{0, 0},
		"color":     []int{255, 255, 255},
		"opacity":   0.8,
		"align":     "center",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp imageOverlayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data, err := base64.StdEncoding.DecodeString(resp.Image)
	if err != nil {
		t.Fatalf("image not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("image not png: %v", err)
	}
}

func TestImagesOverlayCJKWithoutCoverageIsFontUnavailable(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})

	rec := postJSON(t, app.ImagesOverlay, "/images/overlay", map[string]any{
		"image":     testPNGBase64(t, 64, 64),
		"text":      "你好",
		"font_size": 60,
		"position":  []int{0, 0},
		"color":     []int{255, 255, 255},
		"opacity":   0.8,
		"align":     "center",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "font_unavailable" {
		t.Fatalf("code = %q", body.Code)
	}
}

func TestImagesOverlayBadSourceIs400(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})

	rec := postJSON(t, app.ImagesOverlay, "/images/overlay", map[string]any{
		"image": "definitely-not-base64!!!",
		"text":  "Hi",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "image_decode_failed" {
		t.Fatalf("code = %q", body.Code)
	}
}

func TestFailMapsSentinelErrors(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.Invalid("bad"), http.StatusBadRequest, "invalid_parameter"},
		{domain.ErrImageDecode, http.StatusBadRequest, "image_decode_failed"},
		{domain.ErrImageFetch, http.StatusBadGateway, "image_fetch_failed"},
		{domain.ErrFontUnavailable, http.StatusInternalServerError, "font_unavailable"},
		{&domain.ProviderError{Status: 503, Message: "down"}, http.StatusServiceUnavailable, "provider_error"},
		{&domain.ProviderError{Status: 200, Message: "odd"}, http.StatusBadGateway, "provider_error"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		app.fail(rec, req, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body errorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if body.Code != tc.code {
			t.Fatalf("%v: code = %q, want %q", tc.err, body.Code, tc.code)
		}
	}
}

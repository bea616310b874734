// Package overlay composites caption text onto raster images. It is the
// post-processing stage applied to generated images before they are returned
// to the caller.
package overlay

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"texttoimage/internal/domain"
	"texttoimage/internal/infra"
)

// maxSourceBytes bounds how much image data a remote fetch may return.
const maxSourceBytes = 32 << 20

// RGB is a color triple. Channels outside [0, 255] are clamped, never rejected.
type RGB [3]int

// Request describes one overlay operation.
type Request struct {
	Source   Source
	Text     string
	FontSize int

	// OffsetX and OffsetY displace the text block from its anchor. The block
	// is vertically centered on the image and shifted by OffsetY; OffsetX
	// shifts the aligned edge inward (mirrored for right alignment).
	OffsetX int
	OffsetY int

	Color   RGB
	Opacity float64

	// Align is left, center or right. Empty means center.
	Align string

	Background        RGB
	BackgroundOpacity float64
	Padding           int
	CornerRadius      int

	// MaxTextWidth is the wrapping budget in pixels. Zero means the image
	// width minus padding on both sides.
	MaxTextWidth int
}

// Options configures a Compositor.
type Options struct {
	// FontBytes takes precedence over FontPath. With neither set, rendering
	// non-empty text fails with domain.ErrFontUnavailable.
	FontBytes    []byte
	FontPath     string
	HTTPClient   *http.Client
	FetchTimeout time.Duration
	Logger       *infra.Logger
}

// Compositor renders caption overlays. The parsed font is read-only after
// construction, so a single Compositor serves concurrent requests; each call
// rasterizes on its own face and canvas.
type Compositor struct {
	font       *sfnt.Font
	httpClient *http.Client
	logger     *infra.Logger
}

// NewCompositor parses the configured font asset once and prepares the fetch
// client with a bounded timeout.
func NewCompositor(opts Options) (*Compositor, error) {
	fnt, err := loadFont(opts.FontBytes, opts.FontPath)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.FetchTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Compositor{font: fnt, httpClient: httpClient, logger: logger}, nil
}

// Render resolves the source image, draws the caption and returns the result
// as PNG bytes. The input raster is never modified; empty text returns the
// source bytes untouched.
func (c *Compositor) Render(ctx context.Context, req Request) ([]byte, error) {
	src, err := c.resolveSource(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	if req.Text == "" {
		return src, nil
	}
	if req.FontSize <= 0 {
		return nil, domain.Invalid("font_size must be positive")
	}
	if c.font == nil {
		return nil, fmt.Errorf("%w: no font asset configured", domain.ErrFontUnavailable)
	}
	if err := checkCoverage(c.font, req.Text); err != nil {
		return nil, err
	}

	decoded, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageDecode, err)
	}
	bounds := decoded.Bounds()
	imgW, imgH := bounds.Dx(), bounds.Dy()
	if imgW == 0 || imgH == 0 {
		return nil, domain.Invalid("image has zero size")
	}

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(req.FontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build face: %w", domain.ErrFontUnavailable, err)
	}
	defer face.Close()

	padding := req.Padding
	if padding < 0 {
		padding = 0
	}
	if padding*2 >= imgW || padding*2 >= imgH {
		padding = min(imgW, imgH) / 4
	}
	maxWidth := req.MaxTextWidth
	if maxWidth <= 0 {
		maxWidth = imgW - 2*padding
	}

	lines := wrapLines(face, req.Text, maxWidth)
	blockW, blockH, lineH := blockMetrics(face, lines, req.FontSize)
	blockX, blockY := anchorBlock(imgW, imgH, blockW, blockH, req.OffsetX, req.OffsetY, req.Align)

	// Fresh canvas keeps the caller's decoded image untouched.
	canvas := image.NewNRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(canvas, canvas.Bounds(), decoded, bounds.Min, draw.Src)

	if bgOpacity := clampOpacity(req.BackgroundOpacity); bgOpacity > 0 {
		plate := image.Rect(blockX-padding, blockY-padding, blockX+blockW+padding, blockY+blockH+padding)
		fill := color.NRGBA{
			R: clampChannel(req.Background[0]),
			G: clampChannel(req.Background[1]),
			B: clampChannel(req.Background[2]),
			A: uint8(bgOpacity * 255),
		}
		fillRoundedRect(canvas, plate, req.CornerRadius, fill)
	}

	textColor := color.NRGBA{
		R: clampChannel(req.Color[0]),
		G: clampChannel(req.Color[1]),
		B: clampChannel(req.Color[2]),
		A: uint8(clampOpacity(req.Opacity) * 255),
	}
	ascent := face.Metrics().Ascent.Ceil()
	drawer := &font.Drawer{Dst: canvas, Src: image.NewUniform(textColor), Face: face}
	for i, line := range lines {
		if line == "" {
			continue
		}
		lineW := font.MeasureString(face, line).Ceil()
		x := alignLine(blockX, blockW, lineW, req.Align)
		y := blockY + ascent + i*lineH
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	c.logger.Debug().
		Str("source_format", format).
		Int("lines", len(lines)).
		Int("width", imgW).
		Int("height", imgH).
		Msg("overlay: composited caption")
	return out.Bytes(), nil
}

package overlay

import (
	"image"
	"image/color"
	"image/draw"
)

// clampOpacity forces an opacity into [0, 1].
func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampChannel forces a color channel into [0, 255].
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampRadius keeps a corner radius within half the rectangle's shorter side.
func clampRadius(radius, width, height int) int {
	if radius < 0 {
		return 0
	}
	limit := width
	if height < width {
		limit = height
	}
	limit /= 2
	if radius > limit {
		return limit
	}
	return radius
}

// fillRoundedRect composites a rounded rectangle onto dst with standard
// "over" blending. The fill color's alpha carries the plate opacity.
func fillRoundedRect(dst draw.Image, rect image.Rectangle, radius int, fill color.NRGBA) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() || fill.A == 0 {
		return
	}
	radius = clampRadius(radius, rect.Dx(), rect.Dy())
	mask := roundedRectMask(rect.Dx(), rect.Dy(), radius)
	draw.DrawMask(dst, rect, image.NewUniform(fill), image.Point{}, mask, image.Point{}, draw.Over)
}

// roundedRectMask builds the coverage mask for a w×h rounded rectangle.
func roundedRectMask(w, h, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if radius <= 0 {
		for i := range mask.Pix {
			mask.Pix[i] = 0xff
		}
		return mask
	}
	rr := radius * radius
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cx, cy := x, y
			switch {
			case x < radius && y < radius:
				cx, cy = radius-1-x, radius-1-y
			case x >= w-radius && y < radius:
				cx, cy = x-(w-radius), radius-1-y
			case x < radius && y >= h-radius:
				cx, cy = radius-1-x, y-(h-radius)
			case x >= w-radius && y >= h-radius:
				cx, cy = x-(w-radius), y-(h-radius)
			default:
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
				continue
			}
			if cx*cx+cy*cy <= rr {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}

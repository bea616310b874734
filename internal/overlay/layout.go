package overlay

import (
	"strings"

	"golang.org/x/image/font"
)

// lineHeightFactor is the fixed multiplier applied to the font size to space
// consecutive lines.
const lineHeightFactor = 1.2

// wrapLines splits text into rendered lines. Explicit newlines are honored
// first; each resulting paragraph is then wrapped at maxWidth pixels measured
// with the actual face metrics. Wrapping walks runes rather than whitespace
// tokens so scripts without word-boundary spaces (CJK) wrap correctly; when a
// space precedes the overflow point the break moves back to it.
func wrapLines(face font.Face, text string, maxWidth int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if maxWidth <= 0 || paragraph == "" {
			lines = append(lines, paragraph)
			continue
		}
		lines = append(lines, wrapParagraph(face, paragraph, maxWidth)...)
	}
	return lines
}

func wrapParagraph(face font.Face, paragraph string, maxWidth int) []string {
	var lines []string
	runes := []rune(paragraph)
	start := 0
	lastSpace := -1
	for i := 0; i < len(runes); i++ {
		if runes[i] == ' ' {
			lastSpace = i
		}
		candidate := string(runes[start : i+1])
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			continue
		}
		if i == start {
			// A single rune wider than the budget still occupies its own line.
			lines = append(lines, string(runes[start:i+1]))
			start = i + 1
		} else if lastSpace > start {
			lines = append(lines, string(runes[start:lastSpace]))
			start = lastSpace + 1
		} else {
			lines = append(lines, string(runes[start:i]))
			start = i
		}
		lastSpace = -1
		// Re-measure the current rune against the fresh line.
		i = start - 1
	}
	if start < len(runes) {
		lines = append(lines, string(runes[start:]))
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// blockMetrics measures the bounding box of the wrapped lines.
func blockMetrics(face font.Face, lines []string, fontSize int) (width, height, lineHeight int) {
	lineHeight = int(float64(fontSize) * lineHeightFactor)
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height = len(lines) * lineHeight
	return width, height, lineHeight
}

// anchorBlock resolves the block's top-left corner from the image dimensions,
// the alignment mode and the requested offsets. Horizontally the x offset
// shifts the aligned edge inward (mirrored for right alignment); vertically
// the block is centered on the image and then shifted by the y offset.
func anchorBlock(imgW, imgH, blockW, blockH, offsetX, offsetY int, align string) (x, y int) {
	switch align {
	case "left":
		x = offsetX
	case "right":
		x = imgW - blockW - offsetX
	default: // center
		x = (imgW-blockW)/2 + offsetX
	}
	y = (imgH-blockH)/2 + offsetY
	return x, y
}

// alignLine positions one line inside the block.
func alignLine(blockX, blockW, lineW int, align string) int {
	switch align {
	case "left":
		return blockX
	case "right":
		return blockX + blockW - lineW
	default:
		return blockX + (blockW-lineW)/2
	}
}

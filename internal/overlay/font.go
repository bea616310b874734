package overlay

import (
	"fmt"
	"os"
	"unicode"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"texttoimage/internal/domain"
)

// loadFont parses the configured font asset. Returns (nil, nil) when nothing
// is configured, in which case rendering non-empty text fails with
// domain.ErrFontUnavailable.
func loadFont(fontBytes []byte, fontPath string) (*sfnt.Font, error) {
	if len(fontBytes) == 0 && fontPath == "" {
		return nil, nil
	}
	if len(fontBytes) == 0 {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read %q: %w", domain.ErrFontUnavailable, fontPath, err)
		}
		fontBytes = data
	}
	fnt, err := opentype.Parse(fontBytes)
	if err == nil {
		return fnt, nil
	}
	// TTC collections (common for CJK system fonts) need the collection parser.
	coll, cerr := opentype.ParseCollection(fontBytes)
	if cerr != nil {
		return nil, fmt.Errorf("%w: parse font: %w", domain.ErrFontUnavailable, err)
	}
	fnt, err = coll.Font(0)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font collection: %w", domain.ErrFontUnavailable, err)
	}
	return fnt, nil
}

// checkCoverage verifies that every visible rune in text maps to a real glyph.
// Rendering must fail rather than silently draw .notdef boxes or blanks.
func checkCoverage(fnt *sfnt.Font, text string) error {
	var buf sfnt.Buffer
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		idx, err := fnt.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("%w: glyph lookup for %q: %w", domain.ErrFontUnavailable, r, err)
		}
		if idx == 0 {
			return fmt.Errorf("%w: no glyph for %q", domain.ErrFontUnavailable, r)
		}
	}
	return nil
}

package overlay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"texttoimage/internal/domain"
)

func TestLoadFontNothingConfigured(t *testing.T) {
	fnt, err := loadFont(nil, "")
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if fnt != nil {
		t.Fatalf("expected nil font when nothing is configured")
	}
}

func TestLoadFontFromBytes(t *testing.T) {
	fnt, err := loadFont(goregular.TTF, "")
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if fnt == nil {
		t.Fatalf("expected parsed font")
	}
}

func TestLoadFontFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	fnt, err := loadFont(nil, path)
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if fnt == nil {
		t.Fatalf("expected parsed font")
	}
}

func TestLoadFontMissingPath(t *testing.T) {
	_, err := loadFont(nil, filepath.Join(t.TempDir(), "missing.ttf"))
	if !errors.Is(err, domain.ErrFontUnavailable) {
		t.Fatalf("err = %v, want ErrFontUnavailable", err)
	}
}

func TestLoadFontGarbageBytes(t *testing.T) {
	_, err := loadFont([]byte("not a font"), "")
	if !errors.Is(err, domain.ErrFontUnavailable) {
		t.Fatalf("err = %v, want ErrFontUnavailable", err)
	}
}

func TestCheckCoverage(t *testing.T) {
	fnt, err := loadFont(goregular.TTF, "")
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if err := checkCoverage(fnt, "Hello, world"); err != nil {
		t.Fatalf("latin coverage: %v", err)
	}
	if err := checkCoverage(fnt, "你好"); !errors.Is(err, domain.ErrFontUnavailable) {
		t.Fatalf("err = %v, want ErrFontUnavailable for CJK", err)
	}
	// Whitespace is never required to have a visible glyph.
	if err := checkCoverage(fnt, "a b\nc"); err != nil {
		t.Fatalf("whitespace handling: %v", err)
	}
}

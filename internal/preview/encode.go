package preview

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Encode writes img as "webp" (lossless) or "tga".
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "webp", "":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("preview: unknown format %q", format)
}

// WriteFile renders l and saves it to path; the format follows the extension.
func WriteFile(path string, l Layout, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if err := Encode(f, Render(l, opt), format); err != nil {
		return fmt.Errorf("preview: write %s: %w", path, err)
	}
	return f.Close()
}

// Package sink writes finished canvases to image files.
//
// Encoding goes through github.com/disintegration/imaging, which picks the
// codec from the file extension (PNG, JPEG, GIF, BMP and TIFF). Lossless
// formats are recommended: JPEG and GIF cannot keep every color distinct.
package sink

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	homedir "github.com/mitchellh/go-homedir"
)

// ErrUnsupportedFormat is returned for extensions no encoder handles.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
)

var formats = map[Format]imaging.Format{
	PNG:  imaging.PNG,
	BMP:  imaging.BMP,
	TIFF: imaging.TIFF,
	JPEG: imaging.JPEG,
	GIF:  imaging.GIF,
}

// ParseFormat accepts a format name or extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Lossless reports whether every pixel survives encoding unchanged.
func (f Format) Lossless() bool {
	return f == PNG || f == BMP || f == TIFF
}

// Ext returns the conventional file extension, including the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// SaveOptions configures Save.
type SaveOptions struct {
	// Scale enlarges every pixel to a Scale x Scale block. Values below 2
	// write the canvas at its native size.
	Scale int

	// Format overrides the format derived from the file extension.
	Format Format
}

// Scaled returns img enlarged by an integer factor with nearest-neighbor
// sampling, so pixel colors are preserved exactly.
func Scaled(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	f, ok := formats[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := imaging.Encode(w, img, f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// ResolvePath expands a leading "~" and, when path has no extension, appends
// the extension of format.
func ResolvePath(path string, format Format) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	if filepath.Ext(expanded) == "" {
		if format == "" {
			format = PNG
		}
		expanded += format.Ext()
	}
	return expanded, nil
}

// Save encodes img to path and returns the path actually written.
//
// The format comes from opts.Format or, if empty, from the file extension.
// The file is closed before Save returns; a failed close is reported.
func Save(path string, img image.Image, opts SaveOptions) (written string, err error) {
	resolved, err := ResolvePath(path, opts.Format)
	if err != nil {
		return "", err
	}

	format := opts.Format
	if format == "" {
		if format, err = ParseFormat(filepath.Ext(resolved)); err != nil {
			return "", err
		}
	}

	f, err := os.Create(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if err := Encode(f, Scaled(img, opts.Scale), format); err != nil {
		return "", err
	}
	return resolved, nil
}

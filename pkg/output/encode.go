package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat reports an output format or file extension that has no encoder
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output encoding. Its value is also the file extension.
type Format string

const (
	FormatPPM       Format = "ppm"
	FormatPPMZstd   Format = "ppm.zst" // PPM compressed with zstd
	FormatPPMSnappy Format = "ppm.sz"  // PPM in snappy framing format
	FormatPNG       Format = "png"
	FormatWebP      Format = "webp" // Lossless
	FormatBMP       Format = "bmp"
	FormatTIFF      Format = "tiff"
	FormatTGA       Format = "tga"
)

// Formats lists every supported format; compound extensions come first so
// suffix matching prefers them
func Formats() []Format {
	return []Format{FormatPPMZstd, FormatPPMSnappy, FormatPPM, FormatPNG, FormatWebP, FormatBMP, FormatTIFF, FormatTGA}
}

// ParseFormat accepts a format name with or without a leading dot
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "tif" {
		return FormatTIFF, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from the file extension of path
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(lower, ".tif") {
		return FormatTIFF, nil
	}
	for _, f := range Formats() {
		if strings.HasSuffix(lower, "."+string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes frame to w in the given format
func Encode(w io.Writer, frame Frame, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatPPMZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := WritePPM(enc, frame); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	case FormatPPMSnappy:
		enc := snappy.NewBufferedWriter(w)
		if err := WritePPM(enc, frame); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	}
	return EncodeImage(w, frame.Image(), format)
}

// EncodeImage writes an already converted image. The PPM formats need
// the float colors of a Frame and are rejected here.
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatTGA:
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ContentType returns the MIME type served for format
func ContentType(format Format) string {
	switch format {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatPPMZstd:
		return "application/zstd"
	case FormatPPMSnappy:
		return "application/x-snappy-framed"
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatTGA:
		return "image/x-tga"
	}
	return "application/octet-stream"
}

// SaveFile encodes frame into a new file at path, creating parent
// directories. An empty format is taken from the extension.
func SaveFile(path string, frame Frame, format Format) error {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(f, frame, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s as %s: %w", path, format, err)
	}
	return f.Close()
}

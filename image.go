package gblogo

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gblogo/logo"
	"golang.org/x/image/bmp"
)

var errUnknownFormat = errors.New("unknown image format")

func isRaw(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".bin", ".raw":
		return true
	}
	return false
}

// ReadImage decodes a PNG, GIF, JPEG or BMP image from file. Files with a
// .bin or .raw extension are read as a packed logo.
func ReadImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isRaw(file) {
		return logo.Decode(f)
	}

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func encodeRGB(w io.Writer, m image.Image) error {
	b := m.Bounds()
	rgb := image.NewRGBA(b)
	draw.Draw(rgb, b, m, b.Min, draw.Src)
	return png.Encode(w, rgb)
}

func encodeMono(w io.Writer, m image.Image) error {
	b := m.Bounds()
	pm := image.NewPaletted(b, color.Palette{color.Black, color.White})
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return gif.Encode(w, pm, nil)
}

func encodeRaw(w io.Writer, m image.Image) error {
	return logo.Encode(w, m, nil)
}

// WriteImage encodes the Image m to file, the format is chosen by the file
// extension. PNG files are written as 8-bit RGB.
func WriteImage(file string, m image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		encode = encodeRGB
	case ".gif":
		encode = encodeMono
	case ".bmp":
		encode = bmp.Encode
	case ".bin", ".raw":
		encode = encodeRaw
	default:
		return errUnknownFormat
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := encode(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

package logo

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

var errWrongSize = errors.New("logo: image is wrong size")

// Options are the encoding parameters.
type Options struct {
	// Quantize reduces the image to two colors before encoding, the
	// lighter of which becomes the background. Without it any pixel that
	// isn't pure white in the first channel is ink.
	Quantize bool
}

type encoder struct {
	w io.Writer
}

// sample returns the first channel of c as an 8-bit value
func sample(c color.Color) byte {
	r, _, _, _ := c.RGBA()
	return byte(r >> 8)
}

func rasterize(m image.Image) Raster {
	var r Raster
	b := m.Bounds()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r[y*Width+x] = sample(m.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return r
}

// Return the palette index of the lightest color
func lightest(p color.Palette) int {
	var best, y int
	for i, c := range p {
		if g := int(color.GrayModel.Convert(c).(color.Gray).Y); i == 0 || g > y {
			best, y = i, g
		}
	}
	return best
}

func quantizeRaster(m image.Image) Raster {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 2), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// A single color image is only background if that color is white
	bg := lightest(pm.Palette)
	single := len(pm.Palette) < 2 && sample(pm.Palette[bg]) != Background

	var r Raster
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if int(pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y)) == bg && !single {
				r[y*Width+x] = Background
			} else {
				r[y*Width+x] = Ink
			}
		}
	}
	return r
}

func (e *encoder) encode(r Raster) error {
	p := Pack(r)
	_, err := e.w.Write(p[:])
	return err
}

// Encode writes the Image m to w as a packed logo. If o is nil the
// default options are used.
func Encode(w io.Writer, m image.Image, o *Options) error {
	b := m.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return errWrongSize
	}

	var r Raster
	if o != nil && o.Quantize {
		r = quantizeRaster(m)
	} else {
		r = rasterize(m)
	}

	e := encoder{w: w}

	return e.encode(r)
}

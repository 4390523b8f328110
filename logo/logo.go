/*
Package logo implements a decoder and encoder for the Game Boy cartridge boot
logo.

The logo is defined as 48 by 8 pixels exactly, one bit per pixel. It is
stored in the cartridge header as 48 bytes starting at offset 0x104, split
into two bands of twelve 4 by 4 tiles. Each tile occupies two bytes; the
upper nibble of the first byte is the top row of the tile, then the lower
nibble, then the two nibbles of the second byte.

Decoding expands each pixel to an 8-bit intensity; 0 for a set pixel and 255
for a clear one. Encoding reverses this, treating anything other than 255 as
a set pixel.
*/
package logo

import "errors"

const (
	// Width is the width of the logo in pixels
	Width = 48
	// Height is the height of the logo in pixels
	Height = 8
	// PackedSize is the size in bytes of the logo as stored
	PackedSize = 0x30
	// Offset is where the logo starts within a cartridge image
	Offset = 0x104

	numPixels = Width * Height
	bandSize  = PackedSize >> 1
	runLength = bandSize >> 2
)

// Ink and Background are the only samples produced when decoding.
const (
	Ink        = 0x00
	Background = 0xff
)

// ErrSize is returned when unmarshalling a logo that isn't exactly
// PackedSize bytes.
var ErrSize = errors.New("logo: incorrect length")

// Packed is the logo as stored in the cartridge header.
type Packed [PackedSize]byte

// Raster is the logo as one intensity sample per pixel in row-major order.
type Raster [numPixels]byte

// Nintendo is the logo every licensed cartridge carries; the boot ROM
// refuses to start anything else.
var Nintendo = Packed{
	0xce, 0xed, 0x66, 0x66, 0xcc, 0x0d, 0x00, 0x0b,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0c, 0x00, 0x0d,
	0x00, 0x08, 0x11, 0x1f, 0x88, 0x89, 0x00, 0x0e,
	0xdc, 0xcc, 0x6e, 0xe6, 0xdd, 0xdd, 0xd9, 0x99,
	0xbb, 0xbb, 0x67, 0x63, 0x6e, 0x0e, 0xec, 0xcc,
	0xdd, 0xdc, 0x99, 0x9f, 0xbb, 0xb9, 0x33, 0x3e,
}

// MarshalBinary returns the packed logo bytes
func (p Packed) MarshalBinary() ([]byte, error) {
	b := make([]byte, PackedSize)
	copy(b, p[:])
	return b, nil
}

// UnmarshalBinary sets the packed logo from exactly PackedSize bytes
func (p *Packed) UnmarshalBinary(b []byte) error {
	if len(b) != PackedSize {
		return ErrSize
	}
	copy(p[:], b)
	return nil
}

package gblogo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/bodgit/gblogo/checksum"
	"github.com/bodgit/gblogo/logo"
)

const (
	titleStart           = 0x134
	titleEnd             = 0x144
	headerChecksumOffset = 0x14d
	globalChecksumOffset = 0x14e

	// HeaderSize is the smallest image that contains a complete cartridge
	// header
	HeaderSize = 0x150
)

var (
	// ErrROMTooSmall is returned for an image that doesn't contain a
	// complete cartridge header
	ErrROMTooSmall = errors.New("ROM too small")
	// ErrLogoTooSmall is returned when setting a raw logo shorter than
	// logo.PackedSize bytes
	ErrLogoTooSmall = errors.New("logo too small")
)

// ROM is an in-memory cartridge image.
type ROM struct {
	b []byte
}

// NewROM returns a ROM backed by b, which must not be modified by the caller
// afterwards.
func NewROM(b []byte) (*ROM, error) {
	if len(b) < HeaderSize {
		return nil, ErrROMTooSmall
	}
	return &ROM{b: b}, nil
}

// LoadROM reads the whole cartridge image from file.
func LoadROM(file string) (*ROM, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	r, err := NewROM(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return r, nil
}

// Save writes the cartridge image to file.
func (r *ROM) Save(file string) error {
	return os.WriteFile(file, r.b, 0666)
}

// Bytes returns the cartridge image
func (r *ROM) Bytes() []byte {
	return r.b
}

// Logo returns the packed logo
func (r *ROM) Logo() logo.Packed {
	var p logo.Packed
	copy(p[:], r.b[logo.Offset:logo.Offset+logo.PackedSize])
	return p
}

// SetLogo replaces the packed logo, nothing else in the image is changed
func (r *ROM) SetLogo(p logo.Packed) {
	copy(r.b[logo.Offset:logo.Offset+logo.PackedSize], p[:])
}

// SetLogoRaw replaces the packed logo with the first logo.PackedSize bytes
// of b.
func (r *ROM) SetLogoRaw(b []byte) error {
	if len(b) < logo.PackedSize {
		return ErrLogoTooSmall
	}
	var p logo.Packed
	copy(p[:], b)
	r.SetLogo(p)
	return nil
}

// Image returns the logo as an image.Image
func (r *ROM) Image() (image.Image, error) {
	p := r.Logo()
	return logo.Decode(bytes.NewReader(p[:]))
}

// SetImage replaces the logo with the encoded Image m.
func (r *ROM) SetImage(m image.Image, o *logo.Options) error {
	b := new(bytes.Buffer)
	if err := logo.Encode(b, m, o); err != nil {
		return err
	}
	return r.SetLogoRaw(b.Bytes())
}

// HasNintendoLogo reports whether the image carries the licensed logo
func (r *ROM) HasNintendoLogo() bool {
	return r.Logo() == logo.Nintendo
}

// Title returns the game title from the header. Later cartridges reuse the
// end of the title for a manufacturer code and CGB flag so the title stops
// at the first NUL or non-ASCII byte.
func (r *ROM) Title() string {
	var sb strings.Builder
	for _, b := range r.b[titleStart:titleEnd] {
		if b == 0 || b >= 0x80 {
			break
		}
		sb.WriteByte(b)
	}
	return strings.TrimSpace(sb.String())
}

// HeaderChecksum computes the header checksum and reports whether it
// matches the stored value
func (r *ROM) HeaderChecksum() (byte, bool) {
	x := checksum.Header(r.b[titleStart:headerChecksumOffset])
	return x, x == r.b[headerChecksumOffset]
}

// GlobalChecksum computes the global checksum and reports whether it matches
// the stored value
func (r *ROM) GlobalChecksum() (uint16, bool) {
	h := checksum.New()
	h.Write(r.b[:globalChecksumOffset])
	h.Write(r.b[globalChecksumOffset+checksum.Size:])
	s := h.Sum16()
	return s, s == binary.BigEndian.Uint16(r.b[globalChecksumOffset:])
}

// FixGlobalChecksum recomputes and stores the global checksum. The logo is
// covered by it so it will be stale after changing the logo.
func (r *ROM) FixGlobalChecksum() {
	s, _ := r.GlobalChecksum()
	binary.BigEndian.PutUint16(r.b[globalChecksumOffset:], s)
}

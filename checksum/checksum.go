/*
Package checksum implements the two checksums stored in a Game Boy cartridge
header.

The header checksum is a single byte covering the title through to the mask
ROM version and is verified by the boot ROM. The global checksum is a 16-bit
sum of every byte in the image except the two bytes holding it, stored in
big-endian byte order; nothing on the hardware verifies it.
*/
package checksum

import "hash"

// Size of the global checksum in bytes.
const Size = 2

// Hash16 is the common interface implemented by the global checksum.
type Hash16 interface {
	hash.Hash
	Sum16() uint16
}

type digest struct {
	sum uint16
}

// New creates a new Hash16 computing the global checksum. Its Sum method
// will lay the value out in big-endian byte order.
func New() Hash16 {
	return &digest{}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.sum = 0 }

// Update returns the result of adding the bytes in p to the sum.
func Update(sum uint16, p []byte) uint16 {
	for _, b := range p {
		sum += uint16(b)
	}
	return sum
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.sum = Update(d.sum, p)
	return len(p), nil
}

func (d *digest) Sum16() uint16 { return d.sum }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum16()
	return append(in, byte(s>>8), byte(s))
}

// Checksum returns the global checksum of data.
func Checksum(data []byte) uint16 { return Update(0, data) }

// Header returns the header checksum of data, which should be the bytes
// from 0x134 to 0x14c inclusive.
func Header(data []byte) byte {
	var x byte
	for _, b := range data {
		x = x - b - 1
	}
	return x
}

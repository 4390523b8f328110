package logo

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// Unpack converts the packed logo into one sample per pixel.
func Unpack(p Packed) Raster {
	// Reorder the tile nibbles so each byte is eight consecutive pixels
	// of a row. Each band yields four rows; within a band the even bytes
	// hold rows 0 and 1 and the odd bytes hold rows 2 and 3.
	var tmp [PackedSize]byte
	i := 0
	for band := 0; band < 2; band++ {
		base := band * bandSize
		for lane := 0; lane < 2; lane++ {
			for x := 0; x < bandSize; x += 4 {
				a, b := p[base+x+lane], p[base+x+2+lane]
				tmp[i] = upperNibble(a) | upperNibble(b)>>4
				i++
			}
			for x := 0; x < bandSize; x += 4 {
				a, b := p[base+x+lane], p[base+x+2+lane]
				tmp[i] = lowerNibble(a)<<4 | lowerNibble(b)
				i++
			}
		}
	}

	var r Raster
	for i, b := range tmp {
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>uint(bit)) != 0 {
				r[i<<3+bit] = Ink
			} else {
				r[i<<3+bit] = Background
			}
		}
	}
	return r
}

// Pack converts one sample per pixel into the packed logo. Only a sample of
// exactly 255 is treated as background, any other value is ink.
func Pack(r Raster) Packed {
	var tmp [PackedSize]byte
	for i := range tmp {
		var b byte
		for bit := 0; bit < 8; bit++ {
			b = b<<1 | (1 - r[i<<3+bit]/Background)
		}
		tmp[i] = b
	}

	var p Packed
	for band := 0; band < 2; band++ {
		base := band * bandSize
		for k := 0; k < runLength; k++ {
			row0, row1 := tmp[base+k], tmp[base+k+runLength]
			row2, row3 := tmp[base+k+runLength*2], tmp[base+k+runLength*3]

			o := base + k<<2
			p[o+0] = upperNibble(row0) | upperNibble(row1)>>4
			p[o+1] = upperNibble(row2) | upperNibble(row3)>>4
			p[o+2] = lowerNibble(row0)<<4 | lowerNibble(row1)
			p[o+3] = lowerNibble(row2)<<4 | lowerNibble(row3)
		}
	}
	return p
}

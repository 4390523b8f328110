package gblogo

import (
	"fmt"
	"hash/crc32"
)

func crcBytes(b []byte) string {
	h := crc32.NewIEEE()
	h.Write(b)
	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil))
}

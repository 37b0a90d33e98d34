// Package journal frames payloads into CRC-32C checksummed fragments laid
// out in fixed size blocks. A payload larger than what is left of a block
// is split into first, middle and last fragments.
package journal

import "hash/crc32"

// Fragment types.
const (
	fullFragment   = 1
	firstFragment  = 2
	middleFragment = 3
	lastFragment   = 4

	numFragmentTypes = 5
)

const (
	// BlockSize is the size of blocks in journal files.
	BlockSize = 32 * 1024

	// A fragment header is a masked checksum of the type byte and
	// payload, a 2-byte payload length and the type byte.
	headerSize = 7
)

var trailer [headerSize]byte

var table = crc32.MakeTable(crc32.Castagnoli)

var typeChecksums [numFragmentTypes]uint32

func init() {
	for i := range typeChecksums {
		typeChecksums[i] = crc32.Checksum([]byte{byte(i)}, table)
	}
}

func mask(c uint32) uint32 {
	return (c>>15 | c<<17) + 0xa282ead8
}

func checksum(typ byte, payload []byte) uint32 {
	return mask(crc32.Update(typeChecksums[typ], table, payload))
}

func fragmentType(begin, end bool) byte {
	switch {
	case begin && end:
		return fullFragment
	case begin:
		return firstFragment
	case end:
		return lastFragment
	default:
		return middleFragment
	}
}

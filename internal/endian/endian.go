package endian

import (
	"encoding/binary"
)

// Endian is the byte order of every multi-byte integer in the list wire
// format and in snapshot files.
var Endian = binary.LittleEndian

func Uint16(b []byte) uint16 {
	return Endian.Uint16(b)
}

func Uint32(b []byte) uint32 {
	return Endian.Uint32(b)
}

// Int32 decodes a signed 32-bit integer as peers write it: two's complement,
// least significant byte first.
func Int32(b []byte) int32 {
	return int32(Endian.Uint32(b))
}

func PutUint16(b []byte, u uint16) {
	Endian.PutUint16(b, u)
}

func PutUint32(b []byte, u uint32) {
	Endian.PutUint32(b, u)
}

func PutInt32(b []byte, i int32) {
	Endian.PutUint32(b, uint32(i))
}

// AppendInt32 appends the four bytes of i to b.
func AppendInt32(b []byte, i int32) []byte {
	return append(b, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
}

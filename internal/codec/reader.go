package codec

import (
	"github.com/kezhuw/flist/internal/endian"
	"github.com/kezhuw/flist/internal/errors"
	"github.com/kezhuw/flist/internal/options"
)

// Reader walks a buffer of encoded records. Reads past the end of the buffer
// panic with errors.ErrExhausted, which Session.Decode recovers.
type Reader struct {
	buf  []byte
	pos  int
	base int64
}

// NewReader creates a Reader over buf. base is the stream offset of buf[0],
// used only to report error positions.
func NewReader(buf []byte, base int64) *Reader {
	return &Reader{buf: buf, base: base}
}

// Offset returns the number of bytes consumed from the buffer.
func (r *Reader) Offset() int {
	return r.pos
}

// StreamOffset returns the stream position of the next unread byte.
func (r *Reader) StreamOffset() int64 {
	return r.base + int64(r.pos)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Seek moves the read position back to an offset returned by Offset.
func (r *Reader) Seek(offset int) {
	r.pos = offset
}

// ReadFlags reads the flags byte starting a record. ok is false if the
// buffer is exhausted.
func (r *Reader) ReadFlags() (flags byte, ok bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	flags = r.buf[r.pos]
	r.pos++
	return flags, true
}

func (r *Reader) next(n int) []byte {
	if n > len(r.buf)-r.pos {
		r.pos = len(r.buf)
		panic(errors.ErrExhausted)
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) readByte() byte {
	return r.next(1)[0]
}

func (r *Reader) readInt32() int32 {
	return endian.Int32(r.next(4))
}

// readLongInt reads a long integer. Peers older than version 16 never send
// the extended form, so a -1 from them is just -1.
func (r *Reader) readLongInt(version int) int64 {
	x := r.readInt32()
	if x != longIntMarker || version < options.LongIntVersion {
		return int64(x)
	}
	low := uint64(uint32(r.readInt32()))
	high := uint64(uint32(r.readInt32()))
	return int64(high<<32 | low)
}

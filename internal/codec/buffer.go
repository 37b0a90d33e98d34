package codec

import (
	"io"

	"github.com/kezhuw/flist/internal/endian"
	"github.com/kezhuw/flist/internal/options"
)

const minBufferSize = 32 * 1024

// Buffer accumulates encoded records until the transport takes them.
type Buffer struct {
	data []byte
}

// Bytes returns the encoded bytes not yet taken. The slice is valid until
// the next write to or Reset of b.
func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset discards all encoded bytes but keeps the allocated space.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// WriteTo writes the encoded bytes to w and discards what was written.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	if n > 0 {
		b.data = b.data[:copy(b.data, b.data[n:])]
	}
	if err == nil && len(b.data) != 0 {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// grow makes room for n more bytes, at least doubling the capacity so
// appends stay amortized.
func (b *Buffer) grow(n int) {
	l, c := len(b.data), cap(b.data)
	if l+n <= c {
		return
	}
	c *= 2
	if c < minBufferSize {
		c = minBufferSize
	}
	if c < l+n {
		c = l + n
	}
	data := make([]byte, l, c)
	copy(data, b.data)
	b.data = data
}

func (b *Buffer) writeByte(c byte) {
	b.grow(1)
	b.data = append(b.data, c)
}

func (b *Buffer) writeInt32(i int32) {
	b.grow(4)
	b.data = endian.AppendInt32(b.data, i)
}

func (b *Buffer) writeString(s string) {
	b.grow(len(s))
	b.data = append(b.data, s...)
}

// writeBytes writes exactly n bytes of p, padding with zeros if p is
// shorter.
func (b *Buffer) writeBytes(p []byte, n int) {
	b.grow(n)
	if len(p) > n {
		p = p[:n]
	}
	b.data = append(b.data, p...)
	for i := len(p); i < n; i++ {
		b.data = append(b.data, 0)
	}
}

// writeLongInt writes x as a long integer: a plain 32-bit integer when it
// fits, otherwise the -1 marker followed by the low and high 32-bit words.
// Peers older than version 16 only understand the plain form and get x
// truncated.
func (b *Buffer) writeLongInt(x int64, version int) {
	if version < options.LongIntVersion || (x >= -1<<31 && x < 1<<31 && x != longIntMarker) {
		b.writeInt32(int32(x))
		return
	}
	b.writeInt32(longIntMarker)
	b.writeInt32(int32(uint32(uint64(x))))
	b.writeInt32(int32(uint32(uint64(x) >> 32)))
}

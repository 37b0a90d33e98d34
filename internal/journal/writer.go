package journal

import (
	"io"

	"github.com/kezhuw/flist/internal/endian"
)

// Writer frames payloads onto an io.Writer that starts at a block boundary.
type Writer struct {
	w           io.Writer
	err         error
	buf         []byte
	offset      int64
	blockOffset int
	blockSize   int
}

func newWriter(w io.Writer, blockSize int) *Writer {
	if blockSize <= headerSize {
		blockSize = BlockSize
	}
	return &Writer{w: w, blockSize: blockSize}
}

func NewWriter(w io.Writer) *Writer {
	return newWriter(w, BlockSize)
}

// Err returns the first write error. A Writer refuses to write after it.
func (w *Writer) Err() error {
	return w.err
}

// Offset returns the number of bytes written to the underlying writer.
func (w *Writer) Offset() int64 {
	return w.offset
}

// Write frames b as one payload and writes all its fragments with a single
// call to the underlying writer. An empty payload is framed as well.
func (w *Writer) Write(b []byte) error {
	if w.err != nil {
		return w.err
	}
	buf := w.buf[:0]
	offset := w.blockOffset
	for begin := true; ; begin = false {
		leftover := w.blockSize - offset
		if leftover < headerSize {
			buf = append(buf, trailer[:leftover]...)
			offset, leftover = 0, w.blockSize
		}
		n := leftover - headerSize
		end := len(b) <= n
		if end {
			n = len(b)
		}
		typ := fragmentType(begin, end)
		var head [headerSize]byte
		endian.PutUint32(head[:4], checksum(typ, b[:n]))
		endian.PutUint16(head[4:6], uint16(n))
		head[6] = typ
		buf = append(buf, head[:]...)
		buf = append(buf, b[:n]...)
		offset += headerSize + n
		if end {
			break
		}
		b = b[n:]
	}
	n, err := w.w.Write(buf)
	w.buf = buf[:0]
	w.offset += int64(n)
	if err != nil {
		w.err = err
		return err
	}
	w.blockOffset = offset
	return nil
}

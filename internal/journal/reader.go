package journal

import (
	"fmt"
	"hash/crc32"
	"io"

	"github.com/kezhuw/flist/internal/endian"
	"github.com/kezhuw/flist/internal/errors"
)

// Reader reads payloads framed by Writer.
type Reader struct {
	r      io.Reader
	err    error
	buf    []byte // len(buf) equals to block size
	block  []byte
	offset int64 // Points after last payload read.
}

func newReader(r io.Reader, blockSize int) *Reader {
	if blockSize <= headerSize {
		blockSize = BlockSize
	}
	return &Reader{r: r, buf: make([]byte, blockSize)}
}

// NewReader creates a Reader reading from r, which must be at the start of
// a block.
func NewReader(r io.Reader) *Reader {
	return newReader(r, BlockSize)
}

// Offset returns the offset after the last payload read.
func (r *Reader) Offset() int64 {
	return r.offset
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errors.ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}

// ReadFrame reads the next payload and appends it to b. It returns io.EOF
// at a clean end of input and errors.ErrIncompleteFrame if input ends in the
// middle of a payload.
func (r *Reader) ReadFrame(b []byte) ([]byte, error) {
	start := len(b)
	block := r.block
	middle := false
	offset := r.offset
	for {
		if len(block) < headerSize {
			if r.err == nil {
				offset += int64(len(block))
				block = r.readBlock()
			}
			if len(block) < headerSize {
				if r.err == io.EOF && (len(block) != 0 || middle) {
					return b[:start], errors.ErrIncompleteFrame
				}
				return b[:start], r.err
			}
		}

		head := block[:headerSize]
		length := int(endian.Uint16(head[4:6]))
		span := headerSize + length
		if span > len(block) {
			if r.err == io.EOF {
				return b[:start], errors.ErrIncompleteFrame
			}
			return b[:start], corrupt("fragment at %d crosses block boundary", offset)
		}
		if mask(crc32.Checksum(block[6:span], table)) != endian.Uint32(head[:4]) {
			return b[:start], errors.ErrMismatchChecksum
		}

		b = append(b, block[headerSize:span]...)
		block = block[span:]
		offset += int64(span)
		switch typ := head[6]; {
		case typ == fullFragment && !middle, typ == lastFragment && middle:
			r.block = block
			r.offset = offset
			return b, nil
		case typ == firstFragment && !middle:
			middle = true
		case typ == middleFragment && middle:
		default:
			return b[:start], corrupt("unexpected fragment type %d at %d", typ, offset-int64(span))
		}
	}
}

func (r *Reader) readBlock() []byte {
	n, err := io.ReadFull(r.r, r.buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		r.err = err
	}
	r.block = r.buf[:n]
	return r.block
}

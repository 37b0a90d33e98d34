package flist

import "io"

const defaultChunkSize = 32 * 1024

// Decoder feeds a List from a byte stream delivered in arbitrary pieces. It
// keeps the bytes of a partially received record until the rest arrives.
type Decoder struct {
	l     *List
	buf   []byte
	chunk int
}

// NewDecoder creates a Decoder reading 32KiB at a time.
func NewDecoder(l *List) *Decoder {
	return NewDecoderSize(l, defaultChunkSize)
}

// NewDecoderSize creates a Decoder reading size bytes at a time.
func NewDecoderSize(l *List, size int) *Decoder {
	if size <= 0 {
		size = defaultChunkSize
	}
	return &Decoder{l: l, chunk: size}
}

func (d *Decoder) decode() error {
	if d.l.Done() {
		return nil
	}
	n, err := d.l.Decode(d.buf)
	d.buf = d.buf[:copy(d.buf, d.buf[n:])]
	return err
}

// Write decodes p. Bytes following the terminator are kept for Remaining.
func (d *Decoder) Write(p []byte) (int, error) {
	if err := d.l.Err(); err != nil {
		return 0, err
	}
	d.buf = append(d.buf, p...)
	if err := d.decode(); err != nil {
		return len(p), err
	}
	return len(p), nil
}

// ReadFrom decodes from r until the terminator, a decoding error or the end
// of r. Bytes read past the terminator are kept for Remaining. Reaching the
// end of r early is not an error; Close reports it.
func (d *Decoder) ReadFrom(r io.Reader) (n int64, err error) {
	if err := d.l.Err(); err != nil {
		return 0, err
	}
	for !d.l.Done() {
		if cap(d.buf)-len(d.buf) < d.chunk {
			buf := make([]byte, len(d.buf), 2*cap(d.buf)+d.chunk)
			copy(buf, d.buf)
			d.buf = buf
		}
		m, rerr := r.Read(d.buf[len(d.buf) : len(d.buf)+d.chunk])
		d.buf = d.buf[:len(d.buf)+m]
		n += int64(m)
		if m > 0 {
			if err := d.decode(); err != nil {
				return n, err
			}
		}
		switch {
		case rerr == io.EOF:
			return n, nil
		case rerr != nil:
			return n, rerr
		}
	}
	return n, nil
}

// Remaining returns bytes received after the terminator, or the bytes of
// an incomplete record if the terminator has not been reached.
func (d *Decoder) Remaining() []byte {
	return d.buf
}

// Close returns the error that ended decoding, or io.ErrUnexpectedEOF if
// the terminator was never reached.
func (d *Decoder) Close() error {
	switch {
	case d.l.Err() != nil:
		return d.l.Err()
	case !d.l.Done():
		return io.ErrUnexpectedEOF
	}
	return nil
}

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted reports that input ended in the middle of a record. It
	// is flow control between the record decoder and the list decoder and
	// never leaves this module.
	ErrExhausted = errors.New("flist: input exhausted")

	ErrNameOverflow       = errors.New("flist: name length overflow")
	ErrLinkOverflow       = errors.New("flist: symlink length overflow")
	ErrCorruptName        = errors.New("flist: shared name prefix longer than previous name")
	ErrPathTooLong        = errors.New("flist: path too long")
	ErrUnsupportedVersion = errors.New("flist: unsupported protocol version")
	ErrCorruptSnapshot    = errors.New("flist: corrupt snapshot")

	ErrIncompleteFrame  = errors.New("flist: incomplete journal frame")
	ErrMismatchChecksum = errors.New("flist: corrupt journal frame: mismatch checksum")
)

// OverflowError is a fatal decoding error: length fields in the stream
// describe something no peer can have sent. The session that produced it
// can not decode any further.
type OverflowError struct {
	Err    error
	Offset int64
	Field  string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("flist: overflow in %s of record at %d: %s", e.Field, e.Offset, e.Err)
}

func (e *OverflowError) Unwrap() error {
	return e.Err
}

func NewOverflow(field string, offset int64, err error) error {
	return &OverflowError{Err: err, Offset: offset, Field: field}
}

// IsFatal returns a boolean indicating whether err poisons the decoding
// session it came from.
func IsFatal(err error) bool {
	var e *OverflowError
	return errors.As(err, &e)
}

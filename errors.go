package flist

import "github.com/kezhuw/flist/internal/errors"

var (
	ErrNameOverflow       = errors.ErrNameOverflow
	ErrLinkOverflow       = errors.ErrLinkOverflow
	ErrCorruptName        = errors.ErrCorruptName
	ErrPathTooLong        = errors.ErrPathTooLong // refused by encoder
	ErrUnsupportedVersion = errors.ErrUnsupportedVersion
	ErrCorruptSnapshot    = errors.ErrCorruptSnapshot
	ErrIncompleteFrame    = errors.ErrIncompleteFrame
	ErrMismatchChecksum   = errors.ErrMismatchChecksum
)

// OverflowError reports malformed length fields in a list stream.
type OverflowError = errors.OverflowError

// IsFatal returns a boolean indicating whether err ended decoding of the
// list it came from.
func IsFatal(err error) bool {
	return errors.IsFatal(err)
}

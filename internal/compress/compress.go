// Package compress compresses encoded file lists stored in snapshots.
package compress

import (
	"errors"

	"github.com/golang/snappy"
)

type Type byte

const (
	NoCompression     Type = 0
	SnappyCompression Type = 1
)

var ErrUnsupportedCompression = errors.New("flist: unsupported compression")

func (t Type) String() string {
	switch t {
	case NoCompression:
		return "none"
	case SnappyCompression:
		return "snappy"
	default:
		return "unknown"
	}
}

// Decode decodes src into dst, which may be overwritten. With
// NoCompression the result is src itself.
func Decode(typ Type, dst, src []byte) ([]byte, error) {
	switch typ {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		return snappy.Decode(dst, src)
	default:
		return nil, ErrUnsupportedCompression
	}
}

// Encode encodes src into dst, which may be overwritten. With
// NoCompression the result is src itself.
func Encode(typ Type, dst, src []byte) ([]byte, error) {
	switch typ {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		return snappy.Encode(dst, src), nil
	default:
		return nil, ErrUnsupportedCompression
	}
}

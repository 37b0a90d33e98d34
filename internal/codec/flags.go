// Package codec encodes file records into the delta compressed list stream
// and decodes them back.
package codec

// Bits of the flags byte leading every record. A zero flags byte ends the
// list.
const (
	FlagDelete = 1 << iota
	SameMode
	SameRdev
	SameUID
	SameGID
	SameName
	LongName
	SameTime
)

const (
	// MaxPathLen bounds full paths, including the NUL a C peer appends.
	MaxPathLen = 1024

	// MaxLinkLen bounds symlink targets.
	MaxLinkLen = 4096

	maxSharedName = 255
	maxShortName  = 255

	longIntMarker = -1
)

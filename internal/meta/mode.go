package meta

import "io/fs"

// Mode bits as they travel on the wire. They are the traditional Unix
// values; a peer whose native symlink bits differ translates on both ends.
const (
	wireTypeMask = 0170000
	wireSocket   = 0140000
	wireSymlink  = 0120000
	wireRegular  = 0100000
	wireBlock    = 0060000
	wireDir      = 0040000
	wireChar     = 0020000
	wireFIFO     = 0010000

	wireSetuid = 04000
	wireSetgid = 02000
	wireSticky = 01000
)

// ToWireMode converts an in-memory mode to its wire encoding.
func ToWireMode(m fs.FileMode) int32 {
	w := int32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		w |= wireSetuid
	}
	if m&fs.ModeSetgid != 0 {
		w |= wireSetgid
	}
	if m&fs.ModeSticky != 0 {
		w |= wireSticky
	}
	switch {
	case m&fs.ModeDir != 0:
		w |= wireDir
	case m&fs.ModeSymlink != 0:
		w |= wireSymlink
	case m&fs.ModeNamedPipe != 0:
		w |= wireFIFO
	case m&fs.ModeSocket != 0:
		w |= wireSocket
	case m&fs.ModeCharDevice != 0:
		w |= wireChar
	case m&fs.ModeDevice != 0:
		w |= wireBlock
	case m&fs.ModeIrregular != 0:
		// No type bits.
	default:
		w |= wireRegular
	}
	return w
}

// FromWireMode converts a wire mode to the in-memory encoding. Type bits
// with no io/fs counterpart decode as fs.ModeIrregular.
func FromWireMode(w int32) fs.FileMode {
	m := fs.FileMode(w) & fs.ModePerm
	if w&wireSetuid != 0 {
		m |= fs.ModeSetuid
	}
	if w&wireSetgid != 0 {
		m |= fs.ModeSetgid
	}
	if w&wireSticky != 0 {
		m |= fs.ModeSticky
	}
	switch w & wireTypeMask {
	case wireRegular:
	case wireDir:
		m |= fs.ModeDir
	case wireSymlink:
		m |= fs.ModeSymlink
	case wireFIFO:
		m |= fs.ModeNamedPipe
	case wireSocket:
		m |= fs.ModeSocket
	case wireChar:
		m |= fs.ModeDevice | fs.ModeCharDevice
	case wireBlock:
		m |= fs.ModeDevice
	default:
		m |= fs.ModeIrregular
	}
	return m
}

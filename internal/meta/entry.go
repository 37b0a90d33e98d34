package meta

// Kind tags an Entry as holding a live File or being a tombstone. The zero
// Kind is Tombstone, so a zero Entry holds nothing.
type Kind uint8

const (
	Tombstone Kind = iota
	Live
)

func (k Kind) String() string {
	switch k {
	case Live:
		return "live"
	case Tombstone:
		return "tombstone"
	}
	return "unknown"
}

// Entry is one slot of a file list. A tombstone holds no File. Decoding
// never creates tombstones; curation does, and moves them after every live
// entry, so indexes of live entries may change across curation.
type Entry struct {
	Kind Kind
	File *File
}

// LiveEntry wraps f in a live Entry.
func LiveEntry(f *File) Entry {
	return Entry{Kind: Live, File: f}
}

// Live reports whether e holds a File. A Live entry with a nil File is not
// live.
func (e Entry) Live() bool {
	return e.Kind == Live && e.File != nil
}

// FullPath returns the full path of a live entry. ok is false for
// tombstones.
func (e Entry) FullPath() (path string, ok bool) {
	if !e.Live() {
		return "", false
	}
	return e.File.FullPath(), true
}

package meta

import "github.com/kezhuw/flist/internal/names"

// Compare orders a and b by full path, comparing bytes as unsigned values.
// Records sharing a Dir handle are ordered by basename without building
// their full paths.
func Compare(a, b *File) int {
	if a.Dir == b.Dir {
		return names.Compare(a.Base, b.Base)
	}
	return names.Compare(a.FullPath(), b.FullPath())
}

// CompareEntries orders live entries by Compare and places tombstones after
// every live entry. Tombstones are equal to each other.
func CompareEntries(a, b Entry) int {
	switch {
	case !a.Live() && !b.Live():
		return 0
	case !a.Live():
		return 1
	case !b.Live():
		return -1
	}
	return Compare(a.File, b.File)
}

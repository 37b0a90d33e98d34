// Package meta defines file list records and the order peers agree on.
package meta

import (
	"fmt"
	"io/fs"

	"github.com/kezhuw/flist/internal/names"
)

// Dir is a directory name shared by every record decoded consecutively from
// that directory. Records compare Dir handles by identity before falling
// back to names.
type Dir struct {
	Name string
}

func NewDir(name string) *Dir {
	return &Dir{Name: name}
}

// File is the metadata of one filesystem entry as carried in a file list.
// Fields a list is not configured to carry are zero after decoding.
type File struct {
	// Flags is the flags byte the record arrived with. It is informational;
	// encoding recomputes flags from scratch.
	Flags uint8

	// ModTime is in seconds since the Unix epoch. It travels as a 32-bit
	// integer.
	ModTime int64
	Length  int64
	Mode    fs.FileMode

	UID uint32
	GID uint32

	// Rdev is the device number of a device special file.
	Rdev int64

	// Dev and Inode identify a regular file for hard link detection.
	Dev   int64
	Inode int64

	Dir  *Dir
	Base string
	Link string
	Sum  []byte
}

// DirName returns the directory name of f, or "" if it has none.
func (f *File) DirName() string {
	if f.Dir == nil {
		return ""
	}
	return f.Dir.Name
}

// FullPath returns dir + "/" + base, or base if f has no directory, as a new
// string owned by the caller. It returns "" for a nil File.
func (f *File) FullPath() string {
	switch {
	case f == nil:
		return ""
	case f.Dir == nil:
		return f.Base
	}
	return names.Join(f.Dir.Name, f.Base)
}

func (f *File) IsDir() bool {
	return f.Mode.IsDir()
}

func (f *File) IsRegular() bool {
	return f.Mode.IsRegular()
}

func (f *File) IsSymlink() bool {
	return f.Mode&fs.ModeSymlink != 0
}

// IsDevice reports whether f is a character or block device, a socket or a
// named pipe, the kinds of files that carry Rdev.
func (f *File) IsDevice() bool {
	return f.Mode&(fs.ModeDevice|fs.ModeCharDevice|fs.ModeSocket|fs.ModeNamedPipe) != 0
}

// GoString implements fmt.GoStringer.
func (f *File) GoString() string {
	return fmt.Sprintf("&meta.File{Path: %q, Mode: %v, Length: %d, ModTime: %d}", f.FullPath(), f.Mode, f.Length, f.ModTime)
}

package flist

import (
	"io"

	"github.com/kezhuw/flist/internal/file"
)

// SnapshotFile defines methods on one open snapshot file.
type SnapshotFile interface {
	io.Reader
	io.Writer
	io.Closer
	Sync() error
}

// FileSystem defines methods for hierarchical file storage snapshots are
// kept in.
type FileSystem interface {
	// Open opens a file using specified flag.
	Open(name string, flag int) (SnapshotFile, error)

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string) error

	// Remove removes named file or directory.
	Remove(name string) error

	// Rename renames(moves) oldpath to newpath. If newpath already exists,
	// Rename replaces it.
	Rename(oldpath, newpath string) error
}

type internalFileSystem struct {
	file.FileSystem
}

func (fs internalFileSystem) Open(name string, flag int) (SnapshotFile, error) {
	return fs.FileSystem.Open(name, flag)
}

type wrappedFileSystem struct {
	FileSystem
}

func (fs wrappedFileSystem) Open(name string, flag int) (file.File, error) {
	return fs.FileSystem.Open(name, flag)
}

// DefaultFileSystem is the file system provided by os package.
var DefaultFileSystem FileSystem = internalFileSystem{file.DefaultFileSystem}

func convertFileSystem(fs FileSystem) file.FileSystem {
	switch fs := fs.(type) {
	case nil:
		return file.DefaultFileSystem
	case internalFileSystem:
		return fs.FileSystem
	}
	return wrappedFileSystem{fs}
}

var _ FileSystem = internalFileSystem{}
var _ file.FileSystem = wrappedFileSystem{}

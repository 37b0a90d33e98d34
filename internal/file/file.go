// Package file abstracts the storage snapshots are written to.
package file

import (
	"io"
	"os"
)

type File interface {
	io.Reader
	io.Writer
	io.Closer
	Sync() error
}

// FileSystem defines methods for hierarchical file storage.
type FileSystem interface {
	// Open opens a file using specified flag.
	Open(name string, flag int) (File, error)

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string) error

	// Remove removes named file or directory.
	Remove(name string) error

	// Rename renames(moves) oldpath to newpath. If newpath already exists,
	// Rename replaces it.
	Rename(oldpath, newpath string) error
}

type osFileSystem struct{}

func (osFileSystem) Open(name string, flag int) (File, error) {
	return os.OpenFile(name, flag, 0644)
}

func (osFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (osFileSystem) Remove(name string) error {
	return os.Remove(name)
}

func (osFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

var DefaultFileSystem FileSystem = osFileSystem{}

// WriteFile writes data to name.tmp, syncs it and renames it to name, so
// readers see either the old content or the new content in full.
func WriteFile(fs FileSystem, name string, write func(w io.Writer) error) (err error) {
	tmp := name + ".tmp"
	f, err := fs.Open(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fs.Remove(tmp)
		}
	}()
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return fs.Rename(tmp, name)
}

package file_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kezhuw/flist/internal/file"
)

func TestWriteFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "flist-file")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fs := file.DefaultFileSystem
	name := filepath.Join(dir, "sub", "list")
	if err := fs.MkdirAll(filepath.Dir(name)); err != nil {
		t.Fatal(err)
	}
	for _, content := range []string{"first", "second"} {
		err := file.WriteFile(fs, name, func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		})
		if err != nil {
			t.Fatalf("write %q: %s", content, err)
		}
		got, err := os.ReadFile(name)
		if err != nil || string(got) != content {
			t.Fatalf("got %q, %v want %q", got, err, content)
		}
	}

	werr := errors.New("encoding failure")
	err = file.WriteFile(fs, name, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return werr
	})
	if err != werr {
		t.Fatalf("got err=%v want=%v", err, werr)
	}
	if got, _ := os.ReadFile(name); string(got) != "second" {
		t.Fatalf("failed write clobbered file: %q", got)
	}
	if _, err := os.Stat(name + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind: %v", err)
	}
}

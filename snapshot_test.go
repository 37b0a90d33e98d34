package flist_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kezhuw/flist"
)

type SnapshotTestSuite struct {
	suite.Suite

	dir  string
	name string
	list *flist.List
}

func (suite *SnapshotTestSuite) SetupTest() {
	dir, err := os.MkdirTemp("", "flist_test_")
	suite.Require().NoError(err, "fail to create tmp directory")
	suite.dir = dir
	suite.name = filepath.Join(dir, "snapshots", "list")

	opts := fullOptions
	l, err := flist.New(&opts)
	suite.Require().NoError(err)
	for _, f := range sampleFiles() {
		l.Append(f)
	}
	l.Append(newFile("README", 0644, 1<<33))
	suite.Require().Equal(1, l.Curate(false))
	suite.list = l
}

func (suite *SnapshotTestSuite) TearDownTest() {
	os.RemoveAll(suite.dir)
}

func (suite *SnapshotTestSuite) TestSaveLoad() {
	for _, compression := range []flist.CompressionType{flist.DefaultCompression, flist.NoCompression, flist.SnappyCompression} {
		opts := fullOptions
		opts.Compression = compression
		l, err := flist.New(&opts)
		suite.Require().NoError(err)
		for _, e := range suite.list.Entries() {
			if e.Live() {
				l.Append(e.File)
			}
		}
		suite.Require().NoError(flist.SaveSnapshot(nil, suite.name, l))

		loaded, err := flist.LoadSnapshot(flist.DefaultFileSystem, suite.name, nil)
		suite.Require().NoError(err, "compression=%d", compression)
		suite.True(loaded.Done())
		suite.Equal(viewFiles(l.Files()), viewFiles(loaded.Files()), "compression=%d", compression)

		_, err = os.Stat(suite.name + ".tmp")
		suite.True(os.IsNotExist(err), "temporary file left behind")
	}
}

func (suite *SnapshotTestSuite) TestTombstonesNotSaved() {
	suite.Require().NoError(flist.SaveSnapshot(nil, suite.name, suite.list))
	loaded, err := flist.LoadSnapshot(nil, suite.name, nil)
	suite.Require().NoError(err)
	suite.Equal(suite.list.Len()-1, loaded.Len())
	suite.Equal(viewFiles(suite.list.Files()), viewFiles(loaded.Files()))
	suite.NotEqual(-1, loaded.Lookup("etc/passwd"))
}

func (suite *SnapshotTestSuite) TestCorrupt() {
	suite.Require().NoError(flist.SaveSnapshot(nil, suite.name, suite.list))
	data, err := os.ReadFile(suite.name)
	suite.Require().NoError(err)

	corrupted := append([]byte(nil), data...)
	corrupted[len(corrupted)-3] ^= 0x01
	suite.Require().NoError(os.WriteFile(suite.name, corrupted, 0644))
	_, err = flist.LoadSnapshot(nil, suite.name, nil)
	suite.Equal(flist.ErrMismatchChecksum, err)

	suite.Require().NoError(os.WriteFile(suite.name, data[:len(data)-1], 0644))
	_, err = flist.LoadSnapshot(nil, suite.name, nil)
	suite.Equal(flist.ErrIncompleteFrame, err)

	suite.Require().NoError(os.WriteFile(suite.name, nil, 0644))
	_, err = flist.LoadSnapshot(nil, suite.name, nil)
	suite.True(errors.Is(err, flist.ErrCorruptSnapshot), "got %v", err)

	_, err = flist.LoadSnapshot(nil, filepath.Join(suite.dir, "missing"), nil)
	suite.True(os.IsNotExist(err), "got %v", err)
}

func (suite *SnapshotTestSuite) TestHeaderOptionsWin() {
	suite.Require().NoError(flist.SaveSnapshot(nil, suite.name, suite.list))
	loaded, err := flist.LoadSnapshot(nil, suite.name, &flist.Options{ProtocolVersion: 20})
	suite.Require().NoError(err)
	suite.Equal(viewFiles(suite.list.Files()), viewFiles(loaded.Files()))
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}

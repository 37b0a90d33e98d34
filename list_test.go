package flist_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kezhuw/flist"
)

func newFile(path string, mode fs.FileMode, length int64) *flist.File {
	f := &flist.File{Mode: mode, Length: length, ModTime: 1600000000}
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		f.Dir = flist.NewDir(path[:i])
		f.Base = path[i+1:]
	} else {
		f.Base = path
	}
	return f
}

type fileView struct {
	Path    string
	Mode    fs.FileMode
	Length  int64
	ModTime int64
	UID     uint32
	GID     uint32
	Rdev    int64
	Dev     int64
	Inode   int64
	Link    string
	Sum     []byte
}

func viewFiles(files []*flist.File) []fileView {
	views := make([]fileView, len(files))
	for i, f := range files {
		views[i] = fileView{
			Path:    f.FullPath(),
			Mode:    f.Mode,
			Length:  f.Length,
			ModTime: f.ModTime,
			UID:     f.UID,
			GID:     f.GID,
			Rdev:    f.Rdev,
			Dev:     f.Dev,
			Inode:   f.Inode,
			Link:    f.Link,
			Sum:     f.Sum,
		}
	}
	return views
}

func sampleFiles() []*flist.File {
	sum := []byte("0123456789abcdef")
	files := []*flist.File{
		newFile(".", fs.ModeDir|0755, 0),
		newFile("README", 0644, 1<<33),
		newFile("bin/busybox", 0755, 800000),
		newFile("bin/sh", fs.ModeSymlink|0777, 7),
		newFile("dev/null", fs.ModeDevice|fs.ModeCharDevice|0666, 0),
		newFile("dev/sda", fs.ModeDevice|0660, 0),
		newFile("etc/passwd", 0644, 1200),
		newFile("etc/shadow", 0600, 900),
		newFile("usr/share/doc/"+strings.Repeat("x", 300), 0644, 3),
	}
	files[1].Dev, files[1].Inode = 1<<40, 12
	files[2].UID, files[2].GID = 0, 0
	files[3].Link = "busybox"
	files[4].Rdev = 0x103
	files[5].Rdev, files[5].GID = 0x800, 6
	files[6].UID, files[6].GID = 0, 0
	files[7].GID = 42
	for _, f := range files {
		f.Sum = sum
	}
	return files
}

var fullOptions = flist.Options{
	PreserveUID:       true,
	PreserveGID:       true,
	PreserveDevices:   true,
	PreserveLinks:     true,
	PreserveHardLinks: true,
	AlwaysChecksum:    true,
}

type ListTestSuite struct {
	suite.Suite

	registry *prometheus.Registry
	metrics  *flist.Metrics
	logs     *observer.ObservedLogs
	opts     flist.Options

	files  []*flist.File
	stream []byte
}

func (suite *ListTestSuite) SetupTest() {
	core, logs := observer.New(zapcore.DebugLevel)
	suite.registry = prometheus.NewRegistry()
	suite.metrics = flist.NewMetrics(suite.registry)
	suite.logs = logs
	suite.opts = fullOptions
	suite.opts.Metrics = suite.metrics
	suite.opts.Logger = flist.ZapLogger(zap.New(core))

	suite.files = sampleFiles()
	l := suite.newList()
	for _, f := range suite.files {
		suite.Require().NoError(l.Encode(f))
	}
	l.EncodeEnd()
	suite.stream = append([]byte(nil), l.Output()...)
}

func (suite *ListTestSuite) newList() *flist.List {
	opts := suite.opts
	l, err := flist.New(&opts)
	suite.Require().NoError(err)
	return l
}

func (suite *ListTestSuite) TestRoundTrip() {
	l := suite.newList()
	n, err := l.Decode(suite.stream)
	suite.Require().NoError(err)
	suite.Equal(len(suite.stream), n)
	suite.True(l.Done())
	suite.Equal(viewFiles(suite.files), viewFiles(l.Files()))
}

func (suite *ListTestSuite) TestEncodeAll() {
	l := suite.newList()
	for _, f := range suite.files {
		l.Append(f)
	}
	suite.Require().NoError(l.EncodeAll())
	suite.Equal(suite.stream, l.Output())

	// The session starts over, so encoding twice gives the same stream.
	suite.Require().NoError(l.EncodeAll())
	suite.Equal(suite.stream, l.Output())

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	suite.Require().NoError(err)
	suite.Equal(int64(len(suite.stream)), n)
	suite.Equal(suite.stream, buf.Bytes())
	suite.Empty(l.Output())
}

func (suite *ListTestSuite) TestEncodeRefusesLongPath() {
	l := suite.newList()
	err := l.Encode(newFile(strings.Repeat("p", flist.MaxPathLen), 0644, 0))
	suite.Equal(flist.ErrPathTooLong, err)
	suite.Equal(0, l.Len())
	suite.Empty(l.Output())
}

func (suite *ListTestSuite) TestResumeAtEverySplit() {
	want := viewFiles(suite.files)
	for split := 0; split <= len(suite.stream); split++ {
		l := suite.newList()
		n1, err := l.Decode(suite.stream[:split])
		suite.Require().NoError(err, "split=%d", split)
		suite.Require().True(n1 <= split, "split=%d consumed %d", split, n1)
		if !l.Done() {
			n2, err := l.Decode(suite.stream[n1:])
			suite.Require().NoError(err, "split=%d", split)
			suite.Require().Equal(len(suite.stream), n1+n2, "split=%d", split)
		}
		suite.Require().True(l.Done(), "split=%d", split)
		suite.Require().Equal(want, viewFiles(l.Files()), "split=%d", split)
	}
}

func (suite *ListTestSuite) TestDecodeAfterDone() {
	l := suite.newList()
	_, err := l.Decode(suite.stream)
	suite.Require().NoError(err)
	n, err := l.Decode([]byte{0x9c, 1, 'x'})
	suite.NoError(err)
	suite.Equal(0, n)
	suite.Equal(len(suite.files), l.Len())
}

func (suite *ListTestSuite) TestFatalDecode() {
	l := suite.newList()
	first := suite.newList()
	suite.Require().NoError(first.Encode(suite.files[0]))
	valid := first.Output()

	stream := append(append([]byte(nil), valid...), flist.SameName|flist.LongName, 250, 0x84, 0x03, 0, 0)
	n, err := l.Decode(stream)
	suite.Equal(len(valid), n)
	suite.Require().Error(err)
	suite.True(flist.IsFatal(err))

	overflow, ok := err.(*flist.OverflowError)
	suite.Require().True(ok, "got %T", err)
	suite.Equal("name", overflow.Field)
	suite.Equal(int64(len(valid)), overflow.Offset)
	suite.Equal(flist.ErrNameOverflow, overflow.Err)

	suite.Equal(1, l.Len())
	suite.False(l.Done())
	n, again := l.Decode(stream[n:])
	suite.Equal(0, n)
	suite.Equal(err, again)
	suite.Equal(err, l.Err())

	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.DecodeFailures))
	suite.Equal(1, suite.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func (suite *ListTestSuite) TestMetrics() {
	l := suite.newList()
	half := len(suite.stream) / 2
	n, err := l.Decode(suite.stream[:half])
	suite.Require().NoError(err)
	_, err = l.Decode(suite.stream[n:])
	suite.Require().NoError(err)

	records := float64(len(suite.files))
	size := float64(len(suite.stream))
	suite.Equal(records, testutil.ToFloat64(suite.metrics.RecordsEncoded))
	suite.Equal(size, testutil.ToFloat64(suite.metrics.BytesEncoded))
	suite.Equal(records, testutil.ToFloat64(suite.metrics.RecordsDecoded))
	suite.Equal(size, testutil.ToFloat64(suite.metrics.BytesDecoded))
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.DecodeResumes))
	suite.Equal(float64(0), testutil.ToFloat64(suite.metrics.DecodeFailures))

	count, err := testutil.GatherAndCount(suite.registry)
	suite.Require().NoError(err)
	suite.Equal(7, count)
}

func (suite *ListTestSuite) TestRelease() {
	l := suite.newList()
	_, err := l.Decode(suite.stream)
	suite.Require().NoError(err)
	l.Release()
	suite.Equal(0, l.Len())
	suite.True(l.Done())
}

func TestListSuite(t *testing.T) {
	suite.Run(t, new(ListTestSuite))
}

func TestNewUnsupportedVersion(t *testing.T) {
	for _, version := range []int{-1, 14, 31, 100} {
		_, err := flist.New(&flist.Options{ProtocolVersion: version})
		require.Equal(t, flist.ErrUnsupportedVersion, err, "version=%d", version)
	}
	for _, version := range []int{0, flist.MinProtocolVersion, flist.MaxProtocolVersion} {
		_, err := flist.New(&flist.Options{ProtocolVersion: version})
		require.NoError(t, err, "version=%d", version)
	}
	_, err := flist.New(nil)
	require.NoError(t, err)
}

func TestAppendKeepsOrder(t *testing.T) {
	l, err := flist.New(nil)
	require.NoError(t, err)
	const n = 2500
	for i := 0; i < n; i++ {
		l.Append(&flist.File{Base: "f", Length: int64(i)})
	}
	require.Equal(t, n, l.Len())
	for i := 0; i < n; i++ {
		e := l.At(i)
		require.True(t, e.Live())
		require.Equal(t, int64(i), e.File.Length)
	}
}

package flist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kezhuw/flist/internal/codec"
	"github.com/kezhuw/flist/internal/compress"
	"github.com/kezhuw/flist/internal/endian"
	"github.com/kezhuw/flist/internal/errors"
	"github.com/kezhuw/flist/internal/file"
	"github.com/kezhuw/flist/internal/journal"
	"github.com/kezhuw/flist/internal/options"
)

// A snapshot file is two journal frames. The first is the header:
//
//	magic           [4]byte "FLST"
//	format version  byte
//	compression     byte
//	protocol        int32
//	option bits     byte
//	checksum length int32
//	file count      int32
//
// The second is the compressed list stream, terminator included.
const (
	snapshotMagic      = "FLST"
	snapshotVersion    = 1
	snapshotHeaderSize = 19
)

func corruptSnapshot(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errors.ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}

func encodeSnapshotHeader(opts *options.Options, count int) []byte {
	header := make([]byte, snapshotHeaderSize)
	copy(header, snapshotMagic)
	header[4] = snapshotVersion
	header[5] = byte(opts.Compression)
	endian.PutInt32(header[6:], int32(opts.ProtocolVersion))
	header[10] = opts.Bits()
	endian.PutInt32(header[11:], int32(opts.ChecksumLength))
	endian.PutInt32(header[15:], int32(count))
	return header
}

// decodeSnapshotHeader overwrites the wire options of opts with those of
// header and returns the file count.
func decodeSnapshotHeader(header []byte, opts *options.Options) (compress.Type, int, error) {
	switch {
	case len(header) != snapshotHeaderSize:
		return 0, 0, corruptSnapshot("header of %d bytes", len(header))
	case string(header[:4]) != snapshotMagic:
		return 0, 0, corruptSnapshot("bad magic %q", header[:4])
	case header[4] != snapshotVersion:
		return 0, 0, corruptSnapshot("unknown format version %d", header[4])
	}
	version := int(endian.Int32(header[6:]))
	if version < options.MinProtocolVersion || version > options.MaxProtocolVersion {
		return 0, 0, errors.ErrUnsupportedVersion
	}
	checksumLength := int(endian.Int32(header[11:]))
	count := int(endian.Int32(header[15:]))
	if checksumLength <= 0 || count < 0 {
		return 0, 0, corruptSnapshot("checksum length %d, file count %d", checksumLength, count)
	}
	opts.ProtocolVersion = version
	opts.SetBits(header[10])
	opts.ChecksumLength = checksumLength
	return compress.Type(header[5]), count, nil
}

// SaveSnapshot writes the live files of l, in order, to the named file. The
// file is replaced as a whole: it is written under a temporary name and
// renamed. A nil fs means DefaultFileSystem.
func SaveSnapshot(fs FileSystem, name string, l *List) error {
	ifs := convertFileSystem(fs)
	if dir := filepath.Dir(name); dir != "." {
		if err := ifs.MkdirAll(dir); err != nil {
			return err
		}
	}

	var buf codec.Buffer
	session := codec.NewSession(l.opts)
	count := 0
	for _, e := range l.entries {
		if !e.Live() {
			continue
		}
		if err := session.Encode(&buf, e.File); err != nil {
			return fmt.Errorf("snapshot %q: %w", e.File.FullPath(), err)
		}
		count++
	}
	session.EncodeEnd(&buf)
	payload, err := compress.Encode(l.opts.Compression, nil, buf.Bytes())
	if err != nil {
		return err
	}

	header := encodeSnapshotHeader(l.opts, count)
	err = file.WriteFile(ifs, name, func(w io.Writer) error {
		jw := journal.NewWriter(w)
		if err := jw.Write(header); err != nil {
			return err
		}
		return jw.Write(payload)
	})
	if err != nil {
		l.logger.Errorf("save snapshot %s: %s", name, err)
		return err
	}
	l.logger.Infof("saved snapshot %s: %d files, %d bytes of %s compressed list", name, count, len(payload), l.opts.Compression)
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot into a new list
// which has reached its terminator. The protocol version, preserve and
// checksum options are those recorded in the snapshot; the rest come from
// opts. A nil fs means DefaultFileSystem.
func LoadSnapshot(fs FileSystem, name string, opts *Options) (*List, error) {
	iopts, err := convertOptions(opts)
	if err != nil {
		return nil, err
	}
	f, err := convertFileSystem(fs).Open(name, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := journal.NewReader(f)
	header, err := r.ReadFrame(nil)
	switch {
	case err == io.EOF:
		return nil, corruptSnapshot("missing header")
	case err != nil:
		return nil, err
	}
	wanted := *iopts
	typ, count, err := decodeSnapshotHeader(header, iopts)
	if err != nil {
		return nil, err
	}
	if opts != nil && (wanted.ProtocolVersion != iopts.ProtocolVersion || wanted.Bits() != iopts.Bits()) {
		iopts.Logger.Warnf("snapshot %s overrides options: protocol %d, option bits %#x", name, iopts.ProtocolVersion, iopts.Bits())
	}

	payload, err := r.ReadFrame(nil)
	switch {
	case err == io.EOF:
		return nil, corruptSnapshot("missing list")
	case err != nil:
		return nil, err
	}
	data, err := compress.Decode(typ, nil, payload)
	if err != nil {
		return nil, corruptSnapshot("%s", err)
	}

	l := newList(iopts)
	n, err := l.Decode(data)
	switch {
	case err != nil:
		return nil, err
	case !l.Done():
		return nil, corruptSnapshot("unterminated list")
	case n != len(data):
		return nil, corruptSnapshot("%d bytes after list", len(data)-n)
	case l.Len() != count:
		return nil, corruptSnapshot("%d files, header says %d", l.Len(), count)
	}
	l.logger.Infof("loaded snapshot %s: %d files", name, count)
	return l, nil
}

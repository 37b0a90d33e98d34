package codec

import (
	"github.com/kezhuw/flist/internal/errors"
	"github.com/kezhuw/flist/internal/meta"
	"github.com/kezhuw/flist/internal/names"
	"github.com/kezhuw/flist/internal/options"
	"github.com/kezhuw/flist/internal/util"
)

// Decode decodes the record whose non-zero flags byte was just read from r.
//
// If r runs out before the record is complete, Decode returns
// errors.ErrExhausted and leaves the session untouched, so the record can be
// decoded again from its flags byte once more input is available. Length
// fields no peer could have produced give an *errors.OverflowError.
func (s *Session) Decode(r *Reader, flags byte) (_ *meta.File, err error) {
	defer util.CatchError(&err)
	start := r.StreamOffset() - 1

	l1 := 0
	if flags&SameName != 0 {
		l1 = int(r.readByte())
	}
	var l2 int64
	if flags&LongName != 0 {
		l2 = int64(r.readInt32())
	} else {
		l2 = int64(r.readByte())
	}
	switch {
	case l2 < 0 || int64(l1)+l2 >= MaxPathLen:
		return nil, errors.NewOverflow("name", start, errors.ErrNameOverflow)
	case l1 > len(s.lastName):
		return nil, errors.NewOverflow("name", start, errors.ErrCorruptName)
	}
	rawName := s.lastName[:l1] + string(r.next(int(l2)))

	f := &meta.File{Flags: flags}
	dir, base, hasDir := names.Split(names.Clean(rawName))
	if hasDir {
		if s.lastDir != nil && s.lastDir.Name == dir {
			f.Dir = s.lastDir
		} else {
			f.Dir = meta.NewDir(dir)
		}
	}
	f.Base = base

	version := s.opts.ProtocolVersion
	f.Length = r.readLongInt(version)
	if flags&SameTime != 0 {
		f.ModTime = s.lastTime
	} else {
		f.ModTime = int64(r.readInt32())
	}
	mode := s.lastMode
	if flags&SameMode == 0 {
		mode = r.readInt32()
	}
	f.Mode = meta.FromWireMode(mode)
	if s.opts.PreserveUID {
		if flags&SameUID != 0 {
			f.UID = s.lastUID
		} else {
			f.UID = uint32(r.readInt32())
		}
	}
	if s.opts.PreserveGID {
		if flags&SameGID != 0 {
			f.GID = s.lastGID
		} else {
			f.GID = uint32(r.readInt32())
		}
	}
	if s.carriesRdev(f) {
		if flags&SameRdev != 0 {
			f.Rdev = s.lastRdev
		} else {
			f.Rdev = int64(r.readInt32())
		}
	}
	if s.carriesLink(f) {
		n := r.readInt32()
		if n < 0 || n > MaxLinkLen {
			return nil, errors.NewOverflow("symlink", start, errors.ErrLinkOverflow)
		}
		f.Link = string(r.next(int(n)))
	}
	if s.carriesInode(f) {
		if version < options.LongDeviceVersion {
			f.Dev = int64(r.readInt32())
			f.Inode = int64(r.readInt32())
		} else {
			f.Dev = r.readLongInt(version)
			f.Inode = r.readLongInt(version)
		}
	}
	if n := s.opts.ChecksumSize(); n > 0 {
		f.Sum = util.DupBytes(r.next(n))
	}

	// Every field is in; only now may the session move on.
	s.lastName = rawName
	s.lastMode = mode
	s.lastRdev = f.Rdev
	s.lastUID = f.UID
	s.lastGID = f.GID
	s.lastTime = f.ModTime
	if f.Dir != nil {
		s.lastDir = f.Dir
	}
	return f, nil
}

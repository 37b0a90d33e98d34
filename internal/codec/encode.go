package codec

import (
	"github.com/kezhuw/flist/internal/errors"
	"github.com/kezhuw/flist/internal/meta"
	"github.com/kezhuw/flist/internal/names"
	"github.com/kezhuw/flist/internal/options"
)

// EncodeEnd writes the terminator ending the list.
func (s *Session) EncodeEnd(buf *Buffer) {
	buf.writeByte(0)
}

// Encode appends f to buf, omitting every field equal to the previous
// record's. A nil f writes the terminator. Nothing is written and the
// session is left unchanged if f can not be encoded.
func (s *Session) Encode(buf *Buffer, f *meta.File) error {
	if f == nil {
		s.EncodeEnd(buf)
		return nil
	}
	// Fields after the mode follow the mode as the receiver reads it, with
	// any extra type bits dropped.
	mode := meta.ToWireMode(f.Mode)
	sent := *f
	sent.Mode = meta.FromWireMode(mode)

	name := f.FullPath()
	if len(name) >= MaxPathLen || (s.carriesLink(&sent) && len(f.Link) > MaxLinkLen) {
		return errors.ErrPathTooLong
	}

	// Fields the receiver does not read are zero on its side, and so is
	// its view of the previous record's fields.
	var uid, gid uint32
	var rdev int64
	if s.opts.PreserveUID {
		uid = f.UID
	}
	if s.opts.PreserveGID {
		gid = f.GID
	}
	if s.carriesRdev(&sent) {
		rdev = f.Rdev
	}

	var flags byte
	if mode == s.lastMode {
		flags |= SameMode
	}
	if rdev == s.lastRdev {
		flags |= SameRdev
	}
	if uid == s.lastUID {
		flags |= SameUID
	}
	if gid == s.lastGID {
		flags |= SameGID
	}
	if f.ModTime == s.lastTime {
		flags |= SameTime
	}

	l1 := names.SharedPrefixLen(name, s.lastName, maxSharedName)
	l2 := len(name) - l1
	if l1 > 0 {
		flags |= SameName
	}
	if l2 > maxShortName {
		flags |= LongName
	}

	// A zero flags byte would end the list on the other side.
	if flags == 0 {
		if sent.IsDir() {
			flags |= LongName
		} else {
			flags |= FlagDelete
		}
	}

	buf.writeByte(flags)
	if flags&SameName != 0 {
		buf.writeByte(byte(l1))
	}
	if flags&LongName != 0 {
		buf.writeInt32(int32(l2))
	} else {
		buf.writeByte(byte(l2))
	}
	buf.writeString(name[l1:])

	version := s.opts.ProtocolVersion
	buf.writeLongInt(f.Length, version)
	if flags&SameTime == 0 {
		buf.writeInt32(int32(f.ModTime))
	}
	if flags&SameMode == 0 {
		buf.writeInt32(mode)
	}
	if s.opts.PreserveUID && flags&SameUID == 0 {
		buf.writeInt32(int32(uid))
	}
	if s.opts.PreserveGID && flags&SameGID == 0 {
		buf.writeInt32(int32(gid))
	}
	if s.carriesRdev(&sent) && flags&SameRdev == 0 {
		buf.writeInt32(int32(rdev))
	}
	if s.carriesLink(&sent) {
		buf.writeInt32(int32(len(f.Link)))
		buf.writeString(f.Link)
	}
	if s.carriesInode(&sent) {
		if version < options.LongDeviceVersion {
			buf.writeInt32(int32(f.Dev))
			buf.writeInt32(int32(f.Inode))
		} else {
			buf.writeLongInt(f.Dev, version)
			buf.writeLongInt(f.Inode, version)
		}
	}
	if n := s.opts.ChecksumSize(); n > 0 {
		buf.writeBytes(f.Sum, n)
	}

	s.lastMode = mode
	s.lastRdev = rdev
	s.lastUID = uid
	s.lastGID = gid
	s.lastTime = f.ModTime
	s.lastName = name
	return nil
}

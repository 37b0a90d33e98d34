package codec

import (
	"github.com/kezhuw/flist/internal/meta"
	"github.com/kezhuw/flist/internal/options"
)

// Session is the rolling state both ends of a list transfer keep in step:
// the fields of the last record sent or received, against which the next
// record is delta encoded.
//
// A session encodes or decodes, never both, and is not safe for concurrent
// use.
type Session struct {
	opts *options.Options

	// lastMode is kept in wire form: the zero state must mean "no type"
	// as it does for every peer, not fs.FileMode's regular file.
	lastMode int32
	lastRdev int64
	lastUID  uint32
	lastGID  uint32
	lastTime int64

	// lastName is the previous full name exactly as it was sent, before
	// any cleaning, since the sender computes shared prefixes against it.
	lastName string

	// lastDir is the handle new records from the same directory share.
	lastDir *meta.Dir
}

func NewSession(opts *options.Options) *Session {
	return &Session{opts: opts}
}

func (s *Session) Options() *options.Options {
	return s.opts
}

func (s *Session) carriesRdev(f *meta.File) bool {
	return s.opts.PreserveDevices && f.IsDevice()
}

func (s *Session) carriesLink(f *meta.File) bool {
	return s.opts.PreserveLinks && f.IsSymlink()
}

func (s *Session) carriesInode(f *meta.File) bool {
	return s.opts.PreserveHardLinks && f.IsRegular()
}

package flist

import (
	"github.com/kezhuw/flist/internal/compress"
	"github.com/kezhuw/flist/internal/errors"
	"github.com/kezhuw/flist/internal/logger"
	"github.com/kezhuw/flist/internal/options"
)

// CompressionType defines compression methods to compress snapshots.
type CompressionType int

const (
	DefaultCompression CompressionType = iota // Points to SnappyCompression
	NoCompression
	SnappyCompression
)

// Options configures a List. Both peers of a transfer must agree on every
// field affecting the wire format.
type Options struct {
	// ProtocolVersion is the protocol version negotiated with the peer. It
	// must be in [MinProtocolVersion, MaxProtocolVersion].
	//
	// The default value is ProtocolVersion.
	ProtocolVersion int

	// PreserveUID specifys whether owner ids are carried.
	PreserveUID bool

	// PreserveGID specifys whether group ids are carried.
	PreserveGID bool

	// PreserveDevices specifys whether device numbers of device special
	// files are carried.
	PreserveDevices bool

	// PreserveLinks specifys whether symlink targets are carried.
	PreserveLinks bool

	// PreserveHardLinks specifys whether device and inode numbers of
	// regular files are carried.
	PreserveHardLinks bool

	// AlwaysChecksum specifys whether every record carries a checksum.
	AlwaysChecksum bool

	// ChecksumLength is the number of checksum bytes carried from protocol
	// version 21. Older peers always get two bytes.
	//
	// The default value is 16.
	ChecksumLength int

	// Compression type used to compress snapshots.
	//
	// The default value points to SnappyCompression.
	Compression CompressionType

	// Logger specifys a place that progress and errors of the list are
	// written to.
	//
	// The default value is DiscardLogger.
	Logger Logger

	// Metrics specifys counters to update. The default value is nil,
	// which counts nothing.
	Metrics *Metrics
}

func (opts *Options) getProtocolVersion() int {
	if opts.ProtocolVersion == 0 {
		return options.ProtocolVersion
	}
	return opts.ProtocolVersion
}

func (opts *Options) getChecksumLength() int {
	if opts.ChecksumLength <= 0 {
		return options.DefaultChecksumLength
	}
	return opts.ChecksumLength
}

func (opts *Options) getCompression() compress.Type {
	switch opts.Compression {
	case NoCompression:
		return compress.NoCompression
	}
	return compress.SnappyCompression
}

func (opts *Options) getLogger() logger.Logger {
	if opts.Logger == nil {
		return logger.Discard
	}
	return opts.Logger
}

func convertOptions(opts *Options) (*options.Options, error) {
	if opts == nil {
		iopts := options.DefaultOptions
		return &iopts, nil
	}
	var iopts options.Options
	iopts.ProtocolVersion = opts.getProtocolVersion()
	if iopts.ProtocolVersion < options.MinProtocolVersion || iopts.ProtocolVersion > options.MaxProtocolVersion {
		return nil, errors.ErrUnsupportedVersion
	}
	iopts.PreserveUID = opts.PreserveUID
	iopts.PreserveGID = opts.PreserveGID
	iopts.PreserveDevices = opts.PreserveDevices
	iopts.PreserveLinks = opts.PreserveLinks
	iopts.PreserveHardLinks = opts.PreserveHardLinks
	iopts.AlwaysChecksum = opts.AlwaysChecksum
	iopts.ChecksumLength = opts.getChecksumLength()
	iopts.Compression = opts.getCompression()
	iopts.Logger = opts.getLogger()
	iopts.Metrics = opts.Metrics
	return &iopts, nil
}

package options

import (
	"github.com/kezhuw/flist/internal/compress"
	"github.com/kezhuw/flist/internal/logger"
	"github.com/kezhuw/flist/internal/metrics"
)

const (
	// ProtocolVersion is the newest protocol version this codec speaks.
	ProtocolVersion    = 26
	MinProtocolVersion = 15
	MaxProtocolVersion = 30

	DefaultChecksumLength = 16

	// Checksums shrink to two bytes for peers older than this version.
	fullChecksumVersion = 21
	// Device and inode numbers widen to long integers from this version.
	LongDeviceVersion = 26
	// Long integers below this version are plain 32-bit integers.
	LongIntVersion = 16
)

// Options configures one file list session. Both peers must agree on every
// field except Logger and Metrics.
type Options struct {
	ProtocolVersion int

	PreserveUID       bool
	PreserveGID       bool
	PreserveDevices   bool
	PreserveLinks     bool
	PreserveHardLinks bool

	AlwaysChecksum bool
	ChecksumLength int

	// Compression compresses snapshots.
	Compression compress.Type

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// ChecksumSize returns how many checksum bytes each record carries.
func (opts *Options) ChecksumSize() int {
	switch {
	case !opts.AlwaysChecksum:
		return 0
	case opts.ProtocolVersion < fullChecksumVersion:
		return 2
	}
	return opts.ChecksumLength
}

// Option bits persisted in snapshot headers.
const (
	bitUID = 1 << iota
	bitGID
	bitDevices
	bitLinks
	bitHardLinks
	bitChecksum
)

// Bits packs the preserve and checksum switches into one byte.
func (opts *Options) Bits() byte {
	var b byte
	set := func(on bool, bit byte) {
		if on {
			b |= bit
		}
	}
	set(opts.PreserveUID, bitUID)
	set(opts.PreserveGID, bitGID)
	set(opts.PreserveDevices, bitDevices)
	set(opts.PreserveLinks, bitLinks)
	set(opts.PreserveHardLinks, bitHardLinks)
	set(opts.AlwaysChecksum, bitChecksum)
	return b
}

// SetBits is the inverse of Bits.
func (opts *Options) SetBits(b byte) {
	opts.PreserveUID = b&bitUID != 0
	opts.PreserveGID = b&bitGID != 0
	opts.PreserveDevices = b&bitDevices != 0
	opts.PreserveLinks = b&bitLinks != 0
	opts.PreserveHardLinks = b&bitHardLinks != 0
	opts.AlwaysChecksum = b&bitChecksum != 0
}

var DefaultOptions = Options{
	ProtocolVersion: ProtocolVersion,
	ChecksumLength:  DefaultChecksumLength,
	Compression:     compress.SnappyCompression,
	Logger:          logger.Discard,
}

// Package flist implements the file list peers exchange when synchronizing
// directory trees: the records describing each file, the delta compressed
// stream they travel in, a decoder that resumes on partial input, and the
// sort and deduplicate pass giving both peers the same canonical order.
package flist

import (
	"github.com/kezhuw/flist/internal/codec"
	"github.com/kezhuw/flist/internal/meta"
	"github.com/kezhuw/flist/internal/names"
	"github.com/kezhuw/flist/internal/options"
)

type (
	// File is the metadata of one filesystem entry.
	File = meta.File

	// Dir is a directory name shared by records from the same directory.
	Dir = meta.Dir

	// Entry is one slot of a List, a live File or a tombstone.
	Entry = meta.Entry

	Kind = meta.Kind
)

const (
	Live      = meta.Live
	Tombstone = meta.Tombstone
)

// Bits of File.Flags.
const (
	FlagDelete = codec.FlagDelete
	SameMode   = codec.SameMode
	SameRdev   = codec.SameRdev
	SameUID    = codec.SameUID
	SameGID    = codec.SameGID
	SameName   = codec.SameName
	LongName   = codec.LongName
	SameTime   = codec.SameTime
)

const (
	ProtocolVersion    = options.ProtocolVersion
	MinProtocolVersion = options.MinProtocolVersion
	MaxProtocolVersion = options.MaxProtocolVersion

	DefaultChecksumLength = options.DefaultChecksumLength

	MaxPathLen = codec.MaxPathLen
	MaxLinkLen = codec.MaxLinkLen
)

func NewDir(name string) *Dir {
	return meta.NewDir(name)
}

// LiveEntry wraps f in a live Entry.
func LiveEntry(f *File) Entry {
	return meta.LiveEntry(f)
}

// Compare orders files the way curated lists are ordered: by full path,
// comparing bytes as unsigned values.
func Compare(a, b *File) int {
	return meta.Compare(a, b)
}

// CleanName normalizes name the way decoded names are normalized.
func CleanName(name string) string {
	return names.Clean(name)
}

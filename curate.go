package flist

import (
	"sort"
	"strings"

	"github.com/kezhuw/flist/internal/meta"
	"github.com/kezhuw/flist/internal/names"
)

type byPath []Entry

func (s byPath) Len() int           { return len(s) }
func (s byPath) Less(i, j int) bool { return meta.CompareEntries(s[i], s[j]) < 0 }
func (s byPath) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Curate sorts l by full path, comparing bytes as unsigned values, and turns
// every file whose path equals that of a file before it into a tombstone.
// Tombstones sort after all files. If stripRoot is true, a leading "/" is
// then removed from directory names and directories left empty are
// dropped.
//
// Curate returns the number of tombstones it created. Curating a curated
// list creates none and keeps its order, provided stripping did not mix
// absolute and relative directories.
func (l *List) Curate(stripRoot bool) int {
	sort.Stable(byPath(l.entries))

	tombstones := 0
	var last *File
	for i, e := range l.entries {
		if !e.Live() {
			continue
		}
		if last != nil && meta.Compare(last, e.File) == 0 {
			l.entries[i] = Entry{Kind: Tombstone}
			tombstones++
			continue
		}
		last = e.File
	}
	if tombstones != 0 {
		// Keep tombstones after all files as sorting would put them.
		live := 0
		for _, e := range l.entries {
			if e.Live() {
				l.entries[live] = e
				live++
			}
		}
		for i := live; i < len(l.entries); i++ {
			l.entries[i] = Entry{Kind: Tombstone}
		}
	}

	if stripRoot {
		l.stripRoot()
	}

	l.opts.Metrics.Curated(tombstones)
	if tombstones != 0 {
		l.logger.Infof("curated %d entries, %d duplicates removed", len(l.entries), tombstones)
	}
	return tombstones
}

// stripRoot rewrites each directory handle once, so files sharing a
// directory keep sharing it.
func (l *List) stripRoot() {
	stripped := make(map[*Dir]*Dir)
	for _, e := range l.entries {
		if !e.Live() || e.File.Dir == nil {
			continue
		}
		dir := e.File.Dir
		d, ok := stripped[dir]
		if !ok {
			d = dir
			switch name := strings.TrimPrefix(dir.Name, string(names.Separator)); {
			case name == "":
				d = nil
			case len(name) != len(dir.Name):
				d = meta.NewDir(name)
			}
			stripped[dir] = d
		}
		e.File.Dir = d
	}
}

// Find returns the index of the live entry with the same full path as
// target in a curated list, or -1.
func (l *List) Find(target *File) int {
	low, high := 0, len(l.entries)
	for low < high {
		mid := int(uint(low+high) >> 1)
		i := mid
		for i < high && !l.entries[i].Live() {
			i++
		}
		if i == high {
			high = mid
			continue
		}
		switch c := meta.Compare(l.entries[i].File, target); {
		case c == 0:
			return i
		case c < 0:
			low = i + 1
		default:
			high = mid
		}
	}
	return -1
}

// Lookup is like Find, taking a full path.
func (l *List) Lookup(path string) int {
	dir, base, ok := names.Split(path)
	target := &File{Base: base}
	if ok {
		target.Dir = meta.NewDir(dir)
	}
	return l.Find(target)
}

// Package names formats, splits and normalizes the slash separated names
// carried in file lists.
package names

import "strings"

// Separator separates directory components on the wire, whatever the host
// uses.
const Separator = '/'

// Join returns dir + "/" + base as a new string.
func Join(dir, base string) string {
	var b strings.Builder
	b.Grow(len(dir) + 1 + len(base))
	b.WriteString(dir)
	b.WriteByte(Separator)
	b.WriteString(base)
	return b.String()
}

// Split splits name at its final separator. ok is false if name has no
// separator, in which case dir is empty and base is name.
func Split(name string) (dir, base string, ok bool) {
	i := strings.LastIndexByte(name, Separator)
	if i < 0 {
		return "", name, false
	}
	return name[:i], name[i+1:], true
}

// Clean collapses "/./" and "//" to "/", drops a leading "./" and a trailing
// "/" until none of them is left. It does not resolve "..".
func Clean(name string) string {
	for modified := true; modified; {
		modified = false
		if i := strings.Index(name, "/./"); i >= 0 {
			name = name[:i] + name[i+2:]
			modified = true
		}
		if i := strings.Index(name, "//"); i >= 0 {
			name = name[:i] + name[i+1:]
			modified = true
		}
		if strings.HasPrefix(name, "./") {
			name = name[2:]
			modified = true
		}
		if n := len(name); n > 1 && name[n-1] == Separator {
			name = name[:n-1]
			modified = true
		}
	}
	return name
}

// Compare compares a and b byte by byte as unsigned values, so that peers
// agree on order regardless of the signedness of their native char type.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// SharedPrefixLen returns the length of the common prefix of a and b, but
// no more than max.
func SharedPrefixLen(a, b string, max int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if max < n {
		n = max
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

package flist

import (
	"io"

	"github.com/kezhuw/flist/internal/codec"
	"github.com/kezhuw/flist/internal/errors"
	"github.com/kezhuw/flist/internal/logger"
	"github.com/kezhuw/flist/internal/meta"
	"github.com/kezhuw/flist/internal/options"
)

// Lists grow by this many entries until they hold as many, then double.
const listGrowth = 1000

// List is an ordered sequence of file entries together with the session
// state its stream is encoded or decoded with.
//
// A List is not safe for concurrent use.
type List struct {
	opts    *options.Options
	logger  logger.Logger
	session *codec.Session
	entries []Entry

	out codec.Buffer

	// offset is the stream offset of the first byte Decode has not
	// consumed.
	offset int64
	done   bool
	err    error
}

// New creates an empty list. It fails with ErrUnsupportedVersion if the
// protocol version is out of range.
func New(opts *Options) (*List, error) {
	iopts, err := convertOptions(opts)
	if err != nil {
		return nil, err
	}
	return newList(iopts), nil
}

func newList(opts *options.Options) *List {
	if opts.ProtocolVersion < options.LongIntVersion {
		opts.Logger.Warnf("protocol version %d truncates lengths to 32 bits", opts.ProtocolVersion)
	}
	return &List{
		opts:    opts,
		logger:  opts.Logger,
		session: codec.NewSession(opts),
	}
}

// Len returns the number of entries, tombstones included.
func (l *List) Len() int {
	return len(l.entries)
}

// At returns the i'th entry.
func (l *List) At(i int) Entry {
	return l.entries[i]
}

// Entries returns the entries of l. The slice is shared with l until l
// grows or is curated.
func (l *List) Entries() []Entry {
	return l.entries
}

// Files returns the live files of l in order.
func (l *List) Files() []*File {
	files := make([]*File, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Live() {
			files = append(files, e.File)
		}
	}
	return files
}

// Append adds f to the end of l without encoding it.
func (l *List) Append(f *File) {
	l.append(meta.LiveEntry(f))
}

func (l *List) append(e Entry) {
	if n := len(l.entries); n == cap(l.entries) {
		c := cap(l.entries)
		if c < listGrowth {
			c += listGrowth
		} else {
			c *= 2
		}
		entries := make([]Entry, n, c)
		copy(entries, l.entries)
		l.entries = entries
	}
	l.entries = append(l.entries, e)
}

// Encode encodes f to the output and appends it to l. On error, nothing is
// written and l is unchanged.
func (l *List) Encode(f *File) error {
	n := l.out.Len()
	if err := l.session.Encode(&l.out, f); err != nil {
		l.logger.Warnf("skip %q: %s", f.FullPath(), err)
		return err
	}
	l.opts.Metrics.Encoded(1, l.out.Len()-n)
	l.Append(f)
	return nil
}

// EncodeEnd writes the terminator ending the list to the output.
func (l *List) EncodeEnd() {
	l.session.EncodeEnd(&l.out)
	l.opts.Metrics.Encoded(0, 1)
}

// EncodeAll encodes every live entry of l in order, then the terminator,
// replacing the output and starting a new session, as a receiver starts
// with one. It stops at the first file that can not be encoded.
func (l *List) EncodeAll() error {
	l.out.Reset()
	l.session = codec.NewSession(l.opts)
	records := 0
	for _, e := range l.entries {
		if !e.Live() {
			continue
		}
		if err := l.session.Encode(&l.out, e.File); err != nil {
			l.logger.Errorf("encode %q: %s", e.File.FullPath(), err)
			return err
		}
		records++
	}
	l.session.EncodeEnd(&l.out)
	l.opts.Metrics.Encoded(records, l.out.Len())
	return nil
}

// Output returns the encoded bytes not yet written out. The slice is valid
// until the next encoding call.
func (l *List) Output() []byte {
	return l.out.Bytes()
}

// WriteTo writes the pending output to w and discards what was written.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	return l.out.WriteTo(w)
}

// Decode decodes records from buf and appends them to l.
//
// It returns the number of leading bytes of buf making up complete records,
// including the terminator if it was reached. If buf ends in the middle of a
// record, Decode returns the offset of that record and a nil error; call it
// again with buf[n:] followed by more input. Malformed input gives an error
// for which IsFatal is true. The list keeps the records decoded before it
// but can not decode any further.
//
// Decode after the terminator was reached returns 0 and nil.
func (l *List) Decode(buf []byte) (n int, err error) {
	switch {
	case l.err != nil:
		return 0, l.err
	case l.done:
		return 0, nil
	}
	records := 0
	r := codec.NewReader(buf, l.offset)
loop:
	for {
		flags, ok := r.ReadFlags()
		switch {
		case !ok:
			break loop
		case flags == 0:
			l.done = true
			n = r.Offset()
			break loop
		}
		f, err := l.session.Decode(r, flags)
		switch err {
		case nil:
			l.append(meta.LiveEntry(f))
			n = r.Offset()
			records++
		case errors.ErrExhausted:
			break loop
		default:
			l.err = err
			l.offset += int64(n)
			l.opts.Metrics.Decoded(records, n)
			l.opts.Metrics.Failed()
			l.logger.Errorf("decode after %d records: %s", len(l.entries), err)
			return n, err
		}
	}
	l.offset += int64(n)
	l.opts.Metrics.Decoded(records, n)
	if l.done {
		l.logger.Debugf("decoded %d records in %d bytes", len(l.entries), l.offset)
	} else {
		l.opts.Metrics.Resumed()
		l.logger.Debugf("need more input at offset %d, %d bytes pending", l.offset, len(buf)-n)
	}
	return n, nil
}

// Done reports whether Decode has reached the terminator.
func (l *List) Done() bool {
	return l.done
}

// Err returns the error that ended decoding, if any.
func (l *List) Err() error {
	return l.err
}

// Release drops every entry, the session state and the output so their
// storage can be reclaimed. l must not encode or decode afterwards.
func (l *List) Release() {
	l.entries = nil
	l.session = codec.NewSession(l.opts)
	l.out = codec.Buffer{}
}

package bookmark

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Bookmark is a decoded bookmark. It is immutable; slices returned by its
// methods are copies.
type Bookmark struct {
	info    Info
	entries []Entry
	index   map[Key]int
	byName  map[string]int
	named   map[Key]Value // well-known keys whose value has the expected type
	nfc     bool
	diags   *types.DiagnosticReport
}

// Entry is one decoded TOC entry.
type Entry struct {
	Key Key
	// Name is the resolved name of a custom key, or the well-known name of
	// a standard key. It is empty for a custom key whose name record could
	// not be decoded.
	Name  string
	Value Value
}

// Info summarises the structure of a decoded bookmark.
type Info struct {
	Size       uint32 // declared total length
	Version    uint32
	DataOffset uint32
	TOCOffset  uint32 // relative to DataOffset
	TOCBlocks  int
	TOCEntries int // distinct keys in the TOC
	Entries    int // entries that decoded
}

// Info returns structural information about the bookmark.
func (b *Bookmark) Info() Info { return b.info }

// Diagnostics returns a copy of the faults recovered while decoding. It is
// never nil; changes to the copy do not affect the bookmark.
func (b *Bookmark) Diagnostics() *types.DiagnosticReport { return b.diags.Clone() }

// Len returns the number of decoded entries.
func (b *Bookmark) Len() int { return len(b.entries) }

// Get returns the decoded value of key k. Keys whose record could not be
// decoded are absent.
func (b *Bookmark) Get(k Key) (Value, bool) {
	i, ok := b.index[k]
	if !ok {
		return Value{}, false
	}
	return b.entries[i].Value, true
}

// GetCustom returns the value of the custom key called name.
func (b *Bookmark) GetCustom(name string) (Value, bool) {
	i, ok := b.byName[b.text(name)]
	if !ok {
		return Value{}, false
	}
	return b.entries[i].Value, true
}

// Keys returns the decoded keys in TOC order.
func (b *Bookmark) Keys() []Key {
	keys := make([]Key, len(b.entries))
	for i, e := range b.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the decoded entries in TOC order.
func (b *Bookmark) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Path returns the target path joined with the platform separator and
// rooted, e.g. "/Users/puffycid/Downloads/file.pkg".
func (b *Bookmark) Path() (string, bool) {
	parts, ok := b.PathComponents()
	if !ok {
		return "", false
	}
	sep := string(filepath.Separator)
	return sep + strings.Join(parts, sep), true
}

// text applies the configured Unicode normalisation to a decoded name.
func (b *Bookmark) text(s string) string {
	if b.nfc {
		return norm.NFC.String(s)
	}
	return s
}

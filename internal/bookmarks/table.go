// Package bookmarks owns the bookmark table and its TOML backing file.
package bookmarks

import (
	"errors"
	"sort"
	"strings"
	"unicode"
)

// Sentinel errors. Callers match them with errors.Is; the wrapping error
// carries the file or bookmark name involved.
var (
	ErrStoreUnreadable      = errors.New("bookmark store unreadable")
	ErrStoreCorrupt         = errors.New("bookmark store corrupt")
	ErrDuplicateName        = errors.New("bookmark already exists")
	ErrNotFound             = errors.New("bookmark not found")
	ErrInvalidName          = errors.New("invalid bookmark name")
	ErrUnparseableSelection = errors.New("cannot parse selected line")
)

// Bookmark is a named pointer to a directory.
type Bookmark struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// HasSpace reports whether the bookmark name contains a space, which rules it
// out as a shell alias identifier.
func (b Bookmark) HasSpace() bool { return HasSpace(b.Name) }

// HasSpace reports whether name contains a space.
func HasSpace(name string) bool { return strings.Contains(name, " ") }

// aliasUnsafe lists the characters a shell alias name cannot carry without
// quoting: whitespace, quotes, expansions, redirections and separators.
const aliasUnsafe = " \t'\"`$\\/=;&|<>(){}[]*?!#~"

// IsAliasName reports whether name can follow the alias prefix in an
// `alias name=...` statement as a plain word.
func IsAliasName(name string) bool {
	return name != "" &&
		!strings.ContainsAny(name, aliasUnsafe) &&
		strings.IndexFunc(name, unicode.IsControl) < 0
}

// Aliasable reports whether the bookmark gets a shell alias.
func (b Bookmark) Aliasable() bool { return IsAliasName(b.Name) }

// Table is an immutable name → path mapping iterated in name order.
// The zero value is an empty table.
type Table struct {
	entries map[string]string
}

// NewTable builds a table from bookmarks. Later entries win on duplicate names.
func NewTable(bs ...Bookmark) *Table {
	t := &Table{entries: make(map[string]string, len(bs))}
	for _, b := range bs {
		t.entries[b.Name] = b.Path
	}
	return t
}

// FromMap builds a table from a name → path map. The map is copied.
func FromMap(m map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(m))}
	for k, v := range m {
		t.entries[k] = v
	}
	return t
}

// Len returns the number of bookmarks.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Get returns the path stored under name.
func (t *Table) Get(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	p, ok := t.entries[name]
	return p, ok
}

// Has reports whether name is present. Comparison is exact and case-sensitive.
func (t *Table) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Names returns the bookmark names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.entries))
	for k := range t.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bookmarks returns the entries sorted by name.
func (t *Table) Bookmarks() []Bookmark {
	names := t.Names()
	out := make([]Bookmark, 0, len(names))
	for _, n := range names {
		out = append(out, Bookmark{Name: n, Path: t.entries[n]})
	}
	return out
}

// Map returns a copy of the underlying mapping.
func (t *Table) Map() map[string]string {
	out := make(map[string]string, t.Len())
	if t == nil {
		return out
	}
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// With returns a new table that also contains b.
func (t *Table) With(b Bookmark) *Table {
	m := t.Map()
	m[b.Name] = b.Path
	return &Table{entries: m}
}

// Without returns a new table with name removed.
func (t *Table) Without(name string) *Table {
	m := t.Map()
	delete(m, name)
	return &Table{entries: m}
}

// Equal reports whether both tables hold exactly the same entries.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	for _, b := range t.Bookmarks() {
		p, ok := o.Get(b.Name)
		if !ok || p != b.Path {
			return false
		}
	}
	return true
}

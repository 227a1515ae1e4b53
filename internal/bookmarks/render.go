package bookmarks

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderHuman returns the listing shown on the terminal and fed to the picker.
// With showPaths each line is the name padded to the widest name, then sep,
// then the path; otherwise each line is just the name.
//
// ParseSelection relies on this layout: the path is everything after the
// first sep on a line. A sep that also occurs inside a name makes a line
// ambiguous; that is a known limitation of the format.
func RenderHuman(t *Table, sep string, showPaths bool) string {
	bs := t.Bookmarks()
	var b strings.Builder
	if !showPaths {
		for _, bm := range bs {
			b.WriteString(bm.Name)
			b.WriteByte('\n')
		}
		return b.String()
	}

	width := 0
	for _, bm := range bs {
		if w := runewidth.StringWidth(bm.Name); w > width {
			width = w
		}
	}
	for _, bm := range bs {
		b.WriteString(runewidth.FillRight(bm.Name, width))
		b.WriteString(sep)
		b.WriteString(bm.Path)
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseSelection recovers the bookmark from one line of RenderHuman output.
// The path is the remainder after the first sep, taken verbatim; the name is
// the part before it with the alignment padding removed.
func ParseSelection(line, sep string) (name, path string, err error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if sep == "" {
		return "", "", fmt.Errorf("%w: empty separator", ErrUnparseableSelection)
	}
	head, tail, found := strings.Cut(line, sep)
	if !found || tail == "" {
		return "", "", fmt.Errorf("%w: %q", ErrUnparseableSelection, line)
	}
	return strings.TrimRight(head, " "), tail, nil
}

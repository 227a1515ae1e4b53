// Package aliases derives the shell alias script from the bookmark table.
package aliases

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/go-ports/bmark/internal/bookmarks"
)

// Line returns the alias statement for one bookmark. The alias body is
// single-quoted, so a ' in the path is written as '\''.
func Line(prefix string, b bookmarks.Bookmark) string {
	body := strings.ReplaceAll(Command(b.Path), "'", `'\''`)
	return fmt.Sprintf("alias %s%s='%s'", prefix, b.Name, body)
}

// doubleQuoted escapes the characters that keep their meaning inside a
// double-quoted shell word.
var doubleQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// Command returns the command the alias runs: cd into path, double-quoted.
func Command(path string) string {
	return `cd "` + doubleQuoted.Replace(path) + `"`
}

// Generate returns the alias script for t: one line per bookmark in name
// order. Bookmarks whose name is not a plain alias word, spaced names
// included, are skipped. The output depends only on t and prefix.
func Generate(t *bookmarks.Table, prefix string) string {
	var b strings.Builder
	for _, bm := range t.Bookmarks() {
		if !bm.Aliasable() {
			continue
		}
		b.WriteString(Line(prefix, bm))
		b.WriteByte('\n')
	}
	return b.String()
}

// Count returns how many bookmarks in t get an alias.
func Count(t *bookmarks.Table) int {
	n := 0
	for _, name := range t.Names() {
		if bookmarks.IsAliasName(name) {
			n++
		}
	}
	return n
}

// Write replaces the file at path with the generated script and returns the
// number of aliases written. A nil fs means the operating system filesystem.
func Write(fs afero.Fs, path string, t *bookmarks.Table, prefix string) (int, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := afero.WriteFile(fs, path, []byte(Generate(t, prefix)), 0o644); err != nil {
		return 0, fmt.Errorf("write alias file %s: %w", path, err)
	}
	return Count(t), nil
}

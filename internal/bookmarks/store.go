package bookmarks

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// Store reads and writes the bookmark file. It holds no table state: every
// operation starts from a freshly loaded table and the file is never locked,
// so concurrent writers race and the last one wins.
type Store struct {
	fs   afero.Fs
	path string
}

// AddResult is the outcome of a successful Add.
type AddResult struct {
	Table    *Table
	Name     string
	Path     string
	Warnings []string
}

// NewStore returns a Store backed by the file at path on fs.
// A nil fs means the operating system filesystem.
func NewStore(fs afero.Fs, path string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Init creates the data directory and an empty backing file when they are
// missing. It reports whether the file was created.
func (s *Store) Init() (bool, error) {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, fmt.Errorf("create data dir: %w", err)
	}
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if exists {
		return false, nil
	}
	if err := afero.WriteFile(s.fs, s.path, nil, 0o644); err != nil {
		return false, fmt.Errorf("create %s: %w", s.path, err)
	}
	return true, nil
}

// Load reads and parses the backing file.
func (s *Store) Load() (*Table, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreUnreadable, s.path, err)
	}
	return Parse(s.path, data)
}

// Parse decodes a bookmark document. name is only used in error messages.
func Parse(name string, data []byte) (*Table, error) {
	m := make(map[string]string)
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreCorrupt, name, err)
	}
	return &Table{entries: m}, nil
}

// Serialize renders the table as the TOML document stored on disk: one
// `name = "path"` line per bookmark in name order. Names that are not bare
// TOML keys, spaced names included, are written quoted.
func Serialize(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t.Map()); err != nil {
		return nil, fmt.Errorf("encode bookmarks: %w", err)
	}
	return buf.Bytes(), nil
}

// Save replaces the backing file with the serialized table.
func (s *Store) Save(t *Table) error {
	data, err := Serialize(t)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// DeriveName returns the bookmark name used when none is given: the final
// element of dir.
func DeriveName(dir string) (string, error) {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("%w: cannot derive a name from %q", ErrInvalidName, dir)
	}
	return base, nil
}

// ValidateName rejects names that cannot be stored and listed one per line.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
	}
	return nil
}

// Add records cwd under name, appending a single line to the backing file
// instead of rewriting it. An empty name is derived from cwd.
func (s *Store) Add(t *Table, name, cwd string) (*AddResult, error) {
	if name == "" {
		derived, err := DeriveName(cwd)
		if err != nil {
			return nil, err
		}
		name = derived
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if t.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	res := &AddResult{Name: name, Path: cwd}
	switch {
	case HasSpace(name):
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"bookmark %q contains a space and cannot be reached through a shell alias; added it anyway", name))
	case !IsAliasName(name):
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"bookmark %q contains characters not allowed in a shell alias name; added it without an alias", name))
	}

	record, err := Serialize(NewTable(Bookmark{Name: name, Path: cwd}))
	if err != nil {
		return nil, err
	}
	lead, err := s.missingTrailingNewline()
	if err != nil {
		return nil, err
	}
	if lead {
		record = append([]byte{'\n'}, record...)
	}

	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	if _, err := f.Write(record); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", s.path, err)
	}

	res.Table = t.With(Bookmark{Name: name, Path: cwd})
	return res, nil
}

// missingTrailingNewline reports whether the backing file is non-empty and
// does not end with a newline, as happens after some hand edits.
func (s *Store) missingTrailingNewline() (bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrStoreUnreadable, s.path, err)
	}
	return len(data) > 0 && data[len(data)-1] != '\n', nil
}

// Remove deletes name and rewrites the whole backing file from the remaining
// entries. The file is left untouched when name is absent.
func (s *Store) Remove(t *Table, name string) (*Table, error) {
	if !t.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	next := t.Without(name)
	if err := s.Save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Package service implements the bmark orchestrator that wires together
// configuration, the bookmark store, alias generation and the launcher.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/go-ports/bmark/internal/aliases"
	"github.com/go-ports/bmark/internal/bookmarks"
	"github.com/go-ports/bmark/internal/config"
	"github.com/go-ports/bmark/internal/launch"
)

var (
	// ErrNoBookmarks is returned by Open when there is nothing to choose from.
	ErrNoBookmarks = errors.New("no bookmarks saved yet")
	// ErrSettingsExist is returned by CreateSettings when the settings file is
	// already present and overwriting was not requested.
	ErrSettingsExist = errors.New("settings file already exists")
)

// Service orchestrates all bookmark operations for one invocation.
type Service struct {
	Config *config.Config

	fs       afero.Fs
	store    *bookmarks.Store
	launcher launch.Launcher
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithFS sets the filesystem used for the store, alias and settings files.
func WithFS(fs afero.Fs) Option { return func(s *Service) { s.fs = fs } }

// WithLauncher sets the runner for the editor, picker and terminal.
func WithLauncher(l launch.Launcher) Option { return func(s *Service) { s.launcher = l } }

// WithLogger sets the logger used for warnings.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// New returns a Service for the resolved configuration cfg. Without options
// it uses the operating system filesystem, a Shell launcher attached to the
// process streams and the default logger.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{Config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.launcher == nil {
		s.launcher = launch.NewShell()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.store = bookmarks.NewStore(s.fs, cfg.BookmarksFile())
	return s
}

// Store returns the bookmark store backing the service.
func (s *Service) Store() *bookmarks.Store { return s.store }

// ---------------------------------------------------------------------------
// Bookmark operations
// ---------------------------------------------------------------------------

// Add bookmarks cwd under name (derived from cwd when empty), creating the
// data directory and store on first use, then regenerates the alias file.
func (s *Service) Add(name, cwd string) (*bookmarks.AddResult, error) {
	created, err := s.store.Init()
	if err != nil {
		return nil, fmt.Errorf("service.Add: %w", err)
	}
	if created {
		s.logger.Debug("created bookmark store", "path", s.store.Path())
	}

	t, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.Add: %w", err)
	}
	res, err := s.store.Add(t, name, cwd)
	if err != nil {
		return nil, fmt.Errorf("service.Add: %w", err)
	}
	for _, w := range res.Warnings {
		s.logger.Warn(w)
	}

	if _, err := s.writeAliases(res.Table); err != nil {
		return nil, fmt.Errorf("service.Add: %w", err)
	}
	return res, nil
}

// Remove deletes the bookmark called name and regenerates the alias file.
func (s *Service) Remove(name string) error {
	t, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("service.Remove: %w", err)
	}
	next, err := s.store.Remove(t, name)
	if err != nil {
		return fmt.Errorf("service.Remove: %w", err)
	}
	if _, err := s.writeAliases(next); err != nil {
		return fmt.Errorf("service.Remove: %w", err)
	}
	return nil
}

// List returns the current bookmark table.
func (s *Service) List() (*bookmarks.Table, error) {
	t, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	return t, nil
}

// Listing returns the human listing. showPaths adds the path column even when
// the configuration does not ask for it.
func (s *Service) Listing(showPaths bool) (string, error) {
	t, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("service.Listing: %w", err)
	}
	return bookmarks.RenderHuman(t, s.Config.DisplaySep, showPaths || s.Config.ShowPaths), nil
}

// Update regenerates the alias file from the store and returns the number of
// aliases written.
func (s *Service) Update() (int, error) {
	t, err := s.store.Load()
	if err != nil {
		return 0, fmt.Errorf("service.Update: %w", err)
	}
	n, err := s.writeAliases(t)
	if err != nil {
		return 0, fmt.Errorf("service.Update: %w", err)
	}
	return n, nil
}

// Edit opens the store file in the configured editor and regenerates the
// alias file afterwards, whether or not the editor succeeded.
func (s *Service) Edit(ctx context.Context) (int, error) {
	if _, err := s.store.Init(); err != nil {
		return 0, fmt.Errorf("service.Edit: %w", err)
	}
	editErr := s.launcher.Edit(ctx, s.Config.EditorCmd, s.store.Path())
	if editErr != nil {
		s.logger.Warn("editor failed, regenerating aliases anyway", "err", editErr)
	}
	n, err := s.Update()
	if err := errors.Join(editErr, err); err != nil {
		return n, fmt.Errorf("service.Edit: %w", err)
	}
	return n, nil
}

// Open lets the user choose a bookmark through the picker and starts the
// terminal in its directory. The returned bookmark carries the path exactly
// as recovered from the picker's output line.
func (s *Service) Open(ctx context.Context) (*bookmarks.Bookmark, error) {
	t, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.Open: %w", err)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("service.Open: %w", ErrNoBookmarks)
	}

	sep := s.Config.DisplaySep
	for _, name := range t.Names() {
		if strings.Contains(name, sep) {
			s.logger.Warn("bookmark name contains the display separator; choosing it opens the wrong path",
				"name", name, "display_sep", sep)
		}
	}
	choice, err := s.launcher.Pick(ctx, s.Config.PickerCmd, splitLines(bookmarks.RenderHuman(t, sep, true)))
	if err != nil {
		return nil, fmt.Errorf("service.Open: %w", err)
	}
	name, path, err := bookmarks.ParseSelection(choice, sep)
	if err != nil {
		return nil, fmt.Errorf("service.Open: %w", err)
	}
	s.logger.Debug("opening bookmark", "name", name, "path", path)

	if err := s.launcher.OpenTerminal(ctx, s.Config.TerminalCmd, path); err != nil {
		return nil, fmt.Errorf("service.Open: %w", err)
	}
	return &bookmarks.Bookmark{Name: name, Path: path}, nil
}

// ---------------------------------------------------------------------------
// Settings file
// ---------------------------------------------------------------------------

// CreateSettings writes the compiled defaults, with the resolved data
// directory, to the settings file. An existing file is only replaced when
// force is set.
func (s *Service) CreateSettings(force bool) (string, error) {
	path := s.Config.SettingsFile
	if path == "" {
		return "", errors.New("service.CreateSettings: no settings file location")
	}
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("service.CreateSettings: %w", err)
	}
	if exists && !force {
		return "", fmt.Errorf("service.CreateSettings: %w: %s", ErrSettingsExist, path)
	}

	defaults := config.Default()
	defaults.DataDir = s.Config.DataDir
	data, err := config.Encode(defaults)
	if err != nil {
		return "", fmt.Errorf("service.CreateSettings: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("service.CreateSettings: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("service.CreateSettings: %w", err)
	}
	return path, nil
}

// EditSettings opens the settings file in the configured editor, creating
// its directory first so the editor can save a new file.
func (s *Service) EditSettings(ctx context.Context) error {
	path := s.Config.SettingsFile
	if path == "" {
		return errors.New("service.EditSettings: no settings file location")
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("service.EditSettings: %w", err)
	}
	if err := s.launcher.Edit(ctx, s.Config.EditorCmd, path); err != nil {
		return fmt.Errorf("service.EditSettings: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func (s *Service) writeAliases(t *bookmarks.Table) (int, error) {
	n, err := aliases.Write(s.fs, s.Config.AliasFile(), t, s.Config.AliasPrefix)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("regenerated aliases", "path", s.Config.AliasFile(), "count", n)
	return n, nil
}

// splitLines turns rendered output into picker input lines.
func splitLines(rendered string) []string {
	rendered = strings.TrimSuffix(rendered, "\n")
	if rendered == "" {
		return nil
	}
	return strings.Split(rendered, "\n")
}

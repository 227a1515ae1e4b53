// Package config resolves the effective bmark configuration from compiled
// defaults and the optional user settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/go-ports/bmark/internal/paths"
)

// Compiled-in defaults.
const (
	DefaultEditorCmd   = "nvim"
	DefaultPickerCmd   = "rofi -dmenu"
	DefaultTerminalCmd = "kitty --detach"
	DefaultAliasPrefix = "_"
	DefaultDisplaySep  = ":"
)

var (
	// ErrConfigUnreadable marks a settings file that exists but cannot be read
	// or parsed. It is logged and the defaults are used.
	ErrConfigUnreadable = errors.New("settings file unreadable")
	// ErrDataDirUnresolvable is fatal: no bookmark operation can run without
	// a data directory.
	ErrDataDirUnresolvable = errors.New("could not determine data directory")
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// Config is the effective configuration for one invocation. It is resolved
// once and passed by value or read-only pointer afterwards.
type Config struct {
	DataDir     string `toml:"data_dir" yaml:"data_dir" json:"data_dir"`
	EditorCmd   string `toml:"editor_cmd" yaml:"editor_cmd" json:"editor_cmd"`
	PickerCmd   string `toml:"picker_cmd" yaml:"picker_cmd" json:"picker_cmd"`
	TerminalCmd string `toml:"terminal_cmd" yaml:"terminal_cmd" json:"terminal_cmd"`
	AliasPrefix string `toml:"alias_prefix" yaml:"alias_prefix" json:"alias_prefix"`
	DisplaySep  string `toml:"display_sep" yaml:"display_sep" json:"display_sep"`
	ShowPaths   bool   `toml:"show_paths" yaml:"show_paths" json:"show_paths"`

	// SettingsFile is the settings file consulted during resolution.
	SettingsFile string `toml:"-" yaml:"-" json:"-"`
}

// Overrides holds the keys present in a settings file. A nil field means the
// key was absent.
type Overrides struct {
	DataDir     *string `toml:"data_dir"`
	EditorCmd   *string `toml:"editor_cmd"`
	PickerCmd   *string `toml:"picker_cmd"`
	DmenuCmd    *string `toml:"dmenu_cmd"` // legacy spelling of picker_cmd
	TerminalCmd *string `toml:"terminal_cmd"`
	AliasPrefix *string `toml:"alias_prefix"`
	DisplaySep  *string `toml:"display_sep"`
	ShowPaths   *bool   `toml:"show_paths"`
}

// Default returns the compiled defaults. DataDir is left empty; it is filled
// in from the platform during resolution.
func Default() *Config {
	return &Config{
		EditorCmd:   DefaultEditorCmd,
		PickerCmd:   DefaultPickerCmd,
		TerminalCmd: DefaultTerminalCmd,
		AliasPrefix: DefaultAliasPrefix,
		DisplaySep:  DefaultDisplaySep,
		ShowPaths:   false,
	}
}

// Merge applies o on top of defaults. Each field follows one rule:
//
//   - data_dir, editor_cmd, terminal_cmd, display_sep: replaced when present
//     and non-empty
//   - picker_cmd: replaced when present and non-empty; dmenu_cmd is used only
//     when picker_cmd is absent
//   - alias_prefix: replaced when present, the empty prefix included
//   - show_paths: replaced when present
func Merge(defaults Config, o Overrides) Config {
	cfg := defaults
	setNonEmpty(&cfg.DataDir, o.DataDir)
	setNonEmpty(&cfg.EditorCmd, o.EditorCmd)
	setNonEmpty(&cfg.TerminalCmd, o.TerminalCmd)
	setNonEmpty(&cfg.DisplaySep, o.DisplaySep)
	if o.PickerCmd != nil {
		setNonEmpty(&cfg.PickerCmd, o.PickerCmd)
	} else {
		setNonEmpty(&cfg.PickerCmd, o.DmenuCmd)
	}
	if o.AliasPrefix != nil {
		cfg.AliasPrefix = *o.AliasPrefix
	}
	if o.ShowPaths != nil {
		cfg.ShowPaths = *o.ShowPaths
	}
	return cfg
}

func setNonEmpty(dst, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

// DroppedKeys returns, in key order, the keys present in o whose empty value
// Merge ignores. An empty data_dir means "use the default location" and is
// not reported.
func DroppedKeys(o Overrides) []string {
	var keys []string
	add := func(key string, v *string) {
		if v != nil && *v == "" {
			keys = append(keys, key)
		}
	}
	add("display_sep", o.DisplaySep)
	if o.PickerCmd == nil {
		add("dmenu_cmd", o.DmenuCmd)
	}
	add("editor_cmd", o.EditorCmd)
	add("picker_cmd", o.PickerCmd)
	add("terminal_cmd", o.TerminalCmd)
	return keys
}

// ParseOverrides decodes a settings document. It also returns the keys it
// did not recognise, sorted.
func ParseOverrides(data []byte) (Overrides, []string, error) {
	var o Overrides
	md, err := toml.Decode(string(data), &o)
	if err != nil {
		return Overrides{}, nil, err
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	sort.Strings(unknown)
	return o, unknown, nil
}

// Encode renders cfg as a settings document.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// BookmarksFile returns the path of the bookmark store.
func (c *Config) BookmarksFile() string {
	return filepath.Join(c.DataDir, paths.BookmarksFileName)
}

// AliasFile returns the path of the generated alias script.
func (c *Config) AliasFile() string {
	return filepath.Join(c.DataDir, paths.AliasFileName)
}

// SourceCommand returns the shell line that loads the alias script.
func (c *Config) SourceCommand() string {
	return fmt.Sprintf("source \"%s\"", c.AliasFile())
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Resolver computes the effective configuration. The zero value reads the
// platform settings file from the operating system filesystem.
type Resolver struct {
	FS afero.Fs
	// SettingsFile overrides the platform settings file location.
	SettingsFile string
	// DataDirFlag takes precedence over every other data_dir source.
	DataDirFlag string
	Logger      *slog.Logger
}

// Resolve merges the defaults with the settings file and determines the data
// directory. A missing settings file is silent; an unreadable or malformed
// one is logged and ignored. Only an undeterminable data directory fails.
func (r *Resolver) Resolve() (*Config, error) {
	fs := r.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := *Default()

	settings, err := paths.ConfigFile(r.SettingsFile)
	if err != nil {
		logger.Warn("cannot locate settings file, using defaults", "err", err)
	} else {
		cfg.SettingsFile = settings
		cfg = r.overlay(fs, logger, cfg, settings)
	}

	dir, err := paths.ResolveDataDir(r.DataDirFlag, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataDirUnresolvable, err)
	}
	if info, err := fs.Stat(dir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDataDirUnresolvable, dir)
	}
	cfg.DataDir = dir
	return &cfg, nil
}

func (*Resolver) overlay(fs afero.Fs, logger *slog.Logger, cfg Config, path string) Config {
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return cfg
	}
	if err != nil {
		logger.Warn("using default settings", "err", fmt.Errorf("%w: %s: %w", ErrConfigUnreadable, path, err))
		return cfg
	}

	o, unknown, err := ParseOverrides(data)
	if err != nil {
		logger.Warn("using default settings", "err", fmt.Errorf("%w: %s: %w", ErrConfigUnreadable, path, err))
		return cfg
	}
	for _, k := range unknown {
		logger.Warn("ignoring unknown settings key", "key", k, "file", path)
	}
	for _, k := range DroppedKeys(o) {
		logger.Warn("ignoring empty settings value, keeping default", "key", k, "file", path)
	}
	return Merge(cfg, o)
}

// Package paths resolves the per-user configuration and data directories.
package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName is the directory name used under the platform config and data roots.
const AppName = "bmark"

// File names inside the resolved directories.
const (
	ConfigFileName    = "config.toml"
	BookmarksFileName = "bookmarks.toml"
	AliasFileName     = "aliases.sh"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BMARK_CONFIG_DIR"
	EnvDataDir   = "BMARK_DATA_DIR"
)

// ErrNoHome is returned when neither the XDG variables nor the user's home
// directory can be determined.
var ErrNoHome = errors.New("paths: cannot determine home directory")

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	goos          string
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	goos:          runtime.GOOS,
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/bmark (fallback ~/.config/bmark)
// macOS:   ~/Library/Application Support/bmark
// Windows: %APPDATA%/bmark
func DefaultConfigDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil || dir == "" {
		return "", ErrNoHome
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultDataDir returns the platform-specific data directory.
//
// Linux:   $XDG_DATA_HOME/bmark (fallback ~/.local/share/bmark)
// macOS:   ~/Library/Application Support/bmark
// Windows: %APPDATA%/bmark
func DefaultDataDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	dir, err := platformDir.userConfigDir()
	if err != nil || dir == "" {
		return "", ErrNoHome
	}
	return filepath.Join(dir, AppName), nil
}

func xdgDir(env, fallback string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" && filepath.IsAbs(xdg) {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil || home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, fallback, AppName), nil
}

// ConfigFile returns the settings file path following the precedence chain:
// flag > BMARK_CONFIG_DIR env > DefaultConfigDir().
//
// flag names the file itself; the env variable names its directory.
func ConfigFile(flag string) (string, error) {
	if flag != "" {
		return Normalize(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		dir, err := Normalize(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, ConfigFileName), nil
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > settings value > BMARK_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, settingsValue string) (string, error) {
	for _, candidate := range []string{flag, settingsValue, os.Getenv(EnvDataDir)} {
		if strings.TrimSpace(candidate) != "" {
			return Normalize(candidate)
		}
	}
	return DefaultDataDir()
}

// Normalize expands ~ and environment variables and makes the path absolute.
func Normalize(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := platformDir.homeDir()
		if err != nil {
			return "", ErrNoHome
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return filepath.Abs(os.ExpandEnv(path))
}

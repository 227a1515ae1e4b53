package paths

// White-box testing required: platformDir is swapped to simulate hosts where
// the home directory cannot be determined and non-Linux platforms, neither of
// which can be reproduced through the exported API on the test machine.

import (
	"errors"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func withPlatform(c *qt.C, goos, home string, homeErr error) {
	saved := platformDir
	c.Cleanup(func() { platformDir = saved })
	platformDir.goos = goos
	platformDir.homeDir = func() (string, error) { return home, homeErr }
	platformDir.userConfigDir = func() (string, error) {
		if homeErr != nil {
			return "", homeErr
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	}
}

// ---------------------------------------------------------------------------
// DefaultConfigDir / DefaultDataDir
// ---------------------------------------------------------------------------

func TestDefaultDirs_Linux(t *testing.T) {
	c := qt.New(t)

	c.Run("XDG variables win", func(c *qt.C) {
		withPlatform(c, "linux", "/home/u", nil)
		c.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		c.Setenv("XDG_DATA_HOME", "/xdg/data")

		cfg, err := DefaultConfigDir()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg, qt.Equals, "/xdg/config/bmark")

		data, err := DefaultDataDir()
		c.Assert(err, qt.IsNil)
		c.Assert(data, qt.Equals, "/xdg/data/bmark")
	})

	c.Run("relative XDG values are ignored", func(c *qt.C) {
		withPlatform(c, "linux", "/home/u", nil)
		c.Setenv("XDG_DATA_HOME", "relative/dir")

		data, err := DefaultDataDir()
		c.Assert(err, qt.IsNil)
		c.Assert(data, qt.Equals, "/home/u/.local/share/bmark")
	})

	c.Run("home fallbacks", func(c *qt.C) {
		withPlatform(c, "linux", "/home/u", nil)
		c.Setenv("XDG_CONFIG_HOME", "")
		c.Setenv("XDG_DATA_HOME", "")

		cfg, err := DefaultConfigDir()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg, qt.Equals, "/home/u/.config/bmark")

		data, err := DefaultDataDir()
		c.Assert(err, qt.IsNil)
		c.Assert(data, qt.Equals, "/home/u/.local/share/bmark")
	})
}

func TestDefaultDirs_Darwin(t *testing.T) {
	c := qt.New(t)
	withPlatform(c, "darwin", "/Users/u", nil)

	cfg, err := DefaultConfigDir()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.Equals, "/Users/u/Library/Application Support/bmark")

	data, err := DefaultDataDir()
	c.Assert(err, qt.IsNil)
	c.Assert(data, qt.Equals, cfg)
}

func TestDefaultDirs_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("linux without home", func(c *qt.C) {
		withPlatform(c, "linux", "", errors.New("no home"))
		c.Setenv("XDG_DATA_HOME", "")

		_, err := DefaultDataDir()
		c.Assert(err, qt.ErrorIs, ErrNoHome)
	})

	c.Run("darwin without config dir", func(c *qt.C) {
		withPlatform(c, "darwin", "", errors.New("no home"))

		_, err := DefaultConfigDir()
		c.Assert(err, qt.ErrorIs, ErrNoHome)
	})
}

// ---------------------------------------------------------------------------
// ConfigFile / ResolveDataDir
// ---------------------------------------------------------------------------

func TestConfigFile_Precedence(t *testing.T) {
	c := qt.New(t)
	withPlatform(c, "linux", "/home/u", nil)
	c.Setenv("XDG_CONFIG_HOME", "")

	c.Run("flag names the file", func(c *qt.C) {
		c.Setenv(EnvConfigDir, "/env/cfg")
		got, err := ConfigFile("/flag/settings.toml")
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, "/flag/settings.toml")
	})

	c.Run("env names the directory", func(c *qt.C) {
		c.Setenv(EnvConfigDir, "/env/cfg")
		got, err := ConfigFile("")
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, "/env/cfg/config.toml")
	})

	c.Run("platform default", func(c *qt.C) {
		c.Setenv(EnvConfigDir, "")
		got, err := ConfigFile("")
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, "/home/u/.config/bmark/config.toml")
	})
}

func TestResolveDataDir_Precedence(t *testing.T) {
	c := qt.New(t)
	withPlatform(c, "linux", "/home/u", nil)
	c.Setenv("XDG_DATA_HOME", "")

	cases := []struct {
		name     string
		flag     string
		settings string
		env      string
		want     string
	}{
		{"flag beats everything", "/flag", "/settings", "/env", "/flag"},
		{"settings beat env", "", "/settings", "/env", "/settings"},
		{"env beats default", "", "", "/env", "/env"},
		{"blank settings value is ignored", "", "   ", "", "/home/u/.local/share/bmark"},
		{"tilde is expanded", "", "~/marks", "", "/home/u/marks"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Setenv(EnvDataDir, tc.env)
			got, err := ResolveDataDir(tc.flag, tc.settings)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tc.want)
		})
	}
}

func TestNormalize_ExpandsEnv(t *testing.T) {
	c := qt.New(t)
	withPlatform(c, "linux", "/home/u", nil)
	c.Setenv("BMARK_TEST_ROOT", "/srv")

	got, err := Normalize("$BMARK_TEST_ROOT/marks")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "/srv/marks")

	got, err = Normalize("~")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "/home/u")
}

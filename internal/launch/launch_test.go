package launch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bmark/internal/launch"
)

func newShell(c *qt.C) (*launch.Shell, *bytes.Buffer) {
	if runtime.GOOS == "windows" {
		c.Skip("requires a POSIX shell")
	}
	var out bytes.Buffer
	return &launch.Shell{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &out}, &out
}

// ---------------------------------------------------------------------------
// Quote
// ---------------------------------------------------------------------------

func TestQuote(t *testing.T) {
	c := qt.New(t)

	cases := []struct{ in, want string }{
		{"/plain", "'/plain'"},
		{"/with space", "'/with space'"},
		{"/it's", `'/it'\''s'`},
		{`/$HOME/"x"`, `'/$HOME/"x"'`},
	}
	for _, tc := range cases {
		c.Assert(launch.Quote(tc.in), qt.Equals, tc.want)
	}
}

// ---------------------------------------------------------------------------
// Pick
// ---------------------------------------------------------------------------

func TestPick_HappyPath(t *testing.T) {
	c := qt.New(t)
	sh, _ := newShell(c)

	got, err := sh.Pick(context.Background(), "tail -n 1", []string{"a:/x", "b:/y z"})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "b:/y z")
}

func TestPick_FailurePath(t *testing.T) {
	c := qt.New(t)
	sh, _ := newShell(c)
	ctx := context.Background()

	c.Run("non-zero exit without output is a cancellation", func(c *qt.C) {
		_, err := sh.Pick(ctx, "cat > /dev/null; exit 1", []string{"a:/x"})
		c.Assert(err, qt.ErrorIs, launch.ErrNoSelection)
	})

	c.Run("success without output is an empty selection", func(c *qt.C) {
		_, err := sh.Pick(ctx, "cat > /dev/null", []string{"a:/x"})
		c.Assert(err, qt.ErrorIs, launch.ErrEmptySelection)
	})

	c.Run("non-zero exit with output is a launch failure", func(c *qt.C) {
		_, err := sh.Pick(ctx, "head -n 1; exit 2", []string{"a:/x"})
		c.Assert(err, qt.ErrorIs, launch.ErrLaunch)
	})

	c.Run("missing shell is a launch failure", func(c *qt.C) {
		broken := *sh
		broken.Path = filepath.Join(c.TempDir(), "no-such-shell")
		_, err := broken.Pick(ctx, "cat", []string{"a:/x"})
		c.Assert(err, qt.ErrorIs, launch.ErrLaunch)
	})
}

// ---------------------------------------------------------------------------
// Edit / OpenTerminal
// ---------------------------------------------------------------------------

func TestEdit_PassesQuotedPath(t *testing.T) {
	c := qt.New(t)
	sh, _ := newShell(c)

	path := filepath.Join(c.TempDir(), "dir with space", "bookmarks.toml")
	c.Assert(os.MkdirAll(filepath.Dir(path), 0o755), qt.IsNil)

	err := sh.Edit(context.Background(), "touch", path)
	c.Assert(err, qt.IsNil)
	_, err = os.Stat(path)
	c.Assert(err, qt.IsNil)
}

func TestEdit_FailurePath(t *testing.T) {
	c := qt.New(t)
	sh, _ := newShell(c)

	err := sh.Edit(context.Background(), "exit 3 #", "/tmp/x")
	c.Assert(err, qt.ErrorIs, launch.ErrLaunch)
}

func TestOpenTerminal_RunsInDir(t *testing.T) {
	c := qt.New(t)
	sh, out := newShell(c)

	dir := c.TempDir()
	err := sh.OpenTerminal(context.Background(), "pwd; echo", dir)
	c.Assert(err, qt.IsNil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	c.Assert(lines, qt.HasLen, 2)
	resolved, err := filepath.EvalSymlinks(dir)
	c.Assert(err, qt.IsNil)
	gotPwd, err := filepath.EvalSymlinks(lines[0])
	c.Assert(err, qt.IsNil)
	c.Assert(gotPwd, qt.Equals, resolved)
	c.Assert(lines[1], qt.Equals, dir)
}

func TestOpenTerminal_FailurePath(t *testing.T) {
	c := qt.New(t)
	sh, _ := newShell(c)

	err := sh.OpenTerminal(context.Background(), "bmark-no-such-terminal-xyz", c.TempDir())
	c.Assert(err, qt.ErrorIs, launch.ErrLaunch)
}

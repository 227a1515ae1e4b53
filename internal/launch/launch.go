// Package launch runs the external programs bmark hands work to: the text
// editor, the picker and the terminal.
package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
)

// BuiltinPicker as the picker command selects the in-process fuzzy finder.
const BuiltinPicker = "builtin"

var (
	// ErrLaunch wraps any failure to start or complete an external command.
	ErrLaunch = errors.New("external command failed")
	// ErrNoSelection means the user dismissed the picker. It is not a failure.
	ErrNoSelection = errors.New("no bookmark chosen")
	// ErrEmptySelection means the picker exited successfully but printed nothing.
	ErrEmptySelection = errors.New("picker returned an empty selection")
)

// Launcher runs the external collaborators. Each call blocks until the child
// process exits.
type Launcher interface {
	// Edit opens path in the editor command.
	Edit(ctx context.Context, editorCmd, path string) error
	// Pick feeds lines to the picker command and returns the chosen line.
	Pick(ctx context.Context, pickerCmd string, lines []string) (string, error)
	// OpenTerminal starts the terminal command in dir.
	OpenTerminal(ctx context.Context, terminalCmd, dir string) error
}

// Shell runs commands through `sh -c`, so configured commands may carry
// their own arguments.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Path of the POSIX shell; "sh" when empty.
	Path string
}

var _ Launcher = (*Shell)(nil)

// NewShell returns a Shell attached to the process's standard streams.
func NewShell() *Shell {
	return &Shell{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (s *Shell) command(ctx context.Context, line string) *exec.Cmd {
	sh := s.Path
	if sh == "" {
		sh = "sh"
	}
	// #nosec G204 -- running the user's configured commands is the purpose of this package
	return exec.CommandContext(ctx, sh, "-c", line)
}

// Edit implements Launcher.
func (s *Shell) Edit(ctx context.Context, editorCmd, path string) error {
	line := editorCmd + " " + Quote(path)
	cmd := s.command(ctx, line)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = s.Stdin, s.Stdout, s.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLaunch, line, err)
	}
	return nil
}

// Pick implements Launcher. A picker that exits non-zero without printing
// anything is treated as a cancellation.
func (s *Shell) Pick(ctx context.Context, pickerCmd string, lines []string) (string, error) {
	if strings.TrimSpace(pickerCmd) == BuiltinPicker {
		return pickBuiltin(lines)
	}

	var out bytes.Buffer
	cmd := s.command(ctx, pickerCmd)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")
	cmd.Stdout = &out
	cmd.Stderr = s.Stderr
	err := cmd.Run()

	choice := firstLine(out.String())
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr) && strings.TrimSpace(choice) == "":
		return "", ErrNoSelection
	case err != nil:
		return "", fmt.Errorf("%w: %s: %w", ErrLaunch, pickerCmd, err)
	case strings.TrimSpace(choice) == "":
		return "", ErrEmptySelection
	}
	return choice, nil
}

// OpenTerminal implements Launcher. dir is passed as the last argument and is
// also the child's working directory.
func (s *Shell) OpenTerminal(ctx context.Context, terminalCmd, dir string) error {
	line := terminalCmd + " " + Quote(dir)
	cmd := s.command(ctx, line)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = s.Stdin, s.Stdout, s.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLaunch, line, err)
	}
	return nil
}

func pickBuiltin(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptySelection
	}
	idx, err := fuzzyfinder.Find(
		lines,
		func(i int) string { return lines[i] },
		fuzzyfinder.WithPromptString("bmark> "),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("%w: builtin picker: %w", ErrLaunch, err)
	}
	return lines[idx], nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Quote returns s as a single-quoted POSIX shell word.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

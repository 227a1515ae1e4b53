// Package setup installs and removes the block that loads the bmark alias
// file from a shell startup file.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markers delimiting the managed block in a startup file.
const (
	BeginMarker = "# >>> bmark >>>"
	EndMarker   = "# <<< bmark <<<"
)

// Result is the return value from Install and Uninstall.
type Result struct {
	Changed bool
	Message string
}

func unchanged(msg string) Result      { return Result{Message: msg} }
func changedf(f string, a ...any) Result { return Result{Changed: true, Message: fmt.Sprintf(f, a...)} }

// ---------------------------------------------------------------------------
// Default path helpers
// ---------------------------------------------------------------------------

// Shells lists the supported shell names.
var Shells = []string{"bash", "zsh"}

// DefaultRCFile returns the startup file for shell: ~/.bashrc for bash and
// $ZDOTDIR/.zshrc (fallback ~/.zshrc) for zsh.
func DefaultRCFile(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch shell {
	case "bash":
		return filepath.Join(home, ".bashrc"), nil
	case "zsh":
		if zdot := os.Getenv("ZDOTDIR"); zdot != "" {
			return filepath.Join(zdot, ".zshrc"), nil
		}
		return filepath.Join(home, ".zshrc"), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Shells, ", "))
	}
}

// Block returns the managed block that sources aliasFile when it exists.
func Block(aliasFile string) string {
	return BeginMarker + "\n" +
		fmt.Sprintf("[ -f \"%s\" ] && . \"%s\"\n", aliasFile, aliasFile) +
		EndMarker + "\n"
}

// ---------------------------------------------------------------------------
// Install / Uninstall
// ---------------------------------------------------------------------------

// Install adds the managed block to rcFile, creating the file if needed. An
// existing block pointing elsewhere is replaced; an identical one is kept.
func Install(rcFile, aliasFile string) (Result, error) {
	data, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return Result{}, err
	}
	content := string(data)
	block := Block(aliasFile)

	if existing, ok := findBlock(content); ok {
		if existing == block {
			return unchanged("Already installed in " + rcFile), nil
		}
		content = strings.Replace(content, existing, block, 1)
		if err := writeRC(rcFile, content); err != nil {
			return Result{}, err
		}
		return changedf("Updated %s", rcFile), nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	if err := writeRC(rcFile, content+block); err != nil {
		return Result{}, err
	}
	return changedf("Installed in %s", rcFile), nil
}

// Uninstall removes the managed block from rcFile. Everything outside the
// markers is preserved.
func Uninstall(rcFile string) (Result, error) {
	data, err := os.ReadFile(rcFile)
	if os.IsNotExist(err) {
		return unchanged("Nothing to remove"), nil
	}
	if err != nil {
		return Result{}, err
	}

	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	inBlock, removed := false, false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == BeginMarker:
			inBlock, removed = true, true
		case inBlock && trimmed == EndMarker:
			inBlock = false
		case !inBlock:
			kept = append(kept, line)
		}
	}
	if !removed {
		return unchanged("Nothing to remove"), nil
	}

	cleaned := strings.TrimRight(strings.Join(kept, "\n"), "\n")
	if cleaned != "" {
		cleaned += "\n"
	}
	if err := writeRC(rcFile, cleaned); err != nil {
		return Result{}, err
	}
	return changedf("Removed from %s", rcFile), nil
}

// findBlock returns the managed block text, markers and trailing newline
// included, when content has one.
func findBlock(content string) (string, bool) {
	start := strings.Index(content, BeginMarker)
	if start < 0 {
		return "", false
	}
	rel := strings.Index(content[start:], EndMarker)
	if rel < 0 {
		return "", false
	}
	end := start + rel + len(EndMarker)
	if end < len(content) && content[end] == '\n' {
		end++
	}
	return content[start:end], true
}

func writeRC(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- shell startup files are not secret
}

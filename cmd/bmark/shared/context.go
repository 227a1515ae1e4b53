// Package shared holds the context passed to all CLI commands.
package shared

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/go-ports/bmark/internal/config"
	"github.com/go-ports/bmark/internal/launch"
	"github.com/go-ports/bmark/internal/service"
)

// Context carries global CLI state (flags set on the root command) and the
// collaborators commands share. The configuration is resolved at most once
// per invocation.
type Context struct {
	// ConfigFile overrides the settings file location.
	ConfigFile string
	// DataDir overrides every other data_dir source.
	DataDir string
	// Verbose lowers the log level to debug.
	Verbose bool

	// FS, Launcher and Getwd default to the operating system when nil.
	FS       afero.Fs
	Launcher launch.Launcher
	Getwd    func() (string, error)

	Logger *slog.Logger

	cfg *config.Config
}

// Config returns the effective configuration, resolving it on first use.
func (c *Context) Config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	r := &config.Resolver{
		FS:           c.FS,
		SettingsFile: c.ConfigFile,
		DataDirFlag:  c.DataDir,
		Logger:       c.Logger,
	}
	cfg, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// Service returns a service bound to the effective configuration.
func (c *Context) Service() (*service.Service, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	opts := []service.Option{service.WithLogger(c.Logger)}
	if c.FS != nil {
		opts = append(opts, service.WithFS(c.FS))
	}
	if c.Launcher != nil {
		opts = append(opts, service.WithLauncher(c.Launcher))
	}
	return service.New(cfg, opts...), nil
}

// Cwd returns the current working directory.
func (c *Context) Cwd() (string, error) {
	if c.Getwd != nil {
		return c.Getwd()
	}
	return os.Getwd()
}

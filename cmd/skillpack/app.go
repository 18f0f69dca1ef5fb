// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/skillpack/internal/config"
	"github.com/invowk/skillpack/internal/prdesc"
)

type (
	settingsContextKey struct{}

	// App wires CLI services and shared dependencies. Every Cobra command
	// handler receives an App reference and reaches configuration and the
	// pull request helper through it.
	App struct {
		Config       ConfigProvider
		PullRequests PullRequestService
		stdout       io.Writer
		stderr       io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config       ConfigProvider
		PullRequests PullRequestService
		Stdout       io.Writer
		Stderr       io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Source(opts config.LoadOptions) (string, error)
	}

	// PullRequestService drafts and submits pull request descriptions.
	PullRequestService interface {
		Write(dir, title, body string) (string, error)
		Create(ctx context.Context, path, base string) (string, error)
	}

	// settings is the per-invocation state resolved by the root command
	// before any subcommand runs.
	settings struct {
		cfg        *config.Config
		configPath string
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.PullRequests == nil {
		deps.PullRequests = prdesc.NewClient()
	}

	return &App{
		Config:       deps.Config,
		PullRequests: deps.PullRequests,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
	}, nil
}

func contextWithSettings(ctx context.Context, s settings) context.Context {
	return context.WithValue(ctx, settingsContextKey{}, s)
}

// settingsFromContext returns the resolved settings, or defaults when the
// root command did not run (for example when a subcommand is built alone).
func settingsFromContext(ctx context.Context) settings {
	if s, ok := ctx.Value(settingsContextKey{}).(settings); ok {
		return s
	}
	return settings{cfg: config.DefaultConfig()}
}

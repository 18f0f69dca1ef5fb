// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/invowk/skillpack/internal/config"
)

type (
	cliResult struct {
		stdout string
		stderr string
		code   int
		err    error
	}

	// staticConfig serves a fixed configuration.
	staticConfig struct {
		cfg     *config.Config
		source  string
		loadErr error
	}

	// fakePRService records pull request helper calls.
	fakePRService struct {
		writeDir, writeTitle, writeBody string
		writePath                       string
		writeErr                        error

		createPath, createBase string
		createURL              string
		createErr              error
	}
)

func (c staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	if c.cfg == nil {
		return config.DefaultConfig(), nil
	}
	cfg := *c.cfg
	return &cfg, nil
}

func (c staticConfig) Source(config.LoadOptions) (string, error) {
	return c.source, nil
}

func (f *fakePRService) Write(dir, title, body string) (string, error) {
	f.writeDir, f.writeTitle, f.writeBody = dir, title, body
	return f.writePath, f.writeErr
}

func (f *fakePRService) Create(_ context.Context, path, base string) (string, error) {
	f.createPath, f.createBase = path, base
	return f.createURL, f.createErr
}

// runCLI executes the command tree in-process with captured output.
func runCLI(t *testing.T, deps Dependencies, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps.Stdout = &stdout
	deps.Stderr = &stderr
	if deps.Config == nil {
		deps.Config = staticConfig{}
	}
	if deps.PullRequests == nil {
		deps.PullRequests = &fakePRService{}
	}

	app, err := NewApp(deps)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(t.Context())

	return cliResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
		code:   exitCode(err),
		err:    err,
	}
}

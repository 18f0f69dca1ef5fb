// SPDX-License-Identifier: MPL-2.0

package prdesc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultDir is where drafts are written when no directory is configured.
	DefaultDir = "docs/prs"
	// DefaultBase is the branch pull requests target by default.
	DefaultBase = "main"

	filePrefix      = "pr_"
	fileExt         = ".md"
	timestampLayout = "20060102_150405"
	ghBinary        = "gh"
)

var (
	// ErrNoDrafts is returned by Latest when the directory holds no drafts.
	ErrNoDrafts = errors.New("no PR description files found")
	// ErrMissingTitle is returned by Create for a draft without a title line.
	ErrMissingTitle = errors.New("PR description file is missing a title")
	// ErrCreateFailed is the sentinel wrapped by CreateError.
	ErrCreateFailed = errors.New("error creating pull request")
)

type (
	// ExecCommandFunc builds the command that runs the GitHub CLI.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a Client.
	Option func(*Client)

	// Client writes drafts and submits them.
	Client struct {
		binary      string
		execCommand ExecCommandFunc
		now         func() time.Time
	}

	// Description is a parsed draft.
	Description struct {
		Title string
		Body  string
	}

	// CreateError is returned when the GitHub CLI fails. Stderr holds its
	// diagnostic output.
	CreateError struct {
		Path   string
		Stderr string
		Cause  error
	}
)

// Error implements the error interface.
func (e *CreateError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	return fmt.Sprintf("Error creating pull request: %s", msg)
}

// Unwrap returns the sentinel and the underlying exec error.
func (e *CreateError) Unwrap() []error {
	return []error{ErrCreateFailed, e.Cause}
}

// WithExecCommand replaces exec.CommandContext.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(c *Client) { c.execCommand = fn }
}

// WithClock sets the time source used for draft file names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithBinary sets the GitHub CLI executable.
func WithBinary(path string) Option {
	return func(c *Client) { c.binary = path }
}

// NewClient returns a Client that runs gh from PATH.
func NewClient(opts ...Option) *Client {
	c := &Client{
		binary:      ghBinary,
		execCommand: exec.CommandContext,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Write stores a draft in dir, creating dir when needed, and returns its path.
func (c *Client) Write(dir, title, body string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, filePrefix+c.now().Format(timestampLayout)+fileExt)
	content := "# " + title + "\n\n" + body
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write PR description: %w", err)
	}
	return path, nil
}

// Latest returns the newest draft in dir. Timestamped names sort
// chronologically, so this is the lexically greatest match.
func Latest(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileExt))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDrafts, dir)
	}
	return slices.Max(matches), nil
}

// Parse reads a draft. Leading '#' and space characters are stripped from
// the title; the body is everything from the third line, trimmed.
func Parse(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, err
	}

	lines := strings.Split(string(data), "\n")
	desc := Description{
		Title: strings.TrimSpace(strings.TrimLeft(lines[0], "# ")),
	}
	if len(lines) > 2 {
		desc.Body = strings.TrimSpace(strings.Join(lines[2:], "\n"))
	}
	return desc, nil
}

// Create opens a pull request from the draft at path against base and
// returns its URL. The draft is deleted after a successful submission.
func (c *Client) Create(ctx context.Context, path, base string) (string, error) {
	desc, err := Parse(path)
	if err != nil {
		return "", err
	}
	if desc.Title == "" {
		return "", fmt.Errorf("%s: %w", path, ErrMissingTitle)
	}
	if base == "" {
		base = DefaultBase
	}

	cmd := c.execCommand(ctx, c.binary, "pr", "create",
		"--title", desc.Title,
		"--body", desc.Body,
		"--base", base)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &CreateError{Path: path, Stderr: stderr.String(), Cause: err}
	}

	url := strings.TrimSpace(stdout.String())
	if err := os.Remove(path); err != nil {
		return url, fmt.Errorf("pull request created but %s was not removed: %w", path, err)
	}
	return url, nil
}

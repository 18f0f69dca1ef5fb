// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for skillpack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/skillpack/internal/config"
	"github.com/invowk/skillpack/internal/logging"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the skillpack command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "skillpack",
		Short: "Validate and package agent skills",
		Long: TitleStyle.Render("skillpack") + SubtitleStyle.Render(" - validate and package agent skills") + `

A skill is a directory with a SKILL.md file at its root. SKILL.md starts
with a frontmatter block holding the skill's name and description:

  ---
  name: pdf-tools
  description: Extract text and tables from PDF files
  ---

skillpack checks that block and zips the directory into <name>.zip.

` + SubtitleStyle.Render("Examples:") + `
  skillpack validate ./skills/pdf-tools
  skillpack package ./skills/pdf-tools ./dist
  skillpack package-all ./skills ./dist
  skillpack inspect ./dist/pdf-tools.zip`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			prepareCommand(cmd, app, flags)
			return nil
		},
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/skillpack/config.cue)")

	rootCmd.AddCommand(
		newValidateCommand(app),
		newPackageCommand(app),
		newPackageAllCommand(app),
		newInspectCommand(app),
		newShowCommand(app),
		newConfigCommand(app),
		newPRCommand(app),
	)

	return rootCmd
}

// prepareCommand loads configuration and attaches it, with a logger built
// from it, to the command context. A configuration error is reported as a
// warning and the built-in defaults are used instead.
func prepareCommand(cmd *cobra.Command, app *App, flags *rootFlags) {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		cfg = config.DefaultConfig()
	}

	verbose := flags.verbose || cfg.UI.Verbose

	logger, err := logging.New(logging.Options{
		Level:   string(cfg.Log.Level),
		Format:  string(cfg.Log.Format),
		Verbose: verbose,
		Output:  stderr,
	})
	if err != nil {
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+err.Error())
		logger = log.New(stderr)
	}

	ctx = log.WithContext(ctx, logger)
	ctx = contextWithSettings(ctx, settings{
		cfg:        cfg,
		configPath: flags.configPath,
		verbose:    verbose,
	})
	cmd.SetContext(ctx)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command tree. It is called
// by main.main and exits the process on failure.
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

// handleError prints errors that escaped the command handlers. An
// *ExitError without a wrapped error was already reported and is skipped.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

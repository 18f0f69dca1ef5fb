// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/invowk/skillpack/internal/watch"
	"github.com/invowk/skillpack/pkg/skill"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// newValidateCommand creates the `skillpack validate` command.
func newValidateCommand(app *App) *cobra.Command {
	var (
		watchMode bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "validate <skill-dir>",
		Short: "Check a skill's SKILL.md frontmatter",
		Long: `Check that a skill directory holds a SKILL.md whose frontmatter has a
hyphen-case name and a description without angle brackets.

The first problem found is printed. The exit status is 0 for a valid skill
and 1 otherwise.

With --watch the skill is re-validated after every change until interrupted;
the exit status then reflects the last result.

Examples:
  skillpack validate ./skills/pdf-tools
  skillpack validate ./skills/pdf-tools --format json
  skillpack validate ./skills/pdf-tools --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkVerdictFormat(format); err != nil {
				return err
			}
			if watchMode {
				return runValidateWatch(cmd, args[0], format)
			}
			return runValidate(cmd, args[0], format)
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-validate whenever the skill changes")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json, yaml)")

	return cmd
}

func runValidate(cmd *cobra.Command, dir, format string) error {
	s := settingsFromContext(cmd.Context())
	verdict := skill.Validate(dir)
	log.FromContext(cmd.Context()).Debug("validated", "dir", dir, "valid", verdict.OK)

	if err := printVerdict(cmd.OutOrStdout(), verdict, format); err != nil {
		return err
	}
	if verdict.OK {
		return nil
	}
	if s.verbose && format == formatText {
		printSuggestions(cmd.ErrOrStderr(), verdict.Err, dir)
	}
	return &ExitError{Code: 1}
}

func runValidateWatch(cmd *cobra.Command, dir, format string) error {
	ctx := cmd.Context()
	s := settingsFromContext(ctx)
	logger := log.FromContext(ctx)
	stdout := cmd.OutOrStdout()

	var lastOK atomic.Bool
	check := func() error {
		verdict := skill.Validate(dir)
		lastOK.Store(verdict.OK)
		return printVerdict(stdout, verdict, format)
	}
	if err := check(); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dir:    dir,
		Ignore: s.cfg.Packaging.Exclude,
		Stdout: stdout,
		Logger: logger,
		OnChange: func(_ context.Context, changed []string) error {
			logger.Info("change detected", "paths", strings.Join(changed, ", "))
			return check()
		},
	})
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), s, err, "watch skill", dir)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s for changes (Ctrl+C to stop)\n", infoIcon, PathStyle.Render(w.Dir()))
	if err := w.Run(ctx); err != nil {
		return reportFailure(cmd.ErrOrStderr(), s, err, "watch skill", dir)
	}

	if !lastOK.Load() {
		return &ExitError{Code: 1}
	}
	return nil
}

func checkVerdictFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", format)
	}
}

// printVerdict writes verdict to w. The text form is the verdict message
// behind a status icon.
func printVerdict(w io.Writer, verdict skill.Verdict, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatYAML:
		data, err := yaml.Marshal(verdict)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		icon := successIcon
		if !verdict.OK {
			icon = errorIcon
		}
		_, err := fmt.Fprintf(w, "%s %s\n", icon, verdict.Message)
		return err
	}
}

// printSuggestions prints the fix-it hints for a failed verdict.
func printSuggestions(w io.Writer, err error, dir string) {
	if err == nil {
		return
	}
	for _, suggestion := range issueSuggestions(err, dir) {
		fmt.Fprintf(w, "  %s %s\n", infoIcon, suggestion)
	}
}

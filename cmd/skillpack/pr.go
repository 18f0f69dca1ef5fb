// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/invowk/skillpack/internal/issue"
	"github.com/invowk/skillpack/internal/prdesc"

	"github.com/spf13/cobra"
)

// newPRCommand creates the `skillpack pr` command tree.
func newPRCommand(app *App) *cobra.Command {
	prCmd := &cobra.Command{
		Use:   "pr",
		Short: "Draft and open pull requests",
		Long: `Draft pull request descriptions as reviewable markdown files and open
them with the GitHub CLI (gh).

Drafts are written to pr.dir (default docs/prs) as pr_YYYYMMDD_HHMMSS.md.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	prCmd.AddCommand(newPRWriteCommand(app), newPRCreateCommand(app))
	return prCmd
}

func newPRWriteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "write <title> <body>",
		Short: "Write a pull request description for review",
		Example: `  skillpack pr write "Add pdf-tools skill" "## Summary
- Added text extraction"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			out := cmd.OutOrStdout()

			path, err := app.PullRequests.Write(s.cfg.PR.Dir, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s PR description written to: %s\n", successIcon, PathStyle.Render(path))
			fmt.Fprintln(out, "\nPlease review and edit the file before creating the PR.")
			return nil
		},
	}
}

func newPRCreateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [file] [base]",
		Short: "Open a pull request from a description file",
		Long: `Open a pull request with gh using the newest draft in pr.dir, or the given
file, against base (default pr.base). The draft is deleted once the pull
request exists.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()
			dir := s.cfg.PR.Dir

			base := s.cfg.PR.Base
			if len(args) > 1 {
				base = args[1]
			}

			var path string
			if len(args) > 0 {
				path = args[0]
				if _, err := os.Stat(path); err != nil {
					return reportPRFailure(stderr, s, fmt.Errorf("file not found: %s", path), path,
						"Check the path of the description file")
				}
			} else {
				if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
					return reportPRFailure(stderr, s, fmt.Errorf("%s directory does not exist", dir), dir,
						"Run 'skillpack pr write <title> <body>' first to create a PR description")
				}
				latest, err := prdesc.Latest(dir)
				if err != nil {
					return reportPRFailure(stderr, s, err, dir,
						"Run 'skillpack pr write <title> <body>' first to create a PR description")
				}
				path = latest
				fmt.Fprintf(out, "Using latest PR description: %s\n", PathStyle.Render(path))
			}

			url, err := app.PullRequests.Create(cmd.Context(), path, base)
			if err != nil {
				if url != "" {
					fmt.Fprintf(out, "%s Pull request created: %s\n", successIcon, url)
				}
				return reportPRFailure(stderr, s, err, path,
					"Check that gh is installed and authenticated ('gh auth status')",
					"Push the current branch before creating the pull request")
			}

			fmt.Fprintf(out, "\n%s Pull request created successfully!\n", successIcon)
			fmt.Fprintf(out, "URL: %s\n", url)
			fmt.Fprintf(out, "\nCleaned up: %s\n", path)
			return nil
		},
	}
}

func reportPRFailure(w io.Writer, s settings, err error, resource string, suggestions ...string) error {
	ae := issue.NewErrorContext().
		WithOperation("create pull request").
		WithResource(resource).
		WithIssue(issue.PullRequestFailedId).
		WithSuggestions(suggestions...).
		Wrap(err).
		Build()
	fmt.Fprintf(w, "%s %s\n", errorIcon, formatErrorForDisplay(ae, s.verbose))
	return &ExitError{Code: 1}
}

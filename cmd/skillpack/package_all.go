// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/invowk/skillpack/pkg/skill"

	"github.com/spf13/cobra"
)

// newPackageAllCommand creates the `skillpack package-all` command.
func newPackageAllCommand(app *App) *cobra.Command {
	var (
		exclude     []string
		keepPartial bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "package-all <root> [output-dir]",
		Short: "Package every skill found under a directory",
		Long: `Find every directory under <root> that holds a SKILL.md and package each
one into <output-dir>. Skills are packaged in parallel; one failing skill
does not stop the others. The exit status is 1 when any skill failed.

Examples:
  skillpack package-all ./skills ./dist
  skillpack package-all ./skills ./dist --concurrency 8`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			root := args[0]

			skills, err := skill.Discover(root)
			if err != nil {
				return reportFailure(cmd.ErrOrStderr(), s, err, "discover skills", root)
			}
			if len(skills) == 0 {
				fmt.Fprintf(out, "%s No skills found under %s\n", infoIcon, PathStyle.Render(root))
				return nil
			}

			opts := skill.BatchOptions{
				Skills:      skills,
				OutputDir:   s.cfg.Packaging.OutputDir,
				Exclude:     slices.Concat(s.cfg.Packaging.Exclude, exclude),
				KeepPartial: s.cfg.Packaging.KeepPartial,
				Concurrency: s.cfg.Batch.Concurrency,
			}
			if len(args) > 1 {
				opts.OutputDir = args[1]
			}
			if cmd.Flags().Changed("keep-partial") {
				opts.KeepPartial = keepPartial
			}
			if cmd.Flags().Changed("concurrency") {
				opts.Concurrency = concurrency
			}

			fmt.Fprintf(out, "%s Packaging %d skill(s) from %s\n\n", infoIcon, len(skills), PathStyle.Render(root))

			results := skill.PackageAll(cmd.Context(), opts)
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "%s %s: %s\n", errorIcon, r.Skill, r.Err)
					continue
				}
				fmt.Fprintf(out, "%s %s -> %s (%d files)\n", successIcon, r.Skill, PathStyle.Render(r.Result.ArchivePath), len(r.Result.Entries))
			}

			failed := skill.Failed(results)
			fmt.Fprintf(out, "\n%d packaged, %d failed\n", len(results)-failed, failed)
			if failed > 0 {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "doublestar pattern of files to leave out (repeatable)")
	cmd.Flags().BoolVar(&keepPartial, "keep-partial", false, "keep incomplete archives after write failures")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", skill.DefaultConcurrency, "number of skills packaged at once")

	return cmd
}

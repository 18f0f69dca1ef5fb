// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invowk/skillpack/pkg/skill"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newPackageCommand creates the `skillpack package` command.
func newPackageCommand(app *App) *cobra.Command {
	var (
		exclude     []string
		keepPartial bool
	)

	cmd := &cobra.Command{
		Use:   "package <skill-dir> [output-dir]",
		Short: "Validate a skill and zip it",
		Long: `Validate a skill and write it to <output-dir>/<skill-dir name>.zip.

The archive holds every file under the skill directory, with the directory
itself as the only top-level entry. Nothing is written when validation fails.

The output directory defaults to packaging.output_dir, then the current
directory. It is created when given and missing.

Examples:
  skillpack package ./skills/pdf-tools
  skillpack package ./skills/pdf-tools ./dist
  skillpack package ./skills/pdf-tools --exclude '**/*.log' --exclude 'tmp/**'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())

			opts := skill.PackageOptions{
				SkillPath:   args[0],
				OutputDir:   s.cfg.Packaging.OutputDir,
				Exclude:     slices.Concat(s.cfg.Packaging.Exclude, exclude),
				KeepPartial: s.cfg.Packaging.KeepPartial,
			}
			if len(args) > 1 {
				opts.OutputDir = args[1]
			}
			if cmd.Flags().Changed("keep-partial") {
				opts.KeepPartial = keepPartial
			}

			return runPackage(cmd, s, opts)
		},
	}

	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "doublestar pattern of files to leave out (repeatable)")
	cmd.Flags().BoolVar(&keepPartial, "keep-partial", false, "keep an incomplete archive after a write failure")

	return cmd
}

func runPackage(cmd *cobra.Command, s settings, opts skill.PackageOptions) error {
	out := cmd.OutOrStdout()
	logger := log.FromContext(cmd.Context())

	fmt.Fprintf(out, "%s Packaging skill: %s\n", infoIcon, PathStyle.Render(opts.SkillPath))
	if opts.OutputDir != "" {
		fmt.Fprintf(out, "   Output directory: %s\n", PathStyle.Render(opts.OutputDir))
	}
	fmt.Fprintln(out)

	opts.OnValidated = func(v skill.Verdict) {
		fmt.Fprintln(out, "Validating skill...")
		if v.OK {
			fmt.Fprintf(out, "%s %s\n\n", successIcon, v.Message)
			return
		}
		fmt.Fprintf(out, "%s Validation failed: %s\n", errorIcon, v.Message)
		fmt.Fprintln(out, "   Please fix the validation errors before packaging.")
	}
	opts.OnEntry = func(name string) {
		fmt.Fprintf(out, "  Added: %s\n", name)
	}

	result, err := skill.Package(opts)
	if err != nil {
		if errors.Is(err, skill.ErrValidationFailed) {
			if s.verbose {
				var vfe *skill.ValidationFailedError
				if errors.As(err, &vfe) {
					printSuggestions(cmd.ErrOrStderr(), vfe.Verdict.Err, opts.SkillPath)
				}
			}
			return &ExitError{Code: 1}
		}
		return reportFailure(cmd.ErrOrStderr(), s, err, "package skill", opts.SkillPath)
	}

	logger.Debug("archive written", "path", result.ArchivePath, "entries", len(result.Entries))
	fmt.Fprintf(out, "\n%s Successfully packaged skill to: %s\n", successIcon, PathStyle.Render(result.ArchivePath))
	return nil
}

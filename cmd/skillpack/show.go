// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/invowk/skillpack/pkg/skill"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newShowCommand creates the `skillpack show` command.
func newShowCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <skill-dir>",
		Short: "Render a skill's SKILL.md in the terminal",
		Long: `Validate a skill and print its name, description, and the body of
SKILL.md rendered as terminal markdown. Use --raw to print the body as is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			dir := args[0]

			if verdict := skill.Validate(dir); !verdict.OK {
				return reportFailure(cmd.ErrOrStderr(), s, verdict.Err, "show skill", dir)
			}

			sk, err := skill.ReadSkill(dir)
			if err != nil {
				return reportFailure(cmd.ErrOrStderr(), s, err, "show skill", dir)
			}

			fmt.Fprintln(out, TitleStyle.Render(string(sk.Name)))
			fmt.Fprintln(out, SubtitleStyle.Render(string(sk.Description)))
			fmt.Fprintln(out)

			if raw || strings.TrimSpace(sk.Body) == "" {
				fmt.Fprint(out, sk.Body)
				return nil
			}

			rendered, err := glamour.Render(sk.Body, glamourStyle(s.cfg.UI.ColorScheme))
			if err != nil {
				return fmt.Errorf("render %s: %w", skill.DefinitionFile, err)
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the body without markdown rendering")

	return cmd
}

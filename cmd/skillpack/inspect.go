// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/invowk/skillpack/pkg/skill"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newInspectCommand creates the `skillpack inspect` command.
func newInspectCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <archive>",
		Short: "List the files inside a skill archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkVerdictFormat(format); err != nil {
				return err
			}
			s := settingsFromContext(cmd.Context())
			out := cmd.OutOrStdout()

			entries, err := skill.Inspect(args[0])
			if err != nil {
				return reportFailure(cmd.ErrOrStderr(), s, err, "inspect archive", args[0])
			}

			switch format {
			case formatJSON:
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", data)
			case formatYAML:
				data, err := yaml.Marshal(entries)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			default:
				fmt.Fprintln(out, TitleStyle.Render(args[0]))
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tSIZE\tCOMPRESSED\tMETHOD")
				var total uint64
				for _, e := range entries {
					method := "store"
					if e.Deflated {
						method = "deflate"
					}
					fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", e.Name, e.Size, e.CompressedSize, method)
					total += e.Size
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%d file(s), %d bytes\n", len(entries), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json, yaml)")

	return cmd
}

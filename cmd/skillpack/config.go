// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/invowk/skillpack/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `skillpack config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage skillpack configuration",
		Long: `Manage skillpack configuration.

Configuration is stored in:
  - Linux: ~/.config/skillpack/config.cue
  - macOS: ~/Library/Application Support/skillpack/config.cue
  - Windows: %APPDATA%\skillpack\config.cue

A config.cue in the current directory is used when none exists there.
Any value can be overridden with SKILLPACK_<SECTION>_<KEY>, for example
SKILLPACK_BATCH_CONCURRENCY=8.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", config.FormatCUE, "output format (cue, json, yaml, toml)")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	}

	cfgCmd.AddCommand(showCmd, initCmd, pathCmd)
	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, format string) error {
	s := settingsFromContext(cmd.Context())

	data, err := config.Encode(s.cfg, format)
	if err != nil {
		return err
	}

	source, err := app.Config.Source(config.LoadOptions{ConfigFilePath: s.configPath})
	if err != nil || source == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", LabelStyle.Render("Config file:"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", LabelStyle.Render("Config file:"), PathStyle.Render(source))
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func initConfig(cmd *cobra.Command, force bool) error {
	path, written, err := config.CreateDefaultConfig("", force)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	out := cmd.OutOrStdout()
	if !written {
		fmt.Fprintf(out, "%s Configuration already exists at %s (use --force to overwrite)\n", infoIcon, PathStyle.Render(path))
		return nil
	}
	fmt.Fprintf(out, "%s Created default configuration at %s\n", successIcon, PathStyle.Render(path))
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	s := settingsFromContext(cmd.Context())
	out := cmd.OutOrStdout()

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(out, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	source, err := app.Config.Source(config.LoadOptions{ConfigFilePath: s.configPath})
	switch {
	case err != nil:
		fmt.Fprintf(out, "Active: %s\n", formatErrorForDisplay(err, false))
	case source == "":
		fmt.Fprintln(out, "Active: (using defaults)")
	default:
		fmt.Fprintf(out, "Active: %s\n", source)
	}
	return nil
}

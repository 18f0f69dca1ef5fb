// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatCUE  = "cue"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ErrUnknownFormat is returned by Encode for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Encode renders cfg in the given format.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCUE, "":
		return []byte(GenerateCUE(cfg)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w %q (valid: cue, json, yaml, toml)", ErrUnknownFormat, format)
	}
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// skillpack configuration file\n")
	sb.WriteString("// Values can be overridden with " + EnvPrefix + "_<SECTION>_<KEY> environment variables.\n\n")

	sb.WriteString("packaging: {\n")
	fmt.Fprintf(&sb, "\toutput_dir: %q\n", cfg.Packaging.OutputDir)
	if len(cfg.Packaging.Exclude) == 0 {
		sb.WriteString("\texclude: []\n")
	} else {
		sb.WriteString("\texclude: [\n")
		for _, pat := range cfg.Packaging.Exclude {
			fmt.Fprintf(&sb, "\t\t%q,\n", pat)
		}
		sb.WriteString("\t]\n")
	}
	fmt.Fprintf(&sb, "\tkeep_partial: %v\n", cfg.Packaging.KeepPartial)
	sb.WriteString("}\n")

	sb.WriteString("\nbatch: {\n")
	fmt.Fprintf(&sb, "\tconcurrency: %d\n", cfg.Batch.Concurrency)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.Log.Format)
	sb.WriteString("}\n")

	sb.WriteString("\npr: {\n")
	fmt.Fprintf(&sb, "\tdir: %q\n", cfg.PR.Dir)
	fmt.Fprintf(&sb, "\tbase: %q\n", cfg.PR.Base)
	sb.WriteString("}\n")

	return sb.String()
}

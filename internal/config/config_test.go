// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/skillpack/internal/issue"
	"github.com/invowk/skillpack/internal/testutil"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, path, content)
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Packaging.OutputDir != "" {
		t.Errorf("expected default output dir to be empty, got %q", cfg.Packaging.OutputDir)
	}
	if len(cfg.Packaging.Exclude) != 0 {
		t.Errorf("expected default exclude list to be empty, got %v", cfg.Packaging.Exclude)
	}
	if cfg.Packaging.KeepPartial {
		t.Error("expected keep_partial to be false by default")
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("expected default concurrency 4, got %d", cfg.Batch.Concurrency)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.Log.Level != LogLevelInfo || cfg.Log.Format != LogFormatText {
		t.Errorf("unexpected default log config %+v", cfg.Log)
	}
	if cfg.PR.Dir != "docs/prs" || cfg.PR.Base != "main" {
		t.Errorf("unexpected default pr config %+v", cfg.PR)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-specific")
	}

	testXDGPath := filepath.Join(t.TempDir(), "xdg")
	defer testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if expected := filepath.Join(testXDGPath, AppName); dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfgDir := t.TempDir()
	defer testutil.MustChdir(t, t.TempDir())()

	p := NewProvider()
	cfg, err := p.Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("Batch.Concurrency = %d, want 4", cfg.Batch.Concurrency)
	}

	src, err := p.Source(LoadOptions{ConfigDirPath: cfgDir})
	if err != nil || src != "" {
		t.Errorf("Source() = %q, %v; want empty", src, err)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	cfgDir := t.TempDir()
	path := writeConfig(t, cfgDir, `
packaging: {
	output_dir: "dist"
	exclude: ["**/__pycache__", "*.tmp"]
	keep_partial: true
}
batch: concurrency: 8
ui: color_scheme: "dark"
log: {
	level: "debug"
	format: "json"
}
`)

	p := NewProvider()
	cfg, err := p.Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Packaging.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want dist", cfg.Packaging.OutputDir)
	}
	if !slices.Equal(cfg.Packaging.Exclude, []string{"**/__pycache__", "*.tmp"}) {
		t.Errorf("Exclude = %v", cfg.Packaging.Exclude)
	}
	if !cfg.Packaging.KeepPartial {
		t.Error("KeepPartial = false, want true")
	}
	if cfg.Batch.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Batch.Concurrency)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
	if cfg.Log.Level != LogLevelDebug || cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log = %+v", cfg.Log)
	}
	// Unset sections keep their defaults.
	if cfg.PR.Base != "main" {
		t.Errorf("PR.Base = %q, want main", cfg.PR.Base)
	}

	src, err := p.Source(LoadOptions{ConfigDirPath: cfgDir})
	if err != nil || src != path {
		t.Errorf("Source() = %q, %v; want %q", src, err, path)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `pr: base: "develop"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PR.Base != "develop" {
		t.Errorf("PR.Base = %q, want develop", cfg.PR.Base)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue"),
	})

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %v, want *issue.ActionableError", err)
	}
	if ae.Issue != issue.ConfigLoadFailedId || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantPath string
	}{
		{"concurrency out of range", `batch: concurrency: 0`, "batch.concurrency"},
		{"wrong type", `packaging: keep_partial: "yes"`, "packaging.keep_partial"},
		{"unknown color scheme", `ui: color_scheme: "neon"`, "ui.color_scheme"},
		{"unknown field", `packaging: compress: true`, "packaging.compress"},
		{"exclude element type", `packaging: exclude: ["ok", 3]`, "packaging.exclude[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() should reject the config")
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q should mention %s", err, tt.wantPath)
			}
		})
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `batch: {`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("Load() error = %v, want an error mentioning %s", err, path)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	cfgDir := t.TempDir()
	writeConfig(t, cfgDir, `batch: concurrency: 8`)
	defer testutil.MustSetenv(t, "SKILLPACK_BATCH_CONCURRENCY", "16")()
	defer testutil.MustSetenv(t, "SKILLPACK_PACKAGING_KEEP_PARTIAL", "true")()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Batch.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want 16 from environment", cfg.Batch.Concurrency)
	}
	if !cfg.Packaging.KeepPartial {
		t.Error("KeepPartial = false, want true from environment")
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	defer testutil.MustSetenv(t, "SKILLPACK_LOG_LEVEL", "loud")()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Load() error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	path, written, err := CreateDefaultConfig(dir, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if !written {
		t.Error("first CreateDefaultConfig() should write the file")
	}

	// The generated file must load cleanly and round-trip the defaults.
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() of generated config error: %v", err)
	}
	if cfg.Batch.Concurrency != DefaultConfig().Batch.Concurrency {
		t.Errorf("Concurrency = %d", cfg.Batch.Concurrency)
	}

	if err := os.WriteFile(path, []byte(`batch: concurrency: 2`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, written, err = CreateDefaultConfig(dir, false); err != nil || written {
		t.Errorf("second CreateDefaultConfig() = written %v, err %v; want untouched", written, err)
	}
	if _, written, err = CreateDefaultConfig(dir, true); err != nil || !written {
		t.Errorf("forced CreateDefaultConfig() = written %v, err %v; want rewritten", written, err)
	}
}

func TestEncode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Packaging.Exclude = []string{"*.tmp"}

	t.Run("cue", func(t *testing.T) {
		out, err := Encode(cfg, FormatCUE)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(out), `"*.tmp",`) || !strings.Contains(string(out), "concurrency: 4") {
			t.Errorf("unexpected CUE output:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := Encode(cfg, FormatJSON)
		if err != nil {
			t.Fatal(err)
		}
		var decoded Config
		if err := json.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.PR.Dir != "docs/prs" {
			t.Errorf("decoded PR.Dir = %q", decoded.PR.Dir)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := Encode(cfg, FormatYAML)
		if err != nil {
			t.Fatal(err)
		}
		var decoded map[string]map[string]any
		if err := yaml.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if decoded["log"]["format"] != "text" {
			t.Errorf("decoded log.format = %v", decoded["log"]["format"])
		}
	})

	t.Run("toml", func(t *testing.T) {
		out, err := Encode(cfg, FormatTOML)
		if err != nil {
			t.Fatal(err)
		}
		var decoded map[string]map[string]any
		if err := toml.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("invalid TOML: %v", err)
		}
		if decoded["ui"]["color_scheme"] != "auto" {
			t.Errorf("decoded ui.color_scheme = %v", decoded["ui"]["color_scheme"])
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Encode(cfg, "xml"); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Encode(xml) error = %v, want ErrUnknownFormat", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	tests := map[string][]string{
		"":                     nil,
		"batch":                {"batch"},
		"packaging.exclude[0]": {"packaging", "exclude", "0"},
		"0":                    {"0"},
	}
	for want, in := range tests {
		if got := formatPath(in); got != want {
			t.Errorf("formatPath(%v) = %q, want %q", in, got, want)
		}
	}
}

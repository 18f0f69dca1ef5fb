// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"archive/zip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/skillpack/internal/config"
	"github.com/invowk/skillpack/internal/testutil"
)

func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer testutil.DeferClose(t, r)()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestPackageCommand(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := testutil.WriteSkill(t, root, "pdf-tools", testutil.SkillDocument("pdf-tools", "Extract text"), map[string]string{
		"scripts/extract.py": "print('hi')\n",
	})
	outDir := filepath.Join(root, "dist")

	res := runCLI(t, Dependencies{}, "package", dir, outDir)
	if res.code != 0 {
		t.Fatalf("exit code = %d (stdout: %s, stderr: %s)", res.code, res.stdout, res.stderr)
	}

	for _, want := range []string{
		"Packaging skill:",
		"Output directory:",
		"Validating skill...",
		"Skill is valid!",
		"Added: pdf-tools/SKILL.md",
		"Added: pdf-tools/scripts/extract.py",
		"Successfully packaged skill to: " + filepath.Join(outDir, "pdf-tools.zip"),
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}

	got := archiveNames(t, filepath.Join(outDir, "pdf-tools.zip"))
	want := []string{"pdf-tools/SKILL.md", "pdf-tools/scripts/extract.py"}
	if !slices.Equal(got, want) {
		t.Errorf("archive entries = %v, want %v", got, want)
	}
}

func TestPackageCommandValidationFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := testutil.WriteSkill(t, root, "bad", testutil.SkillDocument("bad", "uses <html>"), nil)
	outDir := filepath.Join(root, "dist")

	res := runCLI(t, Dependencies{}, "package", dir, outDir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if !strings.Contains(res.stdout, "Validation failed: Description cannot contain angle brackets (< or >)") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if !strings.Contains(res.stdout, "Please fix the validation errors before packaging.") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if strings.Contains(res.stdout, "Added:") {
		t.Error("no entries should be added after a failed validation")
	}
	testutil.MustNotExist(t, outDir)
}

func TestPackageCommandPreconditions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	testutil.MustWriteFile(t, file, "x")
	noDef := filepath.Join(root, "no-def")
	testutil.MustMkdirAll(t, noDef, 0o755)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "missing path", path: filepath.Join(root, "nope"), wantErr: "Skill folder not found"},
		{name: "file path", path: file, wantErr: "Path is not a directory"},
		{name: "no SKILL.md", path: noDef, wantErr: "SKILL.md not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outDir := filepath.Join(t.TempDir(), "dist")

			res := runCLI(t, Dependencies{}, "package", tt.path, outDir)
			if res.code != 1 {
				t.Fatalf("exit code = %d, want 1", res.code)
			}
			if !strings.Contains(res.stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want %q", res.stderr, tt.wantErr)
			}
			testutil.MustNotExist(t, outDir)
		})
	}
}

func TestPackageCommandUsesConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := testutil.WriteSkill(t, root, "pdf-tools", testutil.SkillDocument("pdf-tools", "x"), map[string]string{
		"notes.log":    "log",
		"tmp/cache.md": "cache",
		"ref/api.md":   "api",
	})

	cfg := config.DefaultConfig()
	cfg.Packaging.OutputDir = filepath.Join(root, "configured")
	cfg.Packaging.Exclude = []string{"**/*.log"}

	res := runCLI(t, Dependencies{Config: staticConfig{cfg: cfg}}, "package", dir, "--exclude", "tmp/**")
	if res.code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", res.code, res.stderr)
	}

	got := archiveNames(t, filepath.Join(cfg.Packaging.OutputDir, "pdf-tools.zip"))
	want := []string{"pdf-tools/SKILL.md", "pdf-tools/ref/api.md"}
	if !slices.Equal(got, want) {
		t.Errorf("archive entries = %v, want %v", got, want)
	}
}

func TestPackageCommandInvalidExclude(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := testutil.WriteSkill(t, root, "pdf-tools", testutil.SkillDocument("pdf-tools", "x"), nil)
	outDir := filepath.Join(root, "dist")

	res := runCLI(t, Dependencies{}, "package", dir, outDir, "--exclude", "[oops")
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if !strings.Contains(res.stderr, "--exclude") {
		t.Errorf("stderr = %q, want exclude suggestion", res.stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "pdf-tools.zip")); err == nil {
		t.Error("archive should not be written")
	}
}

func TestPackageCommandArgCount(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"package"}, {"package", "a", "b", "c"}} {
		if res := runCLI(t, Dependencies{}, args...); res.code != 1 {
			t.Errorf("%v: exit code = %d, want 1", args, res.code)
		}
	}
}

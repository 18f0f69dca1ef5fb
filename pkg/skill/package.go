// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ArchiveExt is the extension of archives produced by Package.
const ArchiveExt = ".zip"

type (
	// PackageOptions configures a single Package call.
	PackageOptions struct {
		// SkillPath is the skill directory to package.
		SkillPath string
		// OutputDir receives the archive. It is created when missing. An empty
		// value selects the current working directory, which is never created.
		OutputDir string
		// Exclude holds doublestar patterns matched against slash-separated
		// paths relative to the skill directory. The root SKILL.md is never
		// excluded.
		Exclude []string
		// KeepPartial leaves an incomplete archive on disk after a write failure.
		KeepPartial bool
		// OnValidated, when set, receives the validation verdict before any
		// archive is created.
		OnValidated func(Verdict)
		// OnEntry, when set, is called with each entry name after it is written.
		OnEntry func(name string)

		// openFile opens skill files for reading; nil selects os.Open.
		openFile func(path string) (io.ReadCloser, error)
	}

	// PackageResult describes a successfully written archive.
	PackageResult struct {
		ArchivePath string
		Entries     []string
		Verdict     Verdict
	}
)

// ArchiveName returns the archive file name for the skill directory dir.
func ArchiveName(dir string) string {
	return filepath.Base(filepath.Clean(dir)) + ArchiveExt
}

// Package validates the skill at opts.SkillPath and writes it to
// <output dir>/<skill dir name>.zip. Every precondition is checked before the
// archive file is created, so no file is left behind when one fails.
func Package(opts PackageOptions) (*PackageResult, error) {
	skillDir, err := resolveSkillDir(opts.SkillPath)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(filepath.Join(skillDir, DefinitionFile)); statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return nil, &MissingDocumentError{Dir: skillDir}
		}
		return nil, &MissingDocumentError{Dir: skillDir, Cause: statErr}
	}

	if err := validateExcludes(opts.Exclude); err != nil {
		return nil, err
	}

	verdict := Validate(skillDir)
	if opts.OnValidated != nil {
		opts.OnValidated(verdict)
	}
	if !verdict.OK {
		return nil, &ValidationFailedError{Verdict: verdict}
	}

	outDir, err := resolveOutputDir(opts.OutputDir)
	if err != nil {
		return nil, &ArchiveWriteError{Path: opts.OutputDir, Cause: err}
	}

	archivePath := filepath.Join(outDir, ArchiveName(skillDir))
	entries, err := writeArchive(archivePath, skillDir, opts)
	if err != nil {
		return nil, &ArchiveWriteError{Path: archivePath, Cause: err}
	}

	return &PackageResult{
		ArchivePath: archivePath,
		Entries:     entries,
		Verdict:     verdict,
	}, nil
}

func (o PackageOptions) opener() func(string) (io.ReadCloser, error) {
	if o.openFile != nil {
		return o.openFile
	}
	return func(path string) (io.ReadCloser, error) { return os.Open(path) }
}

// resolveSkillDir makes path absolute, resolves symlinks, and checks that it
// names an existing directory.
func resolveSkillDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathNotFoundError{Path: path}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &PathNotFoundError{Path: abs}
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: abs}
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &PathNotFoundError{Path: abs}
	}
	return resolved, nil
}

func resolveOutputDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return filepath.EvalSymlinks(wd)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return filepath.EvalSymlinks(abs)
}

func validateExcludes(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return &InvalidExcludePatternError{Pattern: pat}
		}
	}
	return nil
}

// excluded reports whether rel (slash-separated, relative to the skill
// directory) matches one of patterns.
func excluded(patterns []string, rel string) bool {
	if rel == DefinitionFile {
		return false
	}
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// writeArchive creates archivePath and adds every regular file under skillDir
// in lexical walk order. Entry names are relative to the parent of skillDir.
// On failure the file it created is removed unless opts.KeepPartial is set;
// nothing is removed when the file could not be created.
func writeArchive(archivePath, skillDir string, opts PackageOptions) (entries []string, err error) {
	zipFile, err := os.Create(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && !opts.KeepPartial {
			_ = os.Remove(archivePath) // Best-effort cleanup of the partial archive.
		}
	}()
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	parent := filepath.Dir(skillDir)

	walkErr := filepath.WalkDir(skillDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(skillDir, path)
		if relErr != nil {
			return fmt.Errorf("relative path of %s: %w", path, relErr)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && excluded(opts.Exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if path == archivePath || excluded(opts.Exclude, rel) {
			return nil
		}

		// Stat follows symlinks: linked files are archived with the target's
		// content, linked directories and special files are skipped.
		info, statErr := os.Stat(path)
		if statErr != nil {
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			return statErr
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		entryRel, relErr := filepath.Rel(parent, path)
		if relErr != nil {
			return fmt.Errorf("relative path of %s: %w", path, relErr)
		}
		name := filepath.ToSlash(entryRel)

		if addErr := addFile(zipWriter, opts.opener(), path, name, info); addErr != nil {
			return addErr
		}
		entries = append(entries, name)
		if opts.OnEntry != nil {
			opts.OnEntry(name)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return entries, nil
}

func addFile(zw *zip.Writer, open func(string) (io.ReadCloser, error), path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("create header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}

	src, err := open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }() // Read-only file; close error non-critical.

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

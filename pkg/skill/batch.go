// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds PackageAll when BatchOptions.Concurrency is unset.
const DefaultConcurrency = 4

var discoverySkipDirs = []string{".git", "node_modules"}

type (
	// BatchOptions configures PackageAll.
	BatchOptions struct {
		// Skills lists the skill directories to package, in result order.
		Skills []string
		// OutputDir, Exclude and KeepPartial apply to every skill.
		OutputDir   string
		Exclude     []string
		KeepPartial bool
		// Concurrency caps the number of skills packaged at once.
		Concurrency int
	}

	// BatchResult is the outcome for one skill of a PackageAll call.
	BatchResult struct {
		Skill  string
		Result *PackageResult
		Err    error
	}
)

// Discover returns every directory under root that holds a SKILL.md, sorted.
// It does not descend into a skill once found and skips VCS and dependency
// directories.
func Discover(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && slices.Contains(discoverySkipDirs, d.Name()) {
			return filepath.SkipDir
		}
		if fileExists(filepath.Join(path, DefinitionFile)) {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover skills in %s: %w", root, err)
	}
	slices.Sort(dirs)
	return dirs, nil
}

// PackageAll packages every skill in opts.Skills. Each skill is an independent
// task: a failure is recorded in its BatchResult and never stops the others.
// Results keep the order of opts.Skills. Skills whose archive name was
// already claimed by an earlier entry fail with *DuplicateArchiveError without
// being packaged.
func PackageAll(ctx context.Context, opts BatchOptions) []BatchResult {
	logger := log.FromContext(ctx)

	results := make([]BatchResult, len(opts.Skills))
	claimed := make(map[string]string, len(opts.Skills))
	for i, dir := range opts.Skills {
		results[i].Skill = dir
		archive := ArchiveName(resolvedDir(dir))
		if first, dup := claimed[archive]; dup {
			results[i].Err = &DuplicateArchiveError{Archive: archive, Skill: dir, ClaimedBy: first}
			continue
		}
		claimed[archive] = dir
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	// The group context is not used: a failing skill must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(limit)

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			logger.Debug("packaging skill", "skill", results[i].Skill)
			res, err := Package(PackageOptions{
				SkillPath:   results[i].Skill,
				OutputDir:   opts.OutputDir,
				Exclude:     opts.Exclude,
				KeepPartial: opts.KeepPartial,
			})
			if err != nil {
				logger.Debug("skill failed", "skill", results[i].Skill, "err", err)
				results[i].Err = err
				return nil
			}
			logger.Debug("skill packaged", "skill", results[i].Skill, "archive", res.ArchivePath, "entries", len(res.Entries))
			results[i].Result = res
			return nil
		})
	}
	_ = g.Wait() // Tasks record their own errors.

	return results
}

// resolvedDir returns dir with symlinks resolved, as Package names archives
// after the resolved directory. Unresolvable paths are returned unchanged and
// fail later in Package.
func resolvedDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return dir
	}
	return resolved
}

// Failed counts the results that carry an error.
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

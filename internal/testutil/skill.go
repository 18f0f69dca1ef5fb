// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
)

// SkillDocument returns SKILL.md content with a metadata block carrying name
// and description, followed by a short body.
func SkillDocument(name, description string) string {
	return fmt.Sprintf("---\nname: %s\ndescription: %s\n---\n\n# %s\n\nUsage notes.\n", name, description, name)
}

// WriteSkill creates parent/dirName with a SKILL.md holding content and any
// extra files given as relative path to content pairs. It returns the skill
// directory path.
func WriteSkill(t testing.TB, parent, dirName, content string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(parent, dirName)
	MustWriteFile(t, filepath.Join(dir, "SKILL.md"), content)
	for rel, data := range files {
		MustWriteFile(t, filepath.Join(dir, filepath.FromSlash(rel)), data)
	}
	return dir
}

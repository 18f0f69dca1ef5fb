// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"testing"

	"github.com/invowk/skillpack/pkg/skill"
)

func TestForSkillError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantIssue Id
	}{
		{"path not found", &skill.PathNotFoundError{Path: "/x"}, SkillPathNotFoundId},
		{"not a directory", &skill.NotADirectoryError{Path: "/x"}, SkillPathNotFoundId},
		{"missing document", &skill.MissingDocumentError{Dir: "/x"}, DefinitionNotFoundId},
		{"missing frontmatter", skill.ErrMissingFrontmatter, FrontmatterInvalidId},
		{"missing field", &skill.MissingFieldError{Field: "name"}, FrontmatterInvalidId},
		{
			"validation failure unwraps to name error",
			&skill.ValidationFailedError{Verdict: skill.Verdict{
				Message: "bad", Err: &skill.InvalidNameShapeError{Value: "a--b"},
			}},
			SkillNameInvalidId,
		},
		{"description", &skill.ForbiddenCharacterError{}, DescriptionInvalidId},
		{"exclude pattern", &skill.InvalidExcludePatternError{Pattern: "["}, ExcludePatternInvalidId},
		{"archive write", &skill.ArchiveWriteError{Path: "/x.zip", Cause: errors.New("disk full")}, ArchiveWriteFailedId},
		{"unrelated", errors.New("other"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := ForSkillError(tt.err, "package skill", "./s")
			if ae == nil {
				t.Fatal("ForSkillError() returned nil")
			}
			if ae.Issue != tt.wantIssue {
				t.Errorf("Issue = %d, want %d", ae.Issue, tt.wantIssue)
			}
			if tt.wantIssue != 0 && !ae.HasSuggestions() {
				t.Error("expected at least one suggestion")
			}
			if !errors.Is(ae, tt.err) {
				t.Error("ActionableError should wrap the original error")
			}
		})
	}
}

func TestForSkillError_Nil(t *testing.T) {
	if ForSkillError(nil, "op", "res") != nil {
		t.Error("ForSkillError(nil) should return nil")
	}
}

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"github.com/invowk/skillpack/pkg/skill"
)

// ForSkillError wraps a pkg/skill error with the catalog entry and
// suggestions that match its kind. Errors of other kinds are wrapped with
// context only. It returns nil when err is nil.
func ForSkillError(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}

	ctx := NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)

	switch {
	case errors.Is(err, skill.ErrPathNotFound), errors.Is(err, skill.ErrNotADirectory):
		ctx.WithIssue(SkillPathNotFoundId).
			WithSuggestion("Check that the path points to a skill directory")
	case errors.Is(err, skill.ErrMissingDocument):
		ctx.WithIssue(DefinitionNotFoundId).
			WithSuggestion("Create a SKILL.md file at the root of the skill directory")
	case errors.Is(err, skill.ErrMissingFrontmatter), errors.Is(err, skill.ErrMalformedFrontmatter),
		errors.Is(err, skill.ErrMissingField):
		ctx.WithIssue(FrontmatterInvalidId).
			WithSuggestion("Start SKILL.md with a '---' fenced block holding 'name:' and 'description:'")
	case errors.Is(err, skill.ErrInvalidNameFormat), errors.Is(err, skill.ErrInvalidNameShape):
		ctx.WithIssue(SkillNameInvalidId).
			WithSuggestion("Use lowercase letters, digits and single hyphens, e.g. 'pdf-tools'")
	case errors.Is(err, skill.ErrForbiddenCharacter):
		ctx.WithIssue(DescriptionInvalidId).
			WithSuggestion("Remove '<' and '>' from the description")
	case errors.Is(err, skill.ErrInvalidExcludePattern):
		ctx.WithIssue(ExcludePatternInvalidId).
			WithSuggestion("Check the --exclude flags and the packaging.exclude setting")
	case errors.Is(err, skill.ErrArchiveWrite):
		ctx.WithIssue(ArchiveWriteFailedId).
			WithSuggestion("Check permissions on the output directory and the skill files")
	case errors.Is(err, skill.ErrDuplicateArchive):
		ctx.WithSuggestion("Rename one of the skill directories or package them to different output directories")
	}

	return ctx.Build()
}

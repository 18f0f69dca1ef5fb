// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDocument is the sentinel error wrapped by MissingDocumentError.
	ErrMissingDocument = errors.New("SKILL.md not found")
	// ErrMissingFrontmatter is returned when SKILL.md does not open with a "---" fence.
	//nolint:staticcheck // message is user-facing and matched verbatim
	ErrMissingFrontmatter = errors.New("No YAML frontmatter found")
	// ErrMalformedFrontmatter is returned when the opening fence has no closing fence.
	//nolint:staticcheck // message is user-facing and matched verbatim
	ErrMalformedFrontmatter = errors.New("Invalid frontmatter format")
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing frontmatter field")
	// ErrInvalidNameFormat is the sentinel error wrapped by InvalidNameFormatError.
	ErrInvalidNameFormat = errors.New("invalid skill name format")
	// ErrInvalidNameShape is the sentinel error wrapped by InvalidNameShapeError.
	ErrInvalidNameShape = errors.New("invalid skill name shape")
	// ErrForbiddenCharacter is the sentinel error wrapped by ForbiddenCharacterError.
	ErrForbiddenCharacter = errors.New("forbidden character in description")
	// ErrPathNotFound is the sentinel error wrapped by PathNotFoundError.
	ErrPathNotFound = errors.New("skill path not found")
	// ErrNotADirectory is the sentinel error wrapped by NotADirectoryError.
	ErrNotADirectory = errors.New("skill path is not a directory")
	// ErrValidationFailed is the sentinel error wrapped by ValidationFailedError.
	ErrValidationFailed = errors.New("skill validation failed")
	// ErrArchiveWrite is the sentinel error wrapped by ArchiveWriteError.
	ErrArchiveWrite = errors.New("archive write failed")
	// ErrInvalidExcludePattern is the sentinel error wrapped by InvalidExcludePatternError.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	// ErrDuplicateArchive is the sentinel error wrapped by DuplicateArchiveError.
	ErrDuplicateArchive = errors.New("duplicate archive name")
)

type (
	// MissingDocumentError is returned when SKILL.md is absent from the skill
	// directory or cannot be read. Cause is set for read failures.
	MissingDocumentError struct {
		Dir   string
		Cause error
	}

	// MissingFieldError is returned when a required key is absent from the
	// metadata block.
	MissingFieldError struct {
		Field string
	}

	// InvalidNameFormatError is returned when a skill name contains characters
	// outside [a-z0-9-].
	InvalidNameFormatError struct {
		Value Name
	}

	// InvalidNameShapeError is returned when a skill name starts or ends with a
	// hyphen, or contains "--".
	InvalidNameShapeError struct {
		Value Name
	}

	// ForbiddenCharacterError is returned when a description contains '<' or '>'.
	ForbiddenCharacterError struct {
		Value Description
	}

	// PathNotFoundError is returned when the skill path does not exist.
	PathNotFoundError struct {
		Path string
	}

	// NotADirectoryError is returned when the skill path is not a directory.
	NotADirectoryError struct {
		Path string
	}

	// ValidationFailedError is returned by Package when the skill does not pass
	// Validate. It carries the failing Verdict.
	ValidationFailedError struct {
		Verdict Verdict
	}

	// ArchiveWriteError is returned when the archive cannot be written.
	ArchiveWriteError struct {
		Path  string
		Cause error
	}

	// InvalidExcludePatternError is returned for a malformed doublestar pattern.
	InvalidExcludePatternError struct {
		Pattern string
	}

	// DuplicateArchiveError is returned by PackageAll when two skills would
	// produce the same archive file.
	DuplicateArchiveError struct {
		Archive   string
		Skill     string
		ClaimedBy string
	}
)

// Error implements the error interface.
func (e *MissingDocumentError) Error() string {
	if e.Dir == "" {
		return ErrMissingDocument.Error()
	}
	return fmt.Sprintf("%s in %s", ErrMissingDocument.Error(), e.Dir)
}

// Unwrap returns the sentinel and, when present, the underlying read error.
func (e *MissingDocumentError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMissingDocument}
	}
	return []error{ErrMissingDocument, e.Cause}
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing '%s' in frontmatter", e.Field)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface.
func (e *InvalidNameFormatError) Error() string {
	return fmt.Sprintf("Name '%s' should be hyphen-case (lowercase letters, digits, and hyphens only)", e.Value)
}

// Unwrap returns ErrInvalidNameFormat for errors.Is() compatibility.
func (e *InvalidNameFormatError) Unwrap() error { return ErrInvalidNameFormat }

// Error implements the error interface.
func (e *InvalidNameShapeError) Error() string {
	return fmt.Sprintf("Name '%s' cannot start/end with hyphen or contain consecutive hyphens", e.Value)
}

// Unwrap returns ErrInvalidNameShape for errors.Is() compatibility.
func (e *InvalidNameShapeError) Unwrap() error { return ErrInvalidNameShape }

// Error implements the error interface.
func (e *ForbiddenCharacterError) Error() string {
	return "Description cannot contain angle brackets (< or >)"
}

// Unwrap returns ErrForbiddenCharacter for errors.Is() compatibility.
func (e *ForbiddenCharacterError) Unwrap() error { return ErrForbiddenCharacter }

// Error implements the error interface.
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("Skill folder not found: %s", e.Path)
}

// Unwrap returns ErrPathNotFound for errors.Is() compatibility.
func (e *PathNotFoundError) Unwrap() error { return ErrPathNotFound }

// Error implements the error interface.
func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("Path is not a directory: %s", e.Path)
}

// Unwrap returns ErrNotADirectory for errors.Is() compatibility.
func (e *NotADirectoryError) Unwrap() error { return ErrNotADirectory }

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("Validation failed: %s", e.Verdict.Message)
}

// Unwrap returns the sentinel and the validation error that produced the verdict.
func (e *ValidationFailedError) Unwrap() []error {
	if e.Verdict.Err == nil {
		return []error{ErrValidationFailed}
	}
	return []error{ErrValidationFailed, e.Verdict.Err}
}

// Error implements the error interface.
func (e *ArchiveWriteError) Error() string {
	return fmt.Sprintf("Error creating zip file %s: %v", e.Path, e.Cause)
}

// Unwrap returns the sentinel and the underlying I/O error.
func (e *ArchiveWriteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrArchiveWrite}
	}
	return []error{ErrArchiveWrite, e.Cause}
}

// Error implements the error interface.
func (e *InvalidExcludePatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q", e.Pattern)
}

// Unwrap returns ErrInvalidExcludePattern for errors.Is() compatibility.
func (e *InvalidExcludePatternError) Unwrap() error { return ErrInvalidExcludePattern }

// Error implements the error interface.
func (e *DuplicateArchiveError) Error() string {
	return fmt.Sprintf("archive %s for %s is already produced by %s", e.Archive, e.Skill, e.ClaimedBy)
}

// Unwrap returns ErrDuplicateArchive for errors.Is() compatibility.
func (e *DuplicateArchiveError) Unwrap() error { return ErrDuplicateArchive }

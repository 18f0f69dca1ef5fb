// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "package skill"},
			expected: "failed to package skill",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "package skill", Resource: "./pdf-tools"},
			expected: "failed to package skill: ./pdf-tools",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load configuration", Cause: errors.New("bad syntax")},
			expected: "failed to load configuration: bad syntax",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "package skill",
				Resource:  "./pdf-tools",
				Cause:     errors.New("SKILL.md not found"),
			},
			expected: "failed to package skill: ./pdf-tools: SKILL.md not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	root := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "package skill",
		Resource:    "./pdf-tools",
		Suggestions: []string{"Check permissions", "Free up disk space"},
		Cause:       fmt.Errorf("write entry: %w", root),
	}

	plain := err.Format(false)
	if !strings.HasPrefix(plain, err.Error()) {
		t.Errorf("Format(false) should start with Error(), got %q", plain)
	}
	for _, s := range err.Suggestions {
		if !strings.Contains(plain, "  • "+s) {
			t.Errorf("Format(false) missing suggestion %q", s)
		}
	}
	if strings.Contains(plain, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Error("Format(true) should include the error chain")
	}
	if !strings.Contains(verbose, "1. write entry: permission denied") || !strings.Contains(verbose, "2. permission denied") {
		t.Errorf("Format(true) chain incomplete:\n%s", verbose)
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	if (&ActionableError{Operation: "x"}).HasSuggestions() {
		t.Error("HasSuggestions() = true with no suggestions")
	}
	if !(&ActionableError{Operation: "x", Suggestions: []string{"y"}}).HasSuggestions() {
		t.Error("HasSuggestions() = false with a suggestion")
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("create pull request").
		WithResource("docs/prs/pr_1.md").
		WithSuggestion("one").
		WithSuggestions("two", "three").
		WithIssue(PullRequestFailedId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "create pull request" || ae.Resource != "docs/prs/pr_1.md" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3 entries", ae.Suggestions)
	}
	if ae.Issue != PullRequestFailedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, PullRequestFailedId)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() without operation = %+v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithContext(t *testing.T) {
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("x")
	ae := WrapWithContext(cause, "op", "res")
	if ae.Operation != "op" || ae.Resource != "res" || !errors.Is(ae, cause) {
		t.Errorf("WrapWithContext() = %+v", ae)
	}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/invowk/skillpack/internal/config"
	"github.com/invowk/skillpack/internal/issue"
)

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method, which adds the error chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// reportFailure prints err with its suggestions to w and returns the
// *ExitError the handler should return. In verbose mode the catalog guidance
// for the error is rendered below it.
func reportFailure(w io.Writer, s settings, err error, operation, resource string) error {
	ae := issue.ForSkillError(err, operation, resource)
	fmt.Fprintf(w, "%s %s\n", errorIcon, formatErrorForDisplay(ae, s.verbose))

	if s.verbose && ae.Issue != 0 {
		if guide := issue.Get(ae.Issue); guide != nil {
			if rendered, renderErr := guide.Render(glamourStyle(s.cfg.UI.ColorScheme)); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
	}

	return &ExitError{Code: 1}
}

// issueSuggestions returns the fix-it hints for a skill error.
func issueSuggestions(err error, resource string) []string {
	return issue.ForSkillError(err, "validate skill", resource).Suggestions
}

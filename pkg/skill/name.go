// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Name is a skill identifier in hyphen-case: lowercase ASCII letters, digits
// and single hyphens between segments.
type Name string

// Validate returns nil when the name is valid hyphen-case, an
// *InvalidNameFormatError when it contains other characters, or an
// *InvalidNameShapeError when hyphens are misplaced.
func (n Name) Validate() error {
	s := string(n)
	if !namePattern.MatchString(s) {
		return &InvalidNameFormatError{Value: n}
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
		return &InvalidNameShapeError{Value: n}
	}
	return nil
}

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// ValidateName checks the name carried by fm. A block without a usable
// "name:" value is not checked here; presence is enforced by Validate.
func ValidateName(fm Frontmatter) error {
	value, ok := fm.Lookup(FieldName)
	if !ok {
		return nil
	}
	return Name(value).Validate()
}

// SPDX-License-Identifier: MPL-2.0

package skill

import "strings"

// Description is the free-text summary of a skill.
type Description string

// Validate returns a *ForbiddenCharacterError when the description contains
// an angle bracket.
func (d Description) Validate() error {
	if strings.ContainsAny(string(d), "<>") {
		return &ForbiddenCharacterError{Value: d}
	}
	return nil
}

// String returns the string representation of the Description.
func (d Description) String() string { return string(d) }

// ValidateDescription checks the description carried by fm. A block without
// a usable "description:" value is not checked.
func ValidateDescription(fm Frontmatter) error {
	value, ok := fm.Lookup(FieldDescription)
	if !ok {
		return nil
	}
	return Description(value).Validate()
}

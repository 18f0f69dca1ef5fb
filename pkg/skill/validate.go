// SPDX-License-Identifier: MPL-2.0

package skill

// ValidMessage is the Verdict message of a skill that passes every check.
const ValidMessage = "Skill is valid!"

// Verdict is the outcome of validating a skill directory.
type Verdict struct {
	OK      bool   `json:"valid" yaml:"valid"`
	Message string `json:"message" yaml:"message"`
	// Err is the typed error behind a failing verdict. It is nil when OK.
	Err error `json:"-" yaml:"-"`
}

func failed(err error) Verdict {
	return Verdict{Message: err.Error(), Err: err}
}

// Validate checks the skill in dir and reports the first failure found:
// SKILL.md presence, the metadata block, required keys, the name, and finally
// the description. It reads only SKILL.md and never panics.
func Validate(dir string) Verdict {
	content, err := ReadDefinition(dir)
	if err != nil {
		return failed(err)
	}

	fm, err := ExtractFrontmatter(content)
	if err != nil {
		return failed(err)
	}

	for _, key := range []string{FieldName, FieldDescription} {
		if err := fm.requireField(key); err != nil {
			return failed(err)
		}
	}

	if err := ValidateName(fm); err != nil {
		return failed(err)
	}

	if err := ValidateDescription(fm); err != nil {
		return failed(err)
	}

	return Verdict{OK: true, Message: ValidMessage}
}

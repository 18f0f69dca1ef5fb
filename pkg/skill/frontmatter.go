// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DefinitionFile is the name of the skill definition file expected at the
	// root of every skill directory.
	DefinitionFile = "SKILL.md"

	// FieldName is the metadata key holding the skill identifier.
	FieldName = "name"
	// FieldDescription is the metadata key holding the skill description.
	FieldDescription = "description"

	frontmatterFence = "---"
)

var (
	// frontmatterPattern matches the smallest fenced block at the very start
	// of the document. The closing fence is the first "\n---" after the opening one.
	frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---`)

	fieldPatterns = map[string]*regexp.Regexp{
		FieldName:        regexp.MustCompile(`name:\s*(.+)`),
		FieldDescription: regexp.MustCompile(`description:\s*(.+)`),
	}
)

// Frontmatter is the raw text between the opening and closing fences of a
// definition document.
type Frontmatter string

// ReadDefinition reads SKILL.md from dir.
func ReadDefinition(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, DefinitionFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingDocumentError{}
		}
		return "", &MissingDocumentError{Cause: err}
	}
	return string(data), nil
}

// ExtractFrontmatter returns the metadata block at the start of content.
func ExtractFrontmatter(content string) (Frontmatter, error) {
	fm, _, err := splitDocument(content)
	return fm, err
}

// splitDocument separates the metadata block from the body that follows the
// closing fence.
func splitDocument(content string) (Frontmatter, string, error) {
	if !strings.HasPrefix(content, frontmatterFence) {
		return "", "", ErrMissingFrontmatter
	}
	loc := frontmatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return "", "", ErrMalformedFrontmatter
	}
	fm := Frontmatter(content[loc[2]:loc[3]])
	body := content[loc[1]:]
	// The rest of the closing fence line belongs to the fence.
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	return fm, strings.TrimLeft(body, "\n"), nil
}

// Has reports whether the block contains "key:" anywhere.
func (fm Frontmatter) Has(key string) bool {
	return strings.Contains(string(fm), key+":")
}

// Lookup returns the trimmed value of the first "key: value" occurrence.
// The value may start on the line after the key. ok is false when no
// occurrence carries a value.
func (fm Frontmatter) Lookup(key string) (value string, ok bool) {
	re, known := fieldPatterns[key]
	if !known {
		var err error
		if re, err = regexp.Compile(regexp.QuoteMeta(key) + `:\s*(.+)`); err != nil {
			return "", false
		}
	}
	m := re.FindStringSubmatch(string(fm))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// String returns the raw block text.
func (fm Frontmatter) String() string { return string(fm) }

// requireField returns a MissingFieldError when key is absent from the block.
func (fm Frontmatter) requireField(key string) error {
	if !fm.Has(key) {
		return &MissingFieldError{Field: key}
	}
	return nil
}

// Skill is a parsed definition document.
type Skill struct {
	Dir         string
	Name        Name
	Description Description
	Frontmatter Frontmatter
	Body        string
}

// ReadSkill reads and splits the definition document in dir. It does not
// validate the name or description.
func ReadSkill(dir string) (*Skill, error) {
	content, err := ReadDefinition(dir)
	if err != nil {
		return nil, err
	}
	fm, body, err := splitDocument(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, DefinitionFile), err)
	}
	name, _ := fm.Lookup(FieldName)
	desc, _ := fm.Lookup(FieldDescription)
	return &Skill{
		Dir:         dir,
		Name:        Name(name),
		Description: Description(desc),
		Frontmatter: fm,
		Body:        body,
	}, nil
}

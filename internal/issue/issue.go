// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a catalog entry.
type Id int

const (
	SkillPathNotFoundId Id = iota + 1
	DefinitionNotFoundId
	FrontmatterInvalidId
	SkillNameInvalidId
	DescriptionInvalidId
	ArchiveWriteFailedId
	ExcludePatternInvalidId
	ConfigLoadFailedId
	PullRequestFailedId
)

type (
	// MarkdownMsg is guidance text rendered with glamour.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry with remediation guidance.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the catalog identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw guidance text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guidance for a terminal using the glamour style at
// stylePath ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	skillPathNotFoundIssue = &Issue{
		id: SkillPathNotFoundId,
		mdMsg: `
# Skill directory not found!

The path you gave does not exist or is not a directory.

## Things you can try:
- Check the path for typos
- Pass the skill directory itself, not its SKILL.md file:
~~~
$ skillpack package ./skills/pdf-tools
~~~`,
	}

	definitionNotFoundIssue = &Issue{
		id: DefinitionNotFoundId,
		mdMsg: `
# No SKILL.md found!

Every skill directory needs a SKILL.md file at its root.

## Minimal SKILL.md:
~~~markdown
---
name: pdf-tools
description: Extract text and tables from PDF files
---

# PDF Tools
~~~`,
	}

	frontmatterInvalidIssue = &Issue{
		id: FrontmatterInvalidId,
		mdMsg: `
# SKILL.md metadata block is missing or malformed!

SKILL.md must start with a line containing exactly ` + "`---`" + `, followed by
` + "`key: value`" + ` lines and a closing ` + "`---`" + ` line.

## Common issues:
- Blank lines or a heading before the opening fence
- Missing closing fence
- Windows line endings (CRLF); save the file with LF endings
- Missing ` + "`name:`" + ` or ` + "`description:`" + ` keys`,
	}

	skillNameInvalidIssue = &Issue{
		id: SkillNameInvalidId,
		mdMsg: `
# Invalid skill name!

Skill names are hyphen-case: lowercase letters, digits and single hyphens.
They cannot start or end with a hyphen.

## Examples:
- ` + "`pdf-tools`" + ` is valid
- ` + "`PDF_Tools`" + `, ` + "`-pdf`" + ` and ` + "`pdf--tools`" + ` are not`,
	}

	descriptionInvalidIssue = &Issue{
		id: DescriptionInvalidId,
		mdMsg: `
# Invalid skill description!

Descriptions cannot contain angle brackets (` + "`<`" + ` or ` + "`>`" + `).
Rephrase markup or comparisons in words.`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Failed to write the skill archive!

## Things you can try:
- Check that the output directory is writable
- Check that every file in the skill directory is readable
- Free up disk space
- Re-run with ` + "`--keep-partial`" + ` to inspect the incomplete archive`,
	}

	excludePatternInvalidIssue = &Issue{
		id: ExcludePatternInvalidId,
		mdMsg: `
# Invalid exclude pattern!

Exclude patterns use doublestar glob syntax and are matched against paths
relative to the skill directory.

## Examples:
~~~
--exclude '**/__pycache__' --exclude '*.tmp' --exclude 'tests/**'
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show where the configuration is read from:
~~~
$ skillpack config path
~~~
- Write a fresh default configuration:
~~~
$ skillpack config init
~~~`,
	}

	pullRequestFailedIssue = &Issue{
		id: PullRequestFailedId,
		mdMsg: `
# Failed to create the pull request!

## Things you can try:
- Make sure the GitHub CLI is installed and authenticated:
~~~
$ gh auth status
~~~
- Push your branch before creating the pull request
- Check that the description file starts with a "# Title" line`,
		docLinks: []HttpLink{"https://cli.github.com/manual/gh_pr_create"},
	}

	issues = map[Id]*Issue{
		skillPathNotFoundIssue.Id():     skillPathNotFoundIssue,
		definitionNotFoundIssue.Id():    definitionNotFoundIssue,
		frontmatterInvalidIssue.Id():    frontmatterInvalidIssue,
		skillNameInvalidIssue.Id():      skillNameInvalidIssue,
		descriptionInvalidIssue.Id():    descriptionInvalidIssue,
		archiveWriteFailedIssue.Id():    archiveWriteFailedIssue,
		excludePatternInvalidIssue.Id(): excludePatternInvalidIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		pullRequestFailedIssue.Id():     pullRequestFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// SPDX-License-Identifier: MPL-2.0

// Package skill validates and packages skill bundles.
//
// A skill is a directory holding a SKILL.md definition file at its root plus any
// auxiliary assets. The definition file opens with a metadata block fenced by
// "---" lines. The block is scanned for flat "key: value" pairs rather than being
// parsed as YAML: the first occurrence of a key wins and nested structures are
// not understood.
//
// Validate checks a directory and returns a Verdict. Package gates archive
// creation on a successful Verdict and writes a deflate-compressed zip whose
// only top-level member is the skill directory itself. PackageAll runs Package
// over many skills concurrently.
package skill

// SPDX-License-Identifier: MPL-2.0

// Package prdesc drafts pull request descriptions as markdown files and
// submits them with the GitHub CLI.
//
// A draft lives at <dir>/pr_YYYYMMDD_HHMMSS.md. Its first line is the title
// as a level-one heading; everything from the third line on is the body.
// Drafts are removed once the pull request has been created.
package prdesc

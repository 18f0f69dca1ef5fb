// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError attaches the failed operation, the resource involved, and
// remediation suggestions to an error. The issue catalog holds longer
// Markdown guidance, rendered with glamour, for the failure kinds skillpack
// reports most often.
package issue

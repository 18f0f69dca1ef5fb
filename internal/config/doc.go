// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/skillpack/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/skillpack/config.cue on macOS, %APPDATA%\skillpack\config.cue
// on Windows), falling back to ./config.cue. SKILLPACK_<SECTION>_<KEY> environment variables
// override file values.
//
// The file is validated against an embedded CUE schema (config_schema.cue) before it is
// merged into Viper, so type errors are reported with the offending field path.
package config

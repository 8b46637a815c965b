// Package relver parses and validates release version strings.
//
// Release versions follow a strict MAJOR.MINOR.PATCH grammar. Pre-release
// identifiers, build metadata, and v-prefixes are all rejected, matching the
// versioning used across the beads project files.
package relver

// Package plan defines the release synchronization plan: the canonical source
// of truth for the current version, plus the ordered list of tracked files
// whose version fields are rewritten in lockstep.
//
// A built-in plan matches the beads repository layout. A release.yaml file at
// the release root can override it, for example when a fork renames files.
package plan

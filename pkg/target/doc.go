// Package target models the tracked files whose version fields are kept in
// lockstep during a release.
//
// Each target pairs a file path with a format-specific locator for its version
// field. Extraction is structural or anchored rather than a blind substring
// match, and a missing locator is always reported as an error so a file that
// drifted out of the expected shape cannot be silently skipped.
package target

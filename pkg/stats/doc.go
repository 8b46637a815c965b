// Package stats retrieves and presents project statistics from the bd CLI.
//
// The bd tool is treated as an opaque collaborator: this package invokes
// `bd stats --json`, decodes the snapshot it returns, and renders categorical
// counts, a completion rate, recently changed issues, and a threshold-based
// follow-up suggestion.
package stats

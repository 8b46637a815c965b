// Package paths provides utilities for resolving project roots.
//
// This package implements functions for locating the git repository root and
// for validating that a directory is the root of a beads checkout, so commands
// operate on an explicit root rather than the ambient working directory.
package paths

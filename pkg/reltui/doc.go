// Package reltui provides the terminal UI for release operations.
//
// It renders per-file rewrite progress from relcmd events, falling back to
// plain output when stdout is not a terminal.
package reltui

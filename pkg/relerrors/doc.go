// Package relerrors provides error definitions and handling for release operations.
//
// This package defines standardized error types and error handling utilities
// to ensure consistent error reporting and wrapping throughout the codebase.
package relerrors

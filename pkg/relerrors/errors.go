package relerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = errors.New("read file")

	// ErrFileNotFound indicates a file wasn't found in the specified path.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidVersion indicates a version string failed strict validation.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrMarkerNotFound indicates a tracked file is missing its version marker.
	ErrMarkerNotFound = errors.New("version marker not found")

	// ErrVersionMismatch indicates a tracked file's extracted version differs
	// from the expected value.
	ErrVersionMismatch = errors.New("version mismatch")

	// ErrDirtyWorkTree indicates the git working tree has uncommitted changes.
	ErrDirtyWorkTree = errors.New("working tree has uncommitted changes")

	// ErrAborted indicates the operator declined to proceed.
	ErrAborted = errors.New("aborted")

	// ErrInvalidPlan indicates a release plan failed validation.
	ErrInvalidPlan = errors.New("invalid release plan")

	// ErrJSONMarshal indicates an error occurred while marshaling JSON.
	ErrJSONMarshal = errors.New("marshal JSON")
)

package main

import (
	"errors"
	"fmt"
	"path/filepath"
)

// NotFoundError indicates that a requested file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// UnsupportedFormatError indicates a file whose extension is not in the
// supported image set, or an archive with no usable entries.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Path)
}

// IsUnsupportedFormat reports whether err is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// DecodeError indicates that a file was read but its bitmap failed to parse.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// IOError indicates an enumerate, read, trash, or rename failure at the
// filesystem level.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIOError reports whether err is an IOError.
func IsIOError(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}

// NameConflictError indicates that a rename target already exists.
type NameConflictError struct {
	Path string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("name already exists: %s", e.Path)
}

// IsNameConflict reports whether err is a NameConflictError.
func IsNameConflict(err error) bool {
	var target *NameConflictError
	return errors.As(err, &target)
}

// InvalidNameError indicates a rename name that is empty, unchanged, or
// contains characters the host filesystem forbids.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

// IsInvalidName reports whether err is an InvalidNameError.
func IsInvalidName(err error) bool {
	var target *InvalidNameError
	return errors.As(err, &target)
}

// RenameFailedError indicates that the filesystem rejected a rename after
// validation passed.
type RenameFailedError struct {
	Path string
	Err  error
}

func (e *RenameFailedError) Error() string {
	return fmt.Sprintf("rename %s: %v", e.Path, e.Err)
}

func (e *RenameFailedError) Unwrap() error { return e.Err }

// IsRenameFailed reports whether err is a RenameFailedError.
func IsRenameFailed(err error) bool {
	var target *RenameFailedError
	return errors.As(err, &target)
}

// errorMessage converts an error into the short text shown in the overlay.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		var e *NotFoundError
		errors.As(err, &e)
		return "File not found: " + filepath.Base(e.Path)
	case IsUnsupportedFormat(err):
		var e *UnsupportedFormatError
		errors.As(err, &e)
		return "Unsupported format: " + filepath.Base(e.Path)
	case IsDecodeError(err):
		var e *DecodeError
		errors.As(err, &e)
		return "Cannot decode: " + filepath.Base(e.Path)
	case IsNameConflict(err):
		var e *NameConflictError
		errors.As(err, &e)
		return "Name already exists: " + filepath.Base(e.Path)
	case IsInvalidName(err):
		var e *InvalidNameError
		errors.As(err, &e)
		return "Invalid name: " + e.Reason
	case IsRenameFailed(err):
		return "Rename failed"
	case IsIOError(err):
		var e *IOError
		errors.As(err, &e)
		return "I/O error: " + e.Op + " failed"
	default:
		return err.Error()
	}
}

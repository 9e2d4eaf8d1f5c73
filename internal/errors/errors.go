package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

type Kind string

const (
	InvalidConfig Kind = "invalid_config"
	NotFound      Kind = "not_found"
	Permission    Kind = "permission"
	DiskFull      Kind = "disk_full"
	Integrity     Kind = "integrity"
	IOFailure     Kind = "io_failure"
	Internal      Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Classify wraps an I/O error with the kind inferred from the underlying
// OS error. Permission and disk-full conditions are recognized; anything
// else is a plain I/O failure.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	kind := IOFailure
	switch {
	case errors.Is(err, fs.ErrPermission):
		kind = Permission
	case errors.Is(err, syscall.ENOSPC):
		kind = DiskFull
	case errors.Is(err, fs.ErrNotExist):
		kind = NotFound
	}
	return Wrap(kind, op, path, err)
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Fatal reports whether an error should halt the remaining queue.
func Fatal(err error) bool {
	return KindOf(err) == DiskFull
}

func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case Permission:
		return fmt.Sprintf("Permission denied: %s", appErr.Path)
	case DiskFull:
		return fmt.Sprintf("Destination disk is full: %s", appErr.Path)
	case Integrity:
		return fmt.Sprintf("Integrity check failed: %s", appErr.Path)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package errors

import (
	"github.com/juju/errors"
)

const (
	// StoreUnavailable is raised when the configuration or state database of
	// a namespace can not be reached.
	StoreUnavailable = errors.ConstError("store unavailable")
)

type storeUnavailableError struct {
	err error
}

// NewStoreUnavailableError returns an error satisfying StoreUnavailable
// that keeps the connection failure as its message and cause.
func NewStoreUnavailableError(err error) error {
	return &storeUnavailableError{err: err}
}

func (e *storeUnavailableError) Error() string {
	return e.err.Error()
}

// Is implements errors.Is.
func (e *storeUnavailableError) Is(target error) bool {
	return target == StoreUnavailable
}

// Unwrap returns the connection failure.
func (e *storeUnavailableError) Unwrap() error {
	return e.err
}

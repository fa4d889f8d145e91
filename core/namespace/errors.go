// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package namespace

import (
	"fmt"

	"github.com/juju/errors"
)

const (
	// InvalidNamespace is raised when a requested namespace is not part of
	// the deployment.
	InvalidNamespace = errors.ConstError("invalid namespace")

	// ConflictingOptions is raised when a namespace and a redis unix socket
	// path are both supplied.
	ConflictingOptions = errors.ConstError("conflicting options")
)

// invalidNamespaceError carries the offending namespace name and satisfies
// InvalidNamespace.
type invalidNamespaceError struct {
	name string
}

// NewInvalidNamespaceError returns an error satisfying InvalidNamespace for
// the given name.
func NewInvalidNamespaceError(name string) error {
	return &invalidNamespaceError{name: name}
}

func (e *invalidNamespaceError) Error() string {
	return fmt.Sprintf("Invalid namespace: %s", e.name)
}

// Is implements errors.Is.
func (e *invalidNamespaceError) Is(target error) bool {
	return target == InvalidNamespace
}

// Name returns the namespace that was rejected.
func (e *invalidNamespaceError) Name() string {
	return e.name
}

type conflictingOptionsError struct{}

func (conflictingOptionsError) Error() string {
	return "Cannot specify both namespace and redis unix socket path"
}

// Is implements errors.Is.
func (conflictingOptionsError) Is(target error) bool {
	return target == ConflictingOptions
}

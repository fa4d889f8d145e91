// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package namespace

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

// SocketPathAdvisory is reported when the legacy redis unix socket path
// option is used. The option is accepted but ignored.
const SocketPathAdvisory = "'-s|--redis-unix-socket-path' has no effect and is left for compatibility"

// Selection holds the namespace related options of a single command
// invocation.
type Selection struct {
	// Namespace is the requested namespace. Empty means every namespace
	// of the deployment.
	Namespace string

	// SocketPath is the legacy redis unix socket path option.
	SocketPath string
}

// Resolution is the validated outcome of a Selection.
type Resolution struct {
	// Namespaces lists the namespaces to operate on, global first.
	Namespaces []Namespace

	// Sectioned is true when the namespaces were not explicitly requested
	// on a multi-namespace deployment, in which case output is grouped
	// per namespace.
	Sectioned bool

	// Warnings holds non fatal advisories for the user.
	Warnings []string
}

// Resolve validates the selection against the deployment topology. It does
// not access any store. The following errors may be returned:
// - [ConflictingOptions] when both a namespace and a socket path are given.
// - [InvalidNamespace] when the namespace is unknown.
func Resolve(sel Selection, enum Enumerator) (Resolution, error) {
	if sel.Namespace != "" && sel.SocketPath != "" {
		return Resolution{}, conflictingOptionsError{}
	}

	var res Resolution
	if sel.SocketPath != "" {
		// TODO(wrctl): confirm whether the socket path should be
		// rejected on multi-namespace deployments when no namespace is given.
		res.Warnings = append(res.Warnings, SocketPathAdvisory)
	}

	multi := enum.IsMultiNamespace()
	if sel.Namespace == "" {
		if !multi {
			res.Namespaces = []Namespace{Global}
			return res, nil
		}
		all := append([]Namespace{Global}, enum.Namespaces()...)
		res.Namespaces = Sorted(all)
		res.Sectioned = true
		return res, nil
	}

	known := set.NewStrings()
	if multi {
		for _, ns := range enum.Namespaces() {
			known.Add(string(ns))
		}
	}
	if !known.Contains(sel.Namespace) {
		return Resolution{}, errors.Trace(NewInvalidNamespaceError(sel.Namespace))
	}
	res.Namespaces = []Namespace{Namespace(sel.Namespace)}
	return res, nil
}

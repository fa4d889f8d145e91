// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package namespace

import (
	"github.com/juju/collections/set"
	"github.com/juju/naturalsort"
)

// Namespace identifies an isolated partition of the configuration and state
// databases. The zero value is the global (default) namespace.
type Namespace string

// Global is the default namespace present on every deployment.
const Global Namespace = ""

// globalDisplayName is how the global namespace is presented to users.
const globalDisplayName = "global"

// String implements fmt.Stringer.
func (n Namespace) String() string {
	return string(n)
}

// IsGlobal reports whether n is the global namespace.
func (n Namespace) IsGlobal() bool {
	return n == Global
}

// DisplayName returns the name used when presenting the namespace, which
// is "global" for the global namespace.
func (n Namespace) DisplayName() string {
	if n.IsGlobal() {
		return globalDisplayName
	}
	return string(n)
}

// Enumerator describes the namespace topology of a deployment.
type Enumerator interface {
	// IsMultiNamespace reports whether the deployment is partitioned into
	// more than the global namespace.
	IsMultiNamespace() bool

	// Namespaces returns the non-global namespaces of the deployment.
	Namespaces() []Namespace
}

// Sorted returns the distinct namespaces with the global namespace first,
// if present, and the remainder in natural order, so that asic2 sorts
// before asic10.
func Sorted(namespaces []Namespace) []Namespace {
	seen := set.NewStrings()
	names := make([]string, 0, len(namespaces))
	hasGlobal := false
	for _, ns := range namespaces {
		if ns.IsGlobal() {
			hasGlobal = true
			continue
		}
		if seen.Contains(string(ns)) {
			continue
		}
		seen.Add(string(ns))
		names = append(names, string(ns))
	}
	naturalsort.Sort(names)

	result := make([]Namespace, 0, len(names)+1)
	if hasGlobal {
		result = append(result, Global)
	}
	for _, name := range names {
		result = append(result, Namespace(name))
	}
	return result
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package warmrestart holds the warm-restart domain: per-namespace enable
// flags and reconciliation timers kept in the configuration database, and
// per-process restart state published in the state database.
//
// The state package reads and writes the rows of a single namespace. The
// service package fans operations out over a set of namespaces and merges
// the results.
package warmrestart

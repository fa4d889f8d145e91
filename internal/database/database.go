// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package database

import (
	"context"
	"fmt"

	"github.com/juju/errors"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
)

// DBName names a logical database hosted by a redis instance.
type DBName string

const (
	// ConfigDB holds administrator supplied configuration.
	ConfigDB DBName = "CONFIG_DB"

	// StateDB holds operational state written by runtime agents.
	StateDB DBName = "STATE_DB"
)

// DefaultSeparator joins a table name and a row key.
const DefaultSeparator = "|"

// Unavailable is raised when a connection to a namespace's database can not
// be established.
const Unavailable = errors.ConstError("database unavailable")

// Client is the hash and key-listing contract of one logical database in
// one namespace. All values are strings.
type Client interface {
	// HGet returns a single field of a hash. An error satisfying
	// errors.NotFound is returned if the hash or field does not exist.
	HGet(ctx context.Context, key, field string) (string, error)

	// HGetAll returns every field of a hash. A missing hash yields an empty
	// map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HSet writes the given fields to a hash, creating it if required.
	HSet(ctx context.Context, key string, fields map[string]string) error

	// Keys returns the keys matching a redis glob style pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Separator returns the table/key separator used by this database.
	Separator() string

	// Close releases the connection.
	Close() error
}

// Endpoint locates a logical database.
type Endpoint struct {
	// Network is either "unix" or "tcp".
	Network string

	// Address is a unix socket path or a host:port pair.
	Address string

	// DB is the redis database index.
	DB int

	// Separator joins table names and row keys.
	Separator string
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%s/%d", e.Network, e.Address, e.DB)
}

// EndpointResolver locates the logical databases of each namespace.
type EndpointResolver interface {
	Endpoint(ns namespace.Namespace, db DBName) (Endpoint, error)
}

// Dialer opens clients to logical databases.
type Dialer interface {
	Dial(ctx context.Context, ns namespace.Namespace, db DBName) (Client, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, ns namespace.Namespace, db DBName) (Client, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(ctx context.Context, ns namespace.Namespace, db DBName) (Client, error) {
	return f(ctx, ns, db)
}

type unavailableError struct {
	db  DBName
	err error
}

// NewUnavailableError returns an error satisfying Unavailable, wrapping the
// underlying connection failure.
func NewUnavailableError(db DBName, err error) error {
	return &unavailableError{db: db, err: err}
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("cannot connect to %s: %v", e.db, e.err)
}

// Is implements errors.Is.
func (e *unavailableError) Is(target error) bool {
	return target == Unavailable
}

// Unwrap returns the underlying connection failure.
func (e *unavailableError) Unwrap() error {
	return e.err
}

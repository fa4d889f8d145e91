// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package database

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
)

var logger = loggo.GetLogger("wrctl.database")

type connKey struct {
	ns namespace.Namespace
	db DBName
}

// Connections lazily opens and caches one client per namespace and logical
// database for the lifetime of the process.
type Connections struct {
	dialer Dialer

	mu      sync.Mutex
	clients map[connKey]Client
}

// NewConnections returns a connection cache using the given dialer.
func NewConnections(dialer Dialer) *Connections {
	return &Connections{
		dialer:  dialer,
		clients: make(map[connKey]Client),
	}
}

// Client returns the cached client for the namespace and database, dialing
// it on first use. Failed dials are not cached. Dial failures satisfy
// [Unavailable].
func (c *Connections) Client(ctx context.Context, ns namespace.Namespace, db DBName) (Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := connKey{ns: ns, db: db}
	if client, ok := c.clients[key]; ok {
		return client, nil
	}

	logger.Debugf("connecting to %s in namespace %s", db, ns.DisplayName())
	client, err := c.dialer.Dial(ctx, ns, db)
	if err != nil {
		return nil, NewUnavailableError(db, err)
	}
	c.clients[key] = client
	return client, nil
}

// Close closes every cached client.
func (c *Connections) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result *multierror.Error
	for key, client := range c.clients {
		if err := client.Close(); err != nil {
			result = multierror.Append(result, errors.Annotatef(err,
				"closing %s in namespace %s", key.db, key.ns.DisplayName()))
		}
		delete(c.clients, key)
	}
	return result.ErrorOrNil()
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/sonic-net/sonic-wrctl/cmd/wrctl/warmrestart"
	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart/service"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart/state"
	"github.com/sonic-net/sonic-wrctl/internal/database"
	"github.com/sonic-net/sonic-wrctl/internal/database/dbconfig"
	"github.com/sonic-net/sonic-wrctl/internal/database/redis"
)

// Backend wires the warm-restart commands to the redis databases described
// by the topology files. The topology is read on first use and the
// connections live until Close.
type Backend struct {
	dir      string
	topology *dbconfig.Topology
	conns    *database.Connections
}

// NewBackend returns a backend reading its topology from dbconfig.Dir().
func NewBackend() *Backend {
	return &Backend{dir: dbconfig.Dir()}
}

// AddFlags implements cmd.FlagAdder.
func (b *Backend) AddFlags(f *gnuflag.FlagSet) {
	f.StringVar(&b.dir, "db-config-dir", b.dir, "Directory holding the database topology files")
}

func (b *Backend) loadTopology() (*dbconfig.Topology, error) {
	if b.topology != nil {
		return b.topology, nil
	}
	topology, err := dbconfig.Load(b.dir)
	if err != nil {
		return nil, errors.Annotate(err, "loading database topology")
	}
	logger.Debugf("loaded database topology from %s, namespaces %v", b.dir, topology.Namespaces())
	b.topology = topology
	return topology, nil
}

// Namespaces implements warmrestart.Backend.
func (b *Backend) Namespaces() (namespace.Enumerator, error) {
	topology, err := b.loadTopology()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return topology, nil
}

// Service implements warmrestart.Backend.
func (b *Backend) Service() (warmrestart.Service, error) {
	topology, err := b.loadTopology()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if b.conns == nil {
		b.conns = database.NewConnections(redis.NewDialer(topology))
	}
	return service.NewService(state.NewState(b.conns)), nil
}

// Close releases every database connection opened by the backend.
func (b *Backend) Close() error {
	if b.conns == nil {
		return nil
	}
	return errors.Trace(b.conns.Close())
}

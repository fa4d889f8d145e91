// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package state

import (
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart"
	warmrestarterrors "github.com/sonic-net/sonic-wrctl/domain/warmrestart/errors"
	"github.com/sonic-net/sonic-wrctl/internal/database"
)

var logger = loggo.GetLogger("wrctl.warmrestart.state")

// State hands out the configuration and state stores of each namespace.
type State struct {
	conns *database.Connections
}

// NewState returns a State backed by the given connection cache.
func NewState(conns *database.Connections) *State {
	return &State{conns: conns}
}

// ConfigStore returns the configuration store of a namespace. Connection
// failures satisfy warmrestarterrors.StoreUnavailable.
func (st *State) ConfigStore(ctx context.Context, ns namespace.Namespace) (warmrestart.ConfigStore, error) {
	client, err := st.client(ctx, ns, database.ConfigDB)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewConfigStore(client), nil
}

// StateStore returns the state store of a namespace. Connection failures
// satisfy warmrestarterrors.StoreUnavailable.
func (st *State) StateStore(ctx context.Context, ns namespace.Namespace) (warmrestart.StateStore, error) {
	client, err := st.client(ctx, ns, database.StateDB)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewStateStore(client), nil
}

func (st *State) client(ctx context.Context, ns namespace.Namespace, db database.DBName) (database.Client, error) {
	client, err := st.conns.Client(ctx, ns, db)
	if errors.Is(err, database.Unavailable) {
		logger.Debugf("%s of namespace %s unavailable: %v", db, ns.DisplayName(), err)
		return nil, warmrestarterrors.NewStoreUnavailableError(err)
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	return client, nil
}

// table addresses the rows of one table in a client.
type table struct {
	client database.Client
}

func (t table) key(name, key string) string {
	return name + t.client.Separator() + key
}

func (t table) get(ctx context.Context, name, key, field string) (string, error) {
	value, err := t.client.HGet(ctx, t.key(name, key), field)
	return value, errors.Trace(err)
}

func (t table) getAll(ctx context.Context, name, key string) (map[string]string, error) {
	fields, err := t.client.HGetAll(ctx, t.key(name, key))
	return fields, errors.Trace(err)
}

func (t table) set(ctx context.Context, name, key, field, value string) error {
	err := t.client.HSet(ctx, t.key(name, key), map[string]string{field: value})
	return errors.Annotatef(err, "setting %s of %s", field, t.key(name, key))
}

func (t table) keys(ctx context.Context, name, pattern string) ([]string, error) {
	prefix := name + t.client.Separator()
	keys, err := t.client.Keys(ctx, prefix+pattern)
	if err != nil {
		return nil, errors.Annotatef(err, "listing %s", prefix+pattern)
	}
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		result = append(result, strings.TrimPrefix(key, prefix))
	}
	return result, nil
}

// ConfigStore implements warmrestart.ConfigStore over a configuration
// database client.
type ConfigStore struct {
	table
}

// NewConfigStore returns a ConfigStore using the client.
func NewConfigStore(client database.Client) *ConfigStore {
	return &ConfigStore{table: table{client: client}}
}

// Get implements warmrestart.ConfigStore.
func (s *ConfigStore) Get(ctx context.Context, name, key, field string) (string, error) {
	return s.get(ctx, name, key, field)
}

// GetTable implements warmrestart.ConfigStore.
func (s *ConfigStore) GetTable(ctx context.Context, name string) (map[string]map[string]string, error) {
	keys, err := s.keys(ctx, name, "*")
	if err != nil {
		return nil, errors.Trace(err)
	}
	rows := make(map[string]map[string]string, len(keys))
	for _, key := range keys {
		fields, err := s.getAll(ctx, name, key)
		if err != nil {
			return nil, errors.Annotatef(err, "reading %s", s.key(name, key))
		}
		rows[key] = fields
	}
	return rows, nil
}

// Set implements warmrestart.ConfigStore.
func (s *ConfigStore) Set(ctx context.Context, name, key, field, value string) error {
	return s.set(ctx, name, key, field, value)
}

// StateStore implements warmrestart.StateStore over a state database
// client.
type StateStore struct {
	table
}

// NewStateStore returns a StateStore using the client.
func NewStateStore(client database.Client) *StateStore {
	return &StateStore{table: table{client: client}}
}

// Get implements warmrestart.StateStore.
func (s *StateStore) Get(ctx context.Context, name, key, field string) (string, error) {
	return s.get(ctx, name, key, field)
}

// GetAll implements warmrestart.StateStore.
func (s *StateStore) GetAll(ctx context.Context, name, key string) (map[string]string, error) {
	return s.getAll(ctx, name, key)
}

// Set implements warmrestart.StateStore.
func (s *StateStore) Set(ctx context.Context, name, key, field, value string) error {
	return s.set(ctx, name, key, field, value)
}

// Keys implements warmrestart.StateStore.
func (s *StateStore) Keys(ctx context.Context, name, pattern string) ([]string, error) {
	return s.keys(ctx, name, pattern)
}

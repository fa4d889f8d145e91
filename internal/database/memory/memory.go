// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package memory provides an in-process implementation of the database
// client contract. Every namespace and logical database is an independent
// set of hashes.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/juju/errors"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/internal/database"
)

type dbKey struct {
	ns namespace.Namespace
	db database.DBName
}

// Store holds the hashes of every namespace and logical database.
type Store struct {
	mu  sync.Mutex
	dbs map[dbKey]map[string]map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		dbs: make(map[dbKey]map[string]map[string]string),
	}
}

// Dial implements database.Dialer. Dialing never fails.
func (s *Store) Dial(_ context.Context, ns namespace.Namespace, db database.DBName) (database.Client, error) {
	return &client{store: s, key: dbKey{ns: ns, db: db}}, nil
}

// Hash returns a copy of a hash, or nil if it does not exist.
func (s *Store) Hash(ns namespace.Namespace, db database.DBName, key string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, ok := s.dbs[dbKey{ns: ns, db: db}][key]
	if !ok {
		return nil
	}
	return copyHash(hash)
}

// SetHash merges fields into a hash, creating it if required.
func (s *Store) SetHash(ns namespace.Namespace, db database.DBName, key string, fields map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocked(dbKey{ns: ns, db: db}, key, fields)
}

func (s *Store) setLocked(k dbKey, key string, fields map[string]string) {
	db, ok := s.dbs[k]
	if !ok {
		db = make(map[string]map[string]string)
		s.dbs[k] = db
	}
	hash, ok := db[key]
	if !ok {
		hash = make(map[string]string)
		db[key] = hash
	}
	for field, value := range fields {
		hash[field] = value
	}
}

type client struct {
	store *Store
	key   dbKey
}

// HGet implements database.Client.
func (c *client) HGet(_ context.Context, key, field string) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	value, ok := c.store.dbs[c.key][key][field]
	if !ok {
		return "", errors.NotFoundf("field %q of %q", field, key)
	}
	return value, nil
}

// HGetAll implements database.Client.
func (c *client) HGetAll(_ context.Context, key string) (map[string]string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	hash, ok := c.store.dbs[c.key][key]
	if !ok {
		return map[string]string{}, nil
	}
	return copyHash(hash), nil
}

// HSet implements database.Client.
func (c *client) HSet(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return errors.NotValidf("empty field set for %q", key)
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.store.setLocked(c.key, key, fields)
	return nil
}

// Keys implements database.Client.
func (c *client) Keys(_ context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.NotValidf("key pattern %q", pattern)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var keys []string
	for key := range c.store.dbs[c.key] {
		matched, err := doublestar.Match(pattern, key)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if matched {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Separator implements database.Client.
func (c *client) Separator() string {
	return database.DefaultSeparator
}

// Close implements database.Client.
func (c *client) Close() error {
	return nil
}

func copyHash(hash map[string]string) map[string]string {
	result := make(map[string]string, len(hash))
	for field, value := range hash {
		result[field] = value
	}
	return result
}

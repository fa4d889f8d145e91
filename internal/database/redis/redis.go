// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package redis implements the database client contract on top of redis,
// one connection per namespace and logical database.
package redis

import (
	"context"
	"sort"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/internal/database"
)

var logger = loggo.GetLogger("wrctl.database.redis")

// Dialer opens redis clients for the endpoints reported by a resolver.
type Dialer struct {
	resolver database.EndpointResolver
}

// NewDialer returns a dialer resolving endpoints with the given resolver.
func NewDialer(resolver database.EndpointResolver) *Dialer {
	return &Dialer{resolver: resolver}
}

// Dial implements database.Dialer. The connection is verified with a PING
// before it is returned.
func (d *Dialer) Dial(ctx context.Context, ns namespace.Namespace, db database.DBName) (database.Client, error) {
	endpoint, err := d.resolver.Endpoint(ns, db)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return Open(ctx, endpoint)
}

// Open connects to a single endpoint.
func Open(ctx context.Context, endpoint database.Endpoint) (database.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Network: endpoint.Network,
		Addr:    endpoint.Address,
		DB:      endpoint.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Annotatef(err, "pinging %s", endpoint)
	}
	logger.Debugf("connected to %s", endpoint)

	sep := endpoint.Separator
	if sep == "" {
		sep = database.DefaultSeparator
	}
	return &client{rdb: rdb, separator: sep}, nil
}

type client struct {
	rdb       *goredis.Client
	separator string
}

// HGet implements database.Client.
func (c *client) HGet(ctx context.Context, key, field string) (string, error) {
	value, err := c.rdb.HGet(ctx, key, field).Result()
	if err == goredis.Nil {
		return "", errors.NotFoundf("field %q of %q", field, key)
	} else if err != nil {
		return "", errors.Annotatef(err, "reading field %q of %q", field, key)
	}
	return value, nil
}

// HGetAll implements database.Client.
func (c *client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	hash, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.Annotatef(err, "reading %q", key)
	}
	return hash, nil
}

// HSet implements database.Client.
func (c *client) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return errors.NotValidf("empty field set for %q", key)
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]interface{}, 0, 2*len(names))
	for _, name := range names {
		args = append(args, name, fields[name])
	}
	if err := c.rdb.HSet(ctx, key, args...).Err(); err != nil {
		return errors.Annotatef(err, "writing %q", key)
	}
	return nil
}

// Keys implements database.Client.
func (c *client) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, errors.Annotatef(err, "listing keys matching %q", pattern)
	}
	sort.Strings(keys)
	return keys, nil
}

// Separator implements database.Client.
func (c *client) Separator() string {
	return c.separator
}

// Close implements database.Client.
func (c *client) Close() error {
	return errors.Trace(c.rdb.Close())
}

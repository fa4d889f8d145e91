// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package warmrestart holds the commands that configure warm restart and
// report its progress.
package warmrestart

import (
	"context"
	"fmt"

	"github.com/juju/cmd/v4"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart"
)

var logger = loggo.GetLogger("wrctl.cmd.warmrestart")

// Service applies warm-restart operations across namespaces.
type Service interface {
	Enable(ctx context.Context, nss []namespace.Namespace) error
	Disable(ctx context.Context, nss []namespace.Namespace) error
	SetTimer(ctx context.Context, nss []namespace.Namespace, timer warmrestart.Timer, value string) error
	QueryState(ctx context.Context, nss []namespace.Namespace) ([]warmrestart.StateView, error)
	QueryConfig(ctx context.Context, nss []namespace.Namespace) ([]warmrestart.ConfigView, error)
}

// Backend supplies the collaborators of the warm-restart commands.
type Backend interface {
	// Namespaces returns the namespaces of the deployment. It must not
	// touch any database.
	Namespaces() (namespace.Enumerator, error)

	// Service returns the warm-restart service.
	Service() (Service, error)
}

// baseCommand resolves the namespace options shared by every
// warm-restart command. Resolution happens in Init so that a bad selection
// fails before any database is contacted.
type baseCommand struct {
	cmd.CommandBase

	backend    Backend
	selection  namespace.Selection
	resolution namespace.Resolution
}

// SetFlags implements cmd.Command.
func (c *baseCommand) SetFlags(f *gnuflag.FlagSet) {
	c.CommandBase.SetFlags(f)
	f.StringVar(&c.selection.Namespace, "n", "", "Namespace name")
	f.StringVar(&c.selection.Namespace, "namespace", "", "")
	f.StringVar(&c.selection.SocketPath, "s", "", "Unix socket path of the redis server (ignored)")
	f.StringVar(&c.selection.SocketPath, "redis-unix-socket-path", "", "")
}

func (c *baseCommand) resolve() error {
	enum, err := c.backend.Namespaces()
	if err != nil {
		return errors.Trace(err)
	}
	c.resolution, err = namespace.Resolve(c.selection, enum)
	if err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("resolved namespaces %v", c.resolution.Namespaces)
	return nil
}

// warn writes the advisories raised while resolving namespaces.
func (c *baseCommand) warn(ctx *cmd.Context) {
	for _, w := range c.resolution.Warnings {
		fmt.Fprintf(ctx.Stdout, "Warning: %s\n", w)
	}
}

func (c *baseCommand) service() (Service, error) {
	svc, err := c.backend.Service()
	return svc, errors.Trace(err)
}

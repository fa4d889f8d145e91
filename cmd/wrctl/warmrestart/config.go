// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package warmrestart

import (
	"github.com/juju/cmd/v4"
	"github.com/juju/errors"

	wrctlcmd "github.com/sonic-net/sonic-wrctl/cmd"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart"
)

const enableDoc = `
Sets the warm restart flag of the system in the state database of the
selected namespace, or of every namespace when none is selected.

Examples:

    wrctl config warm_restart enable
    wrctl config warm_restart enable -n asic0
`

const disableDoc = `
Clears the warm restart flag of the system in the state database of the
selected namespace, or of every namespace when none is selected.

Examples:

    wrctl config warm_restart disable
    wrctl config warm_restart disable -n asic1
`

// NewEnableCommand returns a command that enables warm restart.
func NewEnableCommand(backend Backend) cmd.Command {
	return &enableCommand{
		baseCommand: baseCommand{backend: backend},
		enable:      true,
	}
}

// NewDisableCommand returns a command that disables warm restart.
func NewDisableCommand(backend Backend) cmd.Command {
	return &enableCommand{
		baseCommand: baseCommand{backend: backend},
	}
}

type enableCommand struct {
	baseCommand
	enable bool
}

// Info implements cmd.Command.
func (c *enableCommand) Info() *cmd.Info {
	if c.enable {
		return wrctlcmd.Info(&cmd.Info{
			Name:    "enable",
			Purpose: "Enable warm restart.",
			Doc:     enableDoc,
		})
	}
	return wrctlcmd.Info(&cmd.Info{
		Name:    "disable",
		Purpose: "Disable warm restart.",
		Doc:     disableDoc,
	})
}

// Init implements cmd.Command.
func (c *enableCommand) Init(args []string) error {
	if err := cmd.CheckEmpty(args); err != nil {
		return errors.Trace(err)
	}
	return c.resolve()
}

// Run implements cmd.Command.
func (c *enableCommand) Run(ctx *cmd.Context) error {
	c.warn(ctx)
	svc, err := c.service()
	if err != nil {
		return errors.Trace(err)
	}
	if c.enable {
		return errors.Trace(svc.Enable(ctx, c.resolution.Namespaces))
	}
	return errors.Trace(svc.Disable(ctx, c.resolution.Namespaces))
}

var timerInfo = map[warmrestart.Timer]*cmd.Info{
	warmrestart.NeighsyncdTimer: {
		Name:    string(warmrestart.NeighsyncdTimer),
		Args:    "<seconds>",
		Purpose: "Set the neighbour table reconciliation delay.",
		Doc: `
Sets the number of seconds, between 1 and 9999, neighsyncd waits before
reconciling the neighbour table after a warm restart.

Examples:

    wrctl config warm_restart neighsyncd_timer 200
`,
	},
	warmrestart.BGPTimer: {
		Name:    string(warmrestart.BGPTimer),
		Args:    "<seconds>",
		Purpose: "Set the BGP routes reconciliation delay.",
		Doc: `
Sets the number of seconds, between 1 and 3600, BGP waits before
reconciling its routes after a warm restart.

Examples:

    wrctl config warm_restart bgp_timer 180 -n asic0
`,
	},
	warmrestart.BGPEOIU: {
		Name:    string(warmrestart.BGPEOIU),
		Args:    "[true|false]",
		Purpose: "Toggle BGP end-of-initial-update detection.",
		Doc: `
Enables or disables BGP end-of-initial-update detection during warm
restart. The value defaults to true.

Examples:

    wrctl config warm_restart bgp_eoiu
    wrctl config warm_restart bgp_eoiu false
`,
	},
}

// NewTimerCommand returns a command that sets the given timer.
func NewTimerCommand(backend Backend, timer warmrestart.Timer) cmd.Command {
	return &timerCommand{
		baseCommand: baseCommand{backend: backend},
		timer:       timer,
	}
}

type timerCommand struct {
	baseCommand
	timer warmrestart.Timer
	value string
}

// Info implements cmd.Command.
func (c *timerCommand) Info() *cmd.Info {
	return wrctlcmd.Info(timerInfo[c.timer])
}

// Init implements cmd.Command.
func (c *timerCommand) Init(args []string) error {
	switch {
	case len(args) == 0 && c.timer == warmrestart.BGPEOIU:
		c.value = "true"
	case len(args) == 0:
		return errors.Errorf("missing %s value", c.timer)
	default:
		c.value, args = args[0], args[1:]
		if err := cmd.CheckEmpty(args); err != nil {
			return errors.Trace(err)
		}
	}
	if err := c.timer.Validate(c.value); err != nil {
		return errors.Trace(err)
	}
	return c.resolve()
}

// Run implements cmd.Command.
func (c *timerCommand) Run(ctx *cmd.Context) error {
	c.warn(ctx)
	svc, err := c.service()
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(svc.SetTimer(ctx, c.resolution.Namespaces, c.timer, c.value))
}

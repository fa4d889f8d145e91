// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package commands assembles the wrctl command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/juju/cmd/v4"
	"github.com/juju/loggo/v2"

	wrctlcmd "github.com/sonic-net/sonic-wrctl/cmd"
	"github.com/sonic-net/sonic-wrctl/cmd/wrctl/warmrestart"
	domainwarmrestart "github.com/sonic-net/sonic-wrctl/domain/warmrestart"
)

var logger = loggo.GetLogger("wrctl.cmd.commands")

var wrctlDoc = `
wrctl configures warm restart on switches running one or more database
namespaces, and reports the progress of warm restarting processes.

Without a namespace option every command applies to the global namespace
followed by each ASIC namespace.
`

const configDoc = `
Commands that change the configuration of the device.
`

const showDoc = `
Commands that report the configuration and state of the device.
`

const configWarmRestartDoc = `
Enables or disables warm restart and sets the warm restart timers.
`

const showWarmRestartDoc = `
Shows the warm restart configuration and the state of warm restarting
processes.
`

// Main registers subcommands for the wrctl executable, and hands over
// control to the cmd package. It returns the exit code.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	backend := NewBackend()
	code := cmd.Main(NewWrctlCommand(backend), ctx, args[1:])
	if err := backend.Close(); err != nil {
		logger.Warningf("closing database connections: %v", err)
	}
	return code
}

// NewWrctlCommand returns the top level wrctl command.
func NewWrctlCommand(backend *Backend) cmd.Command {
	wcmd := wrctlcmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:        "wrctl",
		Doc:         wrctlDoc,
		GlobalFlags: backend,
	})
	registerCommands(wcmd, backend)
	return wcmd
}

type commandRegistry interface {
	Register(cmd.Command)
}

// registerCommands registers commands in the specified registry.
func registerCommands(r commandRegistry, backend warmrestart.Backend) {
	configWarmRestart := wrctlcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "warm_restart",
		UsagePrefix: "wrctl config",
		Purpose:     "Configure warm restart.",
		Doc:         configWarmRestartDoc,
	})
	configWarmRestart.Register(warmrestart.NewEnableCommand(backend))
	configWarmRestart.Register(warmrestart.NewDisableCommand(backend))
	for _, timer := range []domainwarmrestart.Timer{
		domainwarmrestart.NeighsyncdTimer,
		domainwarmrestart.BGPTimer,
		domainwarmrestart.BGPEOIU,
	} {
		configWarmRestart.Register(warmrestart.NewTimerCommand(backend, timer))
	}

	showWarmRestart := wrctlcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "warm_restart",
		UsagePrefix: "wrctl show",
		Purpose:     "Show warm restart configuration and state.",
		Doc:         showWarmRestartDoc,
	})
	showWarmRestart.Register(warmrestart.NewShowStateCommand(backend))
	showWarmRestart.Register(warmrestart.NewShowConfigCommand(backend))

	config := wrctlcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "config",
		UsagePrefix: "wrctl",
		Purpose:     "Change the device configuration.",
		Doc:         configDoc,
	})
	config.Register(configWarmRestart)

	show := wrctlcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "show",
		UsagePrefix: "wrctl",
		Purpose:     "Show the device configuration and state.",
		Doc:         showDoc,
	})
	show.Register(showWarmRestart)

	r.Register(config)
	r.Register(show)
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package warmrestart

import (
	"fmt"
	"io"

	"github.com/juju/cmd/v4"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	wrctlcmd "github.com/sonic-net/sonic-wrctl/cmd"
	"github.com/sonic-net/sonic-wrctl/cmd/output"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart"
)

const showStateDoc = `
Shows the warm restart progress of every process: how many times its state
was restored and the state it reached.

When no namespace is selected on a multi-namespace device, one table is
shown per namespace, starting with the global namespace.

Examples:

    wrctl show warm_restart state
    wrctl show warm_restart state -n asic1
    wrctl show warm_restart state --format yaml
`

const showConfigDoc = `
Shows the warm restart configuration of every process: whether warm
restart is enabled, its reconciliation timer and whether BGP
end-of-initial-update detection is enabled. Settings that are not
configured are shown as NULL.

When no namespace is selected on a multi-namespace device, one table is
shown per namespace, starting with the global namespace.

Examples:

    wrctl show warm_restart config
    wrctl show warm_restart config -n asic0
`

// showCommand holds the output handling shared by the reporting
// commands.
type showCommand struct {
	baseCommand
	out output.Output
}

func (c *showCommand) setFlags(f *gnuflag.FlagSet, tabular output.Formatter) {
	c.baseCommand.SetFlags(f)
	c.out.AddFlags(f, "tabular", map[string]output.Formatter{
		"tabular": tabular,
		"yaml":    output.FormatYaml,
		"json":    output.FormatJson,
	})
}

// Init implements cmd.Command.
func (c *showCommand) Init(args []string) error {
	if err := cmd.CheckEmpty(args); err != nil {
		return errors.Trace(err)
	}
	return c.resolve()
}

// writeSection precedes a namespace table with its heading when every
// namespace is shown.
func (c *showCommand) writeSection(w io.Writer, name string) error {
	if !c.resolution.Sectioned {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nFor namespace %s:\n\n", name)
	return errors.Trace(err)
}

// NewShowStateCommand returns a command that shows per-process warm
// restart state.
func NewShowStateCommand(backend Backend) cmd.Command {
	return &showStateCommand{
		showCommand: showCommand{
			baseCommand: baseCommand{backend: backend},
		},
	}
}

type showStateCommand struct {
	showCommand
}

// Info implements cmd.Command.
func (c *showStateCommand) Info() *cmd.Info {
	return wrctlcmd.Info(&cmd.Info{
		Name:    "state",
		Purpose: "Show warm restart state.",
		Doc:     showStateDoc,
	})
}

// SetFlags implements cmd.Command.
func (c *showStateCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f, c.formatTabular)
}

// Run implements cmd.Command.
func (c *showStateCommand) Run(ctx *cmd.Context) error {
	c.warn(ctx)
	svc, err := c.service()
	if err != nil {
		return errors.Trace(err)
	}
	views, queryErr := svc.QueryState(ctx, c.resolution.Namespaces)
	if len(views) > 0 {
		if err := c.out.Write(ctx, toStateOutput(views)); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(queryErr)
}

func (c *showStateCommand) formatTabular(w io.Writer, value interface{}) error {
	namespaces, ok := value.([]namespaceState)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", namespaces, value)
	}
	for _, ns := range namespaces {
		if err := c.writeSection(w, ns.Namespace); err != nil {
			return errors.Trace(err)
		}
		table := output.NewTable("name", "restore_count", "state")
		for _, process := range ns.Processes {
			table.AddRow(process.Name, output.OrNull(process.RestoreCount), output.OrNull(process.State))
		}
		if err := table.Write(w); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// NewShowConfigCommand returns a command that shows the warm restart
// configuration.
func NewShowConfigCommand(backend Backend) cmd.Command {
	return &showConfigCommand{
		showCommand: showCommand{
			baseCommand: baseCommand{backend: backend},
		},
	}
}

type showConfigCommand struct {
	showCommand
}

// Info implements cmd.Command.
func (c *showConfigCommand) Info() *cmd.Info {
	return wrctlcmd.Info(&cmd.Info{
		Name:    "config",
		Purpose: "Show warm restart configuration.",
		Doc:     showConfigDoc,
	})
}

// SetFlags implements cmd.Command.
func (c *showConfigCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f, c.formatTabular)
}

// Run implements cmd.Command.
func (c *showConfigCommand) Run(ctx *cmd.Context) error {
	c.warn(ctx)
	svc, err := c.service()
	if err != nil {
		return errors.Trace(err)
	}
	views, queryErr := svc.QueryConfig(ctx, c.resolution.Namespaces)
	if len(views) > 0 {
		if err := c.out.Write(ctx, toConfigOutput(views)); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(queryErr)
}

func (c *showConfigCommand) formatTabular(w io.Writer, value interface{}) error {
	namespaces, ok := value.([]namespaceConfig)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", namespaces, value)
	}
	for _, ns := range namespaces {
		if err := c.writeSection(w, ns.Namespace); err != nil {
			return errors.Trace(err)
		}
		table := output.NewTable("name", "enable", "timer_name", "timer_duration", "eoiu_enable")
		for _, entry := range ns.Entries {
			table.AddRow(
				entry.Name,
				output.OrNull(entry.Enable),
				output.OrNull(entry.TimerName),
				output.OrNull(entry.TimerDuration),
				output.OrNull(entry.EOIUEnable),
			)
		}
		if err := table.Write(w); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// namespaceState is the serialised form of a warmrestart.StateView.
type namespaceState struct {
	Namespace string                     `yaml:"namespace" json:"namespace"`
	Processes []warmrestart.ProcessState `yaml:"processes" json:"processes"`
}

func toStateOutput(views []warmrestart.StateView) []namespaceState {
	result := make([]namespaceState, len(views))
	for i, view := range views {
		result[i] = namespaceState{
			Namespace: view.Namespace.DisplayName(),
			Processes: view.Processes,
		}
	}
	return result
}

// namespaceConfig is the serialised form of a warmrestart.ConfigView.
type namespaceConfig struct {
	Namespace string                    `yaml:"namespace" json:"namespace"`
	Entries   []warmrestart.ConfigEntry `yaml:"entries" json:"entries"`
}

func toConfigOutput(views []warmrestart.ConfigView) []namespaceConfig {
	result := make([]namespaceConfig, len(views))
	for i, view := range views {
		result[i] = namespaceConfig{
			Namespace: view.Namespace.DisplayName(),
			Entries:   view.Entries,
		}
	}
	return result
}

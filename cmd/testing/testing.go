// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"bytes"

	"github.com/juju/cmd/v4"
	"github.com/juju/cmd/v4/cmdtesting"
	"github.com/juju/gnuflag"
	gc "gopkg.in/check.v1"
)

// HelpText returns a command's formatted help text.
func HelpText(command cmd.Command, name string) string {
	buff := &bytes.Buffer{}
	info := command.Info()
	info.Name = name
	f := gnuflag.NewFlagSetWithFlagKnownAs(info.Name, gnuflag.ContinueOnError, "option")
	command.SetFlags(f)
	buff.Write(info.Help(f))
	return buff.String()
}

// Result holds the outcome of running a command through cmd.Main.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// RunMain runs the command the way the wrctl binary does, returning the
// exit code and everything written to stdout and stderr.
func RunMain(c *gc.C, command cmd.Command, args ...string) Result {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(command, ctx, args)
	return Result{
		Code:   code,
		Stdout: cmdtesting.Stdout(ctx),
		Stderr: cmdtesting.Stderr(ctx),
	}
}

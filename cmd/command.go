// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"github.com/juju/cmd/v4"
)

// Info returns a copy of i with the presentation shared by every wrctl
// command: flags are called options and the logging flags of the super
// command are listed in the help output.
func Info(i *cmd.Info) *cmd.Info {
	info := *i
	info.FlagKnownAs = "option"
	info.ShowSuperFlags = []string{"debug", "logging-config", "verbose", "quiet", "h", "help"}
	return &info
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/juju/cmd/v4"
	"github.com/juju/loggo/v2"
)

const (
	// LoggingConfigEnvKey holds the default logging configuration of every
	// command run.
	LoggingConfigEnvKey = "WRCTL_LOGGING_CONFIG"

	// StartupLoggingConfigEnvKey holds the logging configuration applied
	// before command line arguments are parsed.
	StartupLoggingConfigEnvKey = "WRCTL_STARTUP_LOGGING_CONFIG"
)

// Version is the version of the wrctl tools.
const Version = "1.0.0"

func init() {
	// If the environment key is empty, ConfigureLoggers returns nil and does
	// nothing.
	err := loggo.ConfigureLoggers(os.Getenv(StartupLoggingConfigEnvKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR parsing %s: %s\n\n", StartupLoggingConfigEnvKey, err)
	}
}

var logger = loggo.GetLogger("wrctl.cmd")

// NewSuperCommand is like cmd.NewSuperCommand but
// it adds wrctl-specific functionality:
// - The default logging configuration is taken from the environment;
// - The version is configured to the current wrctl version;
// - The command emits a log message when a command runs.
func NewSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.Log = &cmd.Log{
		DefaultConfig: os.Getenv(LoggingConfigEnvKey),
	}
	p.Version = Version
	p.NotifyRun = runNotifier
	p.FlagKnownAs = "option"
	return cmd.NewSuperCommand(p)
}

// NewSubSuperCommand should be used to create a SuperCommand
// that runs as a subcommand of some other SuperCommand.
func NewSubSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.NotifyRun = runNotifier
	p.FlagKnownAs = "option"
	return cmd.NewSuperCommand(p)
}

func runNotifier(name string) {
	logger.Infof("running %s [%s %s %s]", name, Version, runtime.Compiler, runtime.Version())
}

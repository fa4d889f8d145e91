// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package warmrestart

import (
	"context"
	"strconv"

	"github.com/juju/errors"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
)

const (
	// ConfigTable is the configuration database table holding per-process
	// warm-restart settings.
	ConfigTable = "WARM_RESTART"

	// EnableTable is the state database table holding warm-restart enable
	// flags.
	EnableTable = "WARM_RESTART_ENABLE_TABLE"

	// StateTable is the state database table holding per-process restart
	// progress.
	StateTable = "WARM_RESTART_TABLE"

	// SystemKey is the enable table row covering the whole system.
	SystemKey = "system"

	// EnableField holds "true" or "false".
	EnableField = "enable"
)

// Timer names a configurable warm-restart timer.
type Timer string

const (
	// NeighsyncdTimer is the neighbour table reconciliation delay.
	NeighsyncdTimer Timer = "neighsyncd_timer"

	// BGPTimer is the BGP routes reconciliation delay.
	BGPTimer Timer = "bgp_timer"

	// BGPEOIU toggles end-of-initial-update detection for BGP.
	BGPEOIU Timer = "bgp_eoiu"
)

// timerTargets maps each timer onto the configuration row it lives in.
var timerTargets = map[Timer]string{
	NeighsyncdTimer: "swss",
	BGPTimer:        "bgp",
	BGPEOIU:         "bgp",
}

// Target returns the configuration row key and field the timer is stored
// in. An error satisfying errors.NotValid is returned for unknown timers.
func (t Timer) Target() (key, field string, err error) {
	key, ok := timerTargets[t]
	if !ok {
		return "", "", errors.NotValidf("timer %q", string(t))
	}
	return key, string(t), nil
}

// Validate checks a value before it is written for the timer.
func (t Timer) Validate(value string) error {
	switch t {
	case NeighsyncdTimer:
		return validateSeconds(t, value, 9999)
	case BGPTimer:
		return validateSeconds(t, value, 3600)
	case BGPEOIU:
		if value != "true" && value != "false" {
			return errors.NotValidf("%s value %q, expected true or false", string(t), value)
		}
		return nil
	}
	return errors.NotValidf("timer %q", string(t))
}

func validateSeconds(t Timer, value string, max int) error {
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 1 || secs > max {
		return errors.NotValidf("%s value %q, expected an integer between 1 and %d", string(t), value, max)
	}
	return nil
}

// TimerColumns lists, in order of precedence, the configuration fields shown
// in the timer columns of the configuration view.
var TimerColumns = []string{
	string(NeighsyncdTimer),
	string(BGPTimer),
	"teamsyncd_timer",
}

// ProcessState is the restart progress of one process.
type ProcessState struct {
	Name         string  `mapstructure:"-" yaml:"name" json:"name"`
	RestoreCount *string `mapstructure:"restore_count" yaml:"restore_count" json:"restore_count"`
	State        *string `mapstructure:"state" yaml:"state" json:"state"`
}

// ConfigEntry is the warm-restart configuration of one process. Absent
// values are nil.
type ConfigEntry struct {
	Name          string  `yaml:"name" json:"name"`
	Enable        *string `yaml:"enable" json:"enable"`
	TimerName     *string `yaml:"timer_name" json:"timer_name"`
	TimerDuration *string `yaml:"timer_duration" json:"timer_duration"`
	EOIUEnable    *string `yaml:"eoiu_enable" json:"eoiu_enable"`
}

// StateView is the process state of one namespace.
type StateView struct {
	Namespace namespace.Namespace
	Processes []ProcessState
}

// ConfigView is the configuration of one namespace.
type ConfigView struct {
	Namespace namespace.Namespace
	Entries   []ConfigEntry
}

// ConfigStore reads and writes the configuration database of one
// namespace.
type ConfigStore interface {
	// Get returns a field of a table row. An error satisfying
	// errors.NotFound is returned when the row or field is absent.
	Get(ctx context.Context, table, key, field string) (string, error)

	// GetTable returns every row of a table keyed by row key.
	GetTable(ctx context.Context, table string) (map[string]map[string]string, error)

	// Set writes a field of a table row, creating the row if required.
	Set(ctx context.Context, table, key, field, value string) error
}

// StateStore reads and writes the state database of one namespace.
type StateStore interface {
	// Get returns a field of a table row. An error satisfying
	// errors.NotFound is returned when the row or field is absent.
	Get(ctx context.Context, table, key, field string) (string, error)

	// GetAll returns every field of a table row. A missing row yields an
	// empty map.
	GetAll(ctx context.Context, table, key string) (map[string]string, error)

	// Set writes a field of a table row, creating the row if required.
	Set(ctx context.Context, table, key, field, value string) error

	// Keys returns the row keys of a table matching a glob pattern, with
	// the table prefix removed.
	Keys(ctx context.Context, table, pattern string) ([]string, error)
}

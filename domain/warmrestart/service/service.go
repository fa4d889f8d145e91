// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/mitchellh/mapstructure"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/domain/warmrestart"
)

var logger = loggo.GetLogger("wrctl.warmrestart.service")

// State describes retrieval of the per-namespace stores.
type State interface {
	// ConfigStore returns the configuration store of a namespace.
	ConfigStore(ctx context.Context, ns namespace.Namespace) (warmrestart.ConfigStore, error)

	// StateStore returns the state store of a namespace.
	StateStore(ctx context.Context, ns namespace.Namespace) (warmrestart.StateStore, error)
}

// Service applies warm-restart operations across namespaces.
//
// Every operation visits the namespaces in the order given. A failure in one
// namespace does not prevent the others from being visited; the failures
// are combined into the returned error. Writes already made are kept and
// views already read are returned alongside the error.
type Service struct {
	st State
}

// NewService returns a new Service for interacting with the underlying
// state.
func NewService(st State) *Service {
	return &Service{
		st: st,
	}
}

// Enable sets the system warm-restart flag in each namespace.
func (s *Service) Enable(ctx context.Context, nss []namespace.Namespace) error {
	return errors.Trace(s.setEnable(ctx, nss, "true"))
}

// Disable clears the system warm-restart flag in each namespace.
func (s *Service) Disable(ctx context.Context, nss []namespace.Namespace) error {
	return errors.Trace(s.setEnable(ctx, nss, "false"))
}

func (s *Service) setEnable(ctx context.Context, nss []namespace.Namespace, value string) error {
	return forEach(nss, "setting warm restart enable to "+value, func(ns namespace.Namespace) error {
		store, err := s.st.StateStore(ctx, ns)
		if err != nil {
			return errors.Trace(err)
		}
		return store.Set(ctx, warmrestart.EnableTable, warmrestart.SystemKey, warmrestart.EnableField, value)
	})
}

// SetTimer writes a timer value in each namespace. The value is stored as
// given. An error satisfying errors.NotValid is returned, before any store
// is touched, if the timer is unknown.
func (s *Service) SetTimer(ctx context.Context, nss []namespace.Namespace, timer warmrestart.Timer, value string) error {
	key, field, err := timer.Target()
	if err != nil {
		return errors.Trace(err)
	}
	return forEach(nss, "setting "+field, func(ns namespace.Namespace) error {
		store, err := s.st.ConfigStore(ctx, ns)
		if err != nil {
			return errors.Trace(err)
		}
		return store.Set(ctx, warmrestart.ConfigTable, key, field, value)
	})
}

// QueryState returns the process restart state of each namespace. Rows are
// sorted by process name.
func (s *Service) QueryState(ctx context.Context, nss []namespace.Namespace) ([]warmrestart.StateView, error) {
	var views []warmrestart.StateView
	err := forEach(nss, "querying warm restart state", func(ns namespace.Namespace) error {
		view, err := s.queryState(ctx, ns)
		if err != nil {
			return errors.Trace(err)
		}
		views = append(views, view)
		return nil
	})
	return views, err
}

func (s *Service) queryState(ctx context.Context, ns namespace.Namespace) (warmrestart.StateView, error) {
	store, err := s.st.StateStore(ctx, ns)
	if err != nil {
		return warmrestart.StateView{}, errors.Trace(err)
	}
	keys, err := store.Keys(ctx, warmrestart.StateTable, "*")
	if err != nil {
		return warmrestart.StateView{}, errors.Trace(err)
	}
	sort.Strings(keys)

	processes := make([]warmrestart.ProcessState, 0, len(keys))
	for _, key := range keys {
		fields, err := store.GetAll(ctx, warmrestart.StateTable, key)
		if err != nil {
			return warmrestart.StateView{}, errors.Trace(err)
		}
		var process warmrestart.ProcessState
		if err := mapstructure.Decode(fields, &process); err != nil {
			return warmrestart.StateView{}, errors.Annotatef(err, "decoding state of %q", key)
		}
		process.Name = key
		processes = append(processes, process)
	}
	return warmrestart.StateView{
		Namespace: ns,
		Processes: processes,
	}, nil
}

// configRow is the subset of a configuration row shown verbatim.
type configRow struct {
	Enable *string `mapstructure:"enable"`
	EOIU   *string `mapstructure:"bgp_eoiu"`
}

// QueryConfig returns the warm-restart configuration of each namespace.
//
// There is one entry per configuration row, sorted by name, followed by one
// entry per enable flag that has no configuration row. The system entry is
// always last. The enable column prefers the enable flag, then the
// configuration row's own enable field, and is "false" otherwise.
func (s *Service) QueryConfig(ctx context.Context, nss []namespace.Namespace) ([]warmrestart.ConfigView, error) {
	var views []warmrestart.ConfigView
	err := forEach(nss, "querying warm restart config", func(ns namespace.Namespace) error {
		view, err := s.queryConfig(ctx, ns)
		if err != nil {
			return errors.Trace(err)
		}
		views = append(views, view)
		return nil
	})
	return views, err
}

func (s *Service) queryConfig(ctx context.Context, ns namespace.Namespace) (warmrestart.ConfigView, error) {
	configStore, err := s.st.ConfigStore(ctx, ns)
	if err != nil {
		return warmrestart.ConfigView{}, errors.Trace(err)
	}
	stateStore, err := s.st.StateStore(ctx, ns)
	if err != nil {
		return warmrestart.ConfigView{}, errors.Trace(err)
	}

	rows, err := configStore.GetTable(ctx, warmrestart.ConfigTable)
	if err != nil {
		return warmrestart.ConfigView{}, errors.Trace(err)
	}
	flags, err := stateStore.Keys(ctx, warmrestart.EnableTable, "*")
	if err != nil {
		return warmrestart.ConfigView{}, errors.Trace(err)
	}

	entries := make([]warmrestart.ConfigEntry, 0, len(rows)+len(flags))
	for _, name := range entryOrder(rows, flags) {
		entry, err := s.configEntry(ctx, stateStore, name, rows[name])
		if err != nil {
			return warmrestart.ConfigView{}, errors.Trace(err)
		}
		entries = append(entries, entry)
	}
	return warmrestart.ConfigView{
		Namespace: ns,
		Entries:   entries,
	}, nil
}

func (s *Service) configEntry(
	ctx context.Context, stateStore warmrestart.StateStore, name string, fields map[string]string,
) (warmrestart.ConfigEntry, error) {
	var row configRow
	if err := mapstructure.Decode(fields, &row); err != nil {
		return warmrestart.ConfigEntry{}, errors.Annotatef(err, "decoding config of %q", name)
	}

	entry := warmrestart.ConfigEntry{
		Name:       name,
		EOIUEnable: row.EOIU,
	}

	enable, err := stateStore.Get(ctx, warmrestart.EnableTable, name, warmrestart.EnableField)
	switch {
	case err == nil:
		entry.Enable = &enable
	case errors.Is(err, errors.NotFound) && row.Enable != nil:
		entry.Enable = row.Enable
	case errors.Is(err, errors.NotFound):
		disabled := "false"
		entry.Enable = &disabled
	default:
		return warmrestart.ConfigEntry{}, errors.Trace(err)
	}

	for _, column := range warmrestart.TimerColumns {
		if value, ok := fields[column]; ok {
			timerName := column
			entry.TimerName = &timerName
			entry.TimerDuration = &value
			break
		}
	}
	return entry, nil
}

// entryOrder returns configuration row names, then enable flag names
// without a row, with the system entry moved last.
func entryOrder(rows map[string]map[string]string, flags []string) []string {
	configured := set.NewStrings()
	for name := range rows {
		configured.Add(name)
	}
	flagged := set.NewStrings(flags...)

	var names []string
	for _, name := range configured.SortedValues() {
		if name != warmrestart.SystemKey {
			names = append(names, name)
		}
	}
	for _, name := range flagged.Difference(configured).SortedValues() {
		if name != warmrestart.SystemKey {
			names = append(names, name)
		}
	}
	if configured.Contains(warmrestart.SystemKey) || flagged.Contains(warmrestart.SystemKey) {
		names = append(names, warmrestart.SystemKey)
	}
	return names
}

// forEach visits every namespace, collecting failures annotated with the
// namespace they occurred in.
func forEach(nss []namespace.Namespace, op string, fn func(namespace.Namespace) error) error {
	var result *multierror.Error
	for _, ns := range nss {
		logger.Debugf("%s in namespace %s", op, ns.DisplayName())
		if err := fn(ns); err != nil {
			logger.Warningf("%s in namespace %s: %v", op, ns.DisplayName(), err)
			result = multierror.Append(result, errors.Annotatef(err, "namespace %s", ns.DisplayName()))
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listErrors
	return result
}

func listErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package warmrestart_test

import (
	"github.com/juju/cmd/v4/cmdtesting"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	wrctltesting "github.com/sonic-net/sonic-wrctl/cmd/testing"
	"github.com/sonic-net/sonic-wrctl/cmd/wrctl/warmrestart"
	"github.com/sonic-net/sonic-wrctl/core/namespace"
	domainwarmrestart "github.com/sonic-net/sonic-wrctl/domain/warmrestart"
	"github.com/sonic-net/sonic-wrctl/internal/database"
)

type configSuite struct{}

var _ = gc.Suite(&configSuite{})

var allNamespaces = []namespace.Namespace{namespace.Global, "asic0", "asic1", "asic2", "asic3"}

func (s *configSuite) TestEnableEveryNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewEnableCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "")
	for _, ns := range allNamespaces {
		c.Check(backend.enableHash(ns), jc.DeepEquals, map[string]string{"enable": "true"}, gc.Commentf("namespace %q", ns))
	}
}

func (s *configSuite) TestEnableSingleNamespace(c *gc.C) {
	backend := newFakeBackend(singleNamespace)

	_, err := cmdtesting.RunCommand(c, warmrestart.NewEnableCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(backend.enableHash(namespace.Global), jc.DeepEquals, map[string]string{"enable": "true"})
	backend.CheckCallNames(c, "Namespaces", "Service", "Dial")
}

func (s *configSuite) TestDisableSelectedNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	for _, ns := range allNamespaces {
		backend.store.SetHash(ns, database.StateDB, "WARM_RESTART_ENABLE_TABLE|system", map[string]string{"enable": "true"})
	}

	_, err := cmdtesting.RunCommand(c, warmrestart.NewDisableCommand(backend), "-n", "asic2")
	c.Assert(err, jc.ErrorIsNil)
	for _, ns := range allNamespaces {
		expected := "true"
		if ns == "asic2" {
			expected = "false"
		}
		c.Check(backend.enableHash(ns), jc.DeepEquals, map[string]string{"enable": expected}, gc.Commentf("namespace %q", ns))
	}
}

func (s *configSuite) TestEnableSocketPathAdvisory(c *gc.C) {
	backend := newFakeBackend(singleNamespace)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewEnableCommand(backend), "--redis-unix-socket-path", "/var/run/redis/redis.sock")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals,
		"Warning: '-s|--redis-unix-socket-path' has no effect and is left for compatibility\n")
	c.Check(backend.enableHash(namespace.Global), jc.DeepEquals, map[string]string{"enable": "true"})
}

func (s *configSuite) TestEnableInvalidNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	result := wrctltesting.RunMain(c, warmrestart.NewEnableCommand(backend), "-n", "asic9")
	c.Check(result.Code, gc.Equals, 2)
	c.Check(result.Stderr, gc.Matches, "(?s).*Invalid namespace: asic9\n")
	backend.checkNoDatabaseAccess(c)
}

func (s *configSuite) TestDisableConflictingOptions(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	result := wrctltesting.RunMain(c, warmrestart.NewDisableCommand(backend), "-n", "asic0", "-s", "/var/run/redis/redis.sock")
	c.Check(result.Code, gc.Equals, 2)
	c.Check(result.Stderr, gc.Matches, "(?s).*Cannot specify both namespace and redis unix socket path\n")
	backend.checkNoDatabaseAccess(c)
}

func (s *configSuite) TestEnableUnreachableNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	backend.unreachable["asic1"] = true

	result := wrctltesting.RunMain(c, warmrestart.NewEnableCommand(backend))
	c.Check(result.Code, gc.Equals, 1)
	c.Check(result.Stderr, gc.Matches, "(?s).*namespace asic1: cannot connect to STATE_DB: connection refused\n")
	for _, ns := range allNamespaces {
		if ns == "asic1" {
			c.Check(backend.enableHash(ns), gc.IsNil)
			continue
		}
		c.Check(backend.enableHash(ns), jc.DeepEquals, map[string]string{"enable": "true"}, gc.Commentf("namespace %q", ns))
	}
}

func (s *configSuite) TestTimers(c *gc.C) {
	for i, test := range []struct {
		timer domainwarmrestart.Timer
		args  []string
		key   string
		value string
	}{{
		timer: domainwarmrestart.NeighsyncdTimer,
		args:  []string{"200"},
		key:   "WARM_RESTART|swss",
		value: "200",
	}, {
		timer: domainwarmrestart.BGPTimer,
		args:  []string{"180"},
		key:   "WARM_RESTART|bgp",
		value: "180",
	}, {
		timer: domainwarmrestart.BGPEOIU,
		args:  []string{"false"},
		key:   "WARM_RESTART|bgp",
		value: "false",
	}, {
		timer: domainwarmrestart.BGPEOIU,
		key:   "WARM_RESTART|bgp",
		value: "true",
	}} {
		c.Logf("test %d: %s %v", i, test.timer, test.args)
		backend := newFakeBackend(singleNamespace)

		_, err := cmdtesting.RunCommand(c, warmrestart.NewTimerCommand(backend, test.timer), test.args...)
		c.Assert(err, jc.ErrorIsNil)
		c.Check(backend.store.Hash(namespace.Global, database.ConfigDB, test.key), jc.DeepEquals, map[string]string{
			string(test.timer): test.value,
		})
	}
}

func (s *configSuite) TestTimerSelectedNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	_, err := cmdtesting.RunCommand(c, warmrestart.NewTimerCommand(backend, domainwarmrestart.BGPTimer), "-n", "asic3", "90")
	c.Assert(err, jc.ErrorIsNil)
	for _, ns := range allNamespaces {
		hash := backend.store.Hash(ns, database.ConfigDB, "WARM_RESTART|bgp")
		if ns == "asic3" {
			c.Check(hash, jc.DeepEquals, map[string]string{"bgp_timer": "90"})
			continue
		}
		c.Check(hash, gc.IsNil, gc.Commentf("namespace %q", ns))
	}
}

func (s *configSuite) TestTimerInvalidValues(c *gc.C) {
	for i, test := range []struct {
		timer domainwarmrestart.Timer
		args  []string
		err   string
	}{{
		timer: domainwarmrestart.NeighsyncdTimer,
		err:   "missing neighsyncd_timer value",
	}, {
		timer: domainwarmrestart.NeighsyncdTimer,
		args:  []string{"10000"},
		err:   `neighsyncd_timer value "10000", expected an integer between 1 and 9999 not valid`,
	}, {
		timer: domainwarmrestart.BGPTimer,
		args:  []string{"soon"},
		err:   `bgp_timer value "soon", expected an integer between 1 and 3600 not valid`,
	}, {
		timer: domainwarmrestart.BGPEOIU,
		args:  []string{"maybe"},
		err:   `bgp_eoiu value "maybe", expected true or false not valid`,
	}, {
		timer: domainwarmrestart.BGPTimer,
		args:  []string{"10", "20"},
		err:   `unrecognized args: \["20"\]`,
	}} {
		c.Logf("test %d: %s %v", i, test.timer, test.args)
		backend := newFakeBackend(singleNamespace)

		_, err := cmdtesting.RunCommand(c, warmrestart.NewTimerCommand(backend, test.timer), test.args...)
		c.Check(err, gc.ErrorMatches, test.err)
		backend.CheckNoCalls(c)
	}
}

func (s *configSuite) TestTimerInvalidValueExitCode(c *gc.C) {
	backend := newFakeBackend(singleNamespace)

	result := wrctltesting.RunMain(c, warmrestart.NewTimerCommand(backend, domainwarmrestart.BGPTimer), "0")
	c.Check(result.Code, gc.Equals, 2)
	backend.CheckNoCalls(c)
}

func (s *configSuite) TestInfo(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	c.Check(warmrestart.NewEnableCommand(backend).Info().Name, gc.Equals, "enable")
	c.Check(warmrestart.NewDisableCommand(backend).Info().Name, gc.Equals, "disable")

	info := warmrestart.NewTimerCommand(backend, domainwarmrestart.BGPEOIU).Info()
	c.Check(info.Name, gc.Equals, "bgp_eoiu")
	c.Check(info.Args, gc.Equals, "[true|false]")
	c.Check(info.FlagKnownAs, gc.Equals, "option")
}

func (s *configSuite) TestHelpListsNamespaceOption(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	help := wrctltesting.HelpText(warmrestart.NewEnableCommand(backend), "wrctl config warm_restart enable")
	c.Check(help, gc.Matches, "(?s).*--namespace.*")
	c.Check(help, gc.Matches, "(?s).*--redis-unix-socket-path.*")
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package warmrestart_test

import (
	"github.com/juju/cmd/v4/cmdtesting"
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
	"gopkg.in/yaml.v3"

	wrctltesting "github.com/sonic-net/sonic-wrctl/cmd/testing"
	"github.com/sonic-net/sonic-wrctl/cmd/wrctl/warmrestart"
	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/internal/database"
)

type showSuite struct{}

var _ = gc.Suite(&showSuite{})

const stateTable = `
name         restore_count  state
---------  ---------------  ----------
orchagent                1  restored
syncd                    1  reconciled
`

const emptyStateTable = `
name    restore_count    state
------  ---------------  -------
`

func section(ns, table string) string {
	return "\nFor namespace " + ns + ":\n\n" + table[1:]
}

func (s *showSuite) TestStateSingleNamespace(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.populateState(namespace.Global)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, stateTable[1:])
	c.Check(cmdtesting.Stderr(ctx), gc.Equals, "")
}

func (s *showSuite) TestStateEmpty(c *gc.C) {
	backend := newFakeBackend(singleNamespace)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, emptyStateTable[1:])
}

func (s *showSuite) TestStateMultiNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	backend.populateState("asic0", "asic1", "asic2", "asic3")

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, ""+
		section("global", emptyStateTable)+
		section("asic0", stateTable)+
		section("asic1", stateTable)+
		section("asic2", stateTable)+
		section("asic3", stateTable))
}

func (s *showSuite) TestStateSelectedNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	backend.populateState("asic1")

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend), "-n", "asic1")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, stateTable[1:])
	backend.CheckCallNames(c, "Namespaces", "Service", "Dial")
	backend.CheckCall(c, 2, "Dial", namespace.Namespace("asic1"), database.StateDB)
}

func (s *showSuite) TestStateInvalidNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	result := wrctltesting.RunMain(c, warmrestart.NewShowStateCommand(backend), "-n", "asicX")
	c.Check(result.Code, gc.Equals, 2)
	c.Check(result.Stdout, gc.Equals, "")
	c.Check(result.Stderr, gc.Matches, "(?s).*Invalid namespace: asicX\n")
	backend.checkNoDatabaseAccess(c)
}

func (s *showSuite) TestStateSocketPathAdvisory(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.populateState(namespace.Global)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend), "-s", "/var/run/redis/redis.sock")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, ""+
		"Warning: '-s|--redis-unix-socket-path' has no effect and is left for compatibility\n"+
		stateTable[1:])
}

func (s *showSuite) TestStateYaml(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.populateState(namespace.Global)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend), "--format", "yaml")
	c.Assert(err, jc.ErrorIsNil)

	var got []struct {
		Namespace string              `yaml:"namespace"`
		Processes []map[string]string `yaml:"processes"`
	}
	err = yaml.Unmarshal([]byte(cmdtesting.Stdout(ctx)), &got)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(got, gc.HasLen, 1)
	c.Check(got[0].Namespace, gc.Equals, "global")
	c.Check(got[0].Processes, jc.DeepEquals, []map[string]string{
		{"name": "orchagent", "restore_count": "1", "state": "restored"},
		{"name": "syncd", "restore_count": "1", "state": "reconciled"},
	})
}

func (s *showSuite) TestStateJson(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	backend.store.SetHash("asic0", database.StateDB, "WARM_RESTART_TABLE|syncd", map[string]string{
		"state": "reconciled",
	})

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend), "--format", "json", "-n", "asic0")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals,
		`[{"namespace":"asic0","processes":[{"name":"syncd","restore_count":null,"state":"reconciled"}]}]`+"\n")
}

func (s *showSuite) TestStateMissingRestoreCountIsNull(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.store.SetHash(namespace.Global, database.StateDB, "WARM_RESTART_TABLE|syncd", map[string]string{
		"state": "reconciled",
	})

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, `
name    restore_count    state
------  ---------------  ----------
syncd   NULL             reconciled
`[1:])
}

func (s *showSuite) TestStateUnreachableNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	backend.populateState("asic0", "asic1", "asic2", "asic3")
	backend.unreachable["asic2"] = true

	result := wrctltesting.RunMain(c, warmrestart.NewShowStateCommand(backend))
	c.Check(result.Code, gc.Equals, 1)
	c.Check(result.Stdout, gc.Equals, ""+
		section("global", emptyStateTable)+
		section("asic0", stateTable)+
		section("asic1", stateTable)+
		section("asic3", stateTable))
	c.Check(result.Stderr, gc.Matches, "(?s).*namespace asic2: cannot connect to STATE_DB: connection refused\n")
}

func (s *showSuite) TestStateTopologyFailure(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.SetErrors(errors.New("reading database_global.json: permission denied"))

	_, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend))
	c.Check(err, gc.ErrorMatches, "reading database_global.json: permission denied")
	backend.CheckCallNames(c, "Namespaces")
}

func (s *showSuite) TestStateUnexpectedArgs(c *gc.C) {
	backend := newFakeBackend(singleNamespace)

	_, err := cmdtesting.RunCommand(c, warmrestart.NewShowStateCommand(backend), "extra")
	c.Check(err, gc.ErrorMatches, `unrecognized args: \["extra"\]`)
	backend.CheckNoCalls(c)
}

const configTable = `
name    enable    timer_name       timer_duration    eoiu_enable
------  --------  ---------------  ----------------  -------------
teamd   false     teamsyncd_timer  120               NULL
system  true      NULL             NULL              NULL
`

const asicConfigTable = `
name    enable    timer_name         timer_duration  eoiu_enable
------  --------  ---------------  ----------------  -------------
teamd   false     teamsyncd_timer               180  NULL
`

const emptyConfigTable = `
name    enable    timer_name    timer_duration    eoiu_enable
------  --------  ------------  ----------------  -------------
`

func (s *showSuite) populateAsicConfig(backend *fakeBackend) {
	for _, ns := range multiNamespace.namespaces {
		backend.store.SetHash(ns, database.ConfigDB, "WARM_RESTART|teamd", map[string]string{
			"teamsyncd_timer": "180",
		})
	}
}

func (s *showSuite) TestConfigSingleNamespace(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.populateState(namespace.Global)
	backend.store.SetHash(namespace.Global, database.StateDB, "WARM_RESTART_ENABLE_TABLE|system", map[string]string{
		"enable": "true",
	})
	backend.store.SetHash(namespace.Global, database.ConfigDB, "WARM_RESTART|teamd", map[string]string{
		"teamsyncd_timer": "120",
	})

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowConfigCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, configTable[1:])
}

func (s *showSuite) TestConfigMultiNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	backend.populateState("asic0", "asic1", "asic2", "asic3")
	s.populateAsicConfig(backend)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowConfigCommand(backend))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, ""+
		section("global", emptyConfigTable)+
		section("asic0", asicConfigTable)+
		section("asic1", asicConfigTable)+
		section("asic2", asicConfigTable)+
		section("asic3", asicConfigTable))
}

func (s *showSuite) TestConfigSelectedNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)
	s.populateAsicConfig(backend)

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowConfigCommand(backend), "--namespace", "asic1")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, asicConfigTable[1:])
}

func (s *showSuite) TestConfigInvalidNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	result := wrctltesting.RunMain(c, warmrestart.NewShowConfigCommand(backend), "-n", "asicX")
	c.Check(result.Code, gc.Equals, 2)
	c.Check(result.Stderr, gc.Matches, "(?s).*Invalid namespace: asicX\n")
	backend.checkNoDatabaseAccess(c)
}

func (s *showSuite) TestConfigSocketPathAndNamespace(c *gc.C) {
	backend := newFakeBackend(multiNamespace)

	result := wrctltesting.RunMain(c, warmrestart.NewShowConfigCommand(backend),
		"-s", "/var/run/redis/redis.sock", "-n", "asic1")
	c.Check(result.Code, gc.Equals, 2)
	c.Check(result.Stdout, gc.Equals, "")
	c.Check(result.Stderr, gc.Matches, "(?s).*Cannot specify both namespace and redis unix socket path\n")
	backend.checkNoDatabaseAccess(c)
}

func (s *showSuite) TestConfigYaml(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.store.SetHash(namespace.Global, database.ConfigDB, "WARM_RESTART|bgp", map[string]string{
		"bgp_timer": "180",
	})

	ctx, err := cmdtesting.RunCommand(c, warmrestart.NewShowConfigCommand(backend), "--format", "yaml")
	c.Assert(err, jc.ErrorIsNil)

	var got []struct {
		Namespace string               `yaml:"namespace"`
		Entries   []map[string]*string `yaml:"entries"`
	}
	err = yaml.Unmarshal([]byte(cmdtesting.Stdout(ctx)), &got)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(got, gc.HasLen, 1)
	c.Check(got[0].Namespace, gc.Equals, "global")
	c.Assert(got[0].Entries, gc.HasLen, 1)

	entry := got[0].Entries[0]
	c.Check(*entry["name"], gc.Equals, "bgp")
	c.Check(*entry["enable"], gc.Equals, "false")
	c.Check(*entry["timer_name"], gc.Equals, "bgp_timer")
	c.Check(*entry["timer_duration"], gc.Equals, "180")
	c.Check(entry["eoiu_enable"], gc.IsNil)
}

func (s *showSuite) TestConfigServiceFailure(c *gc.C) {
	backend := newFakeBackend(singleNamespace)
	backend.SetErrors(nil, errors.New("boom"))

	result := wrctltesting.RunMain(c, warmrestart.NewShowConfigCommand(backend))
	c.Check(result.Code, gc.Equals, 1)
	c.Check(result.Stdout, gc.Equals, "")
	c.Check(result.Stderr, gc.Matches, "(?s).*boom\n")
}

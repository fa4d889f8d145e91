// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alicebob/miniredis/v2"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/sonic-net/sonic-wrctl/internal/database/dbconfig"
)

const databaseConfig = `{
    "INSTANCES": {
        "redis": {"hostname": %q, "port": %d}
    },
    "DATABASES": {
        "CONFIG_DB": {"id": 4, "separator": "|", "instance": "redis"},
        "STATE_DB": {"id": 6, "separator": "|", "instance": "redis"}
    },
    "VERSION": "1.0"
}
`

// RedisSuite starts in-process redis servers and lays out database
// topology files pointing at them. Servers are stopped after each test.
type RedisSuite struct {
	Servers map[string]*miniredis.Miniredis
}

func (s *RedisSuite) SetUpTest(c *gc.C) {
	s.Servers = make(map[string]*miniredis.Miniredis)
}

func (s *RedisSuite) TearDownTest(c *gc.C) {
	for _, server := range s.Servers {
		server.Close()
	}
}

// StartServer starts a redis server registered under name.
func (s *RedisSuite) StartServer(c *gc.C, name string) *miniredis.Miniredis {
	server, err := miniredis.Run()
	c.Assert(err, jc.ErrorIsNil)
	s.Servers[name] = server
	return server
}

// StopServer stops the named server, leaving its address unreachable.
func (s *RedisSuite) StopServer(name string) {
	if server, ok := s.Servers[name]; ok {
		server.Close()
		delete(s.Servers, name)
	}
}

// SingleNamespaceDir returns a topology directory for a device with only
// the global namespace, served by the server named "global".
func (s *RedisSuite) SingleNamespaceDir(c *gc.C) string {
	dir := c.MkDir()
	s.writeConfig(c, dir, s.StartServer(c, "global"))
	return dir
}

// MultiNamespaceDir returns a topology directory for a device with the
// global namespace and the given ASIC namespaces, each served by its own
// server named after the namespace.
func (s *RedisSuite) MultiNamespaceDir(c *gc.C, namespaces ...string) string {
	root := c.MkDir()
	includes := `{"include": "../global/database_config.json"}`
	s.writeConfig(c, filepath.Join(root, "global"), s.StartServer(c, "global"))
	for _, ns := range namespaces {
		s.writeConfig(c, filepath.Join(root, ns), s.StartServer(c, ns))
		includes += fmt.Sprintf(",\n        {\"namespace\": %q, \"include\": \"../%s/database_config.json\"}", ns, ns)
	}
	dir := filepath.Join(root, "sonic-db")
	WriteFile(c, filepath.Join(dir, dbconfig.GlobalFile),
		fmt.Sprintf("{\n    \"INCLUDES\": [\n        %s\n    ],\n    \"VERSION\": \"1.0\"\n}\n", includes))
	return dir
}

func (s *RedisSuite) writeConfig(c *gc.C, dir string, server *miniredis.Miniredis) {
	host, port, err := net.SplitHostPort(server.Addr())
	c.Assert(err, jc.ErrorIsNil)
	portNum, err := strconv.Atoi(port)
	c.Assert(err, jc.ErrorIsNil)
	WriteFile(c, filepath.Join(dir, dbconfig.ConfigFile), fmt.Sprintf(databaseConfig, host, portNum))
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(c *gc.C, path, content string) {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	c.Assert(err, jc.ErrorIsNil)
	err = os.WriteFile(path, []byte(content), 0644)
	c.Assert(err, jc.ErrorIsNil)
}

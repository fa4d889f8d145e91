// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package dbconfig reads the database topology of a deployment: which
// namespaces exist and where each of their logical databases lives.
//
// A single namespace deployment is described by a database_config.json
// file. A multi-namespace deployment additionally has a
// database_global.json file that includes one database_config.json per
// namespace.
package dbconfig

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/sonic-net/sonic-wrctl/core/namespace"
	"github.com/sonic-net/sonic-wrctl/internal/database"
)

var logger = loggo.GetLogger("wrctl.database.dbconfig")

const (
	// DefaultDir is where the database topology files are installed.
	DefaultDir = "/var/run/redis/sonic-db"

	// DirEnvKey overrides DefaultDir.
	DirEnvKey = "WRCTL_DB_CONFIG_DIR"

	// ConfigFile describes the instances and databases of one namespace.
	ConfigFile = "database_config.json"

	// GlobalFile lists the per-namespace configuration files.
	GlobalFile = "database_global.json"
)

// Instance is a redis server.
type Instance struct {
	Hostname       string `json:"hostname"`
	Port           int    `json:"port"`
	UnixSocketPath string `json:"unix_socket_path"`
}

// Database is a logical database hosted by an instance.
type Database struct {
	ID        int    `json:"id"`
	Separator string `json:"separator"`
	Instance  string `json:"instance"`
}

// Config is the content of a database_config.json file.
type Config struct {
	Instances map[string]Instance `json:"INSTANCES"`
	Databases map[string]Database `json:"DATABASES"`
	Version   string              `json:"VERSION"`
}

type include struct {
	Namespace string `json:"namespace"`
	Include   string `json:"include"`
}

type globalConfig struct {
	Includes []include `json:"INCLUDES"`
	Version  string    `json:"VERSION"`
}

// Topology is the loaded database topology. It implements
// namespace.Enumerator and database.EndpointResolver.
type Topology struct {
	configs    map[namespace.Namespace]Config
	namespaces []namespace.Namespace
}

// Dir returns the topology directory, honouring DirEnvKey.
func Dir() string {
	if dir := os.Getenv(DirEnvKey); dir != "" {
		return dir
	}
	return DefaultDir
}

// Load reads the topology found in dir.
func Load(dir string) (*Topology, error) {
	globalPath := filepath.Join(dir, GlobalFile)
	data, err := os.ReadFile(globalPath)
	if os.IsNotExist(err) {
		logger.Debugf("%s not found, assuming a single namespace", globalPath)
		cfg, err := readConfig(filepath.Join(dir, ConfigFile))
		if err != nil {
			return nil, errors.Trace(err)
		}
		return NewTopology(map[namespace.Namespace]Config{namespace.Global: cfg}), nil
	} else if err != nil {
		return nil, errors.Annotatef(err, "reading %s", globalPath)
	}

	var global globalConfig
	if err := json.Unmarshal(data, &global); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", globalPath)
	}

	configs := make(map[namespace.Namespace]Config)
	for _, inc := range global.Includes {
		ns := namespace.Namespace(inc.Namespace)
		if _, ok := configs[ns]; ok {
			return nil, errors.NotValidf("duplicate namespace %q in %s", inc.Namespace, globalPath)
		}
		path := inc.Include
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		cfg, err := readConfig(path)
		if err != nil {
			return nil, errors.Annotatef(err, "namespace %s", ns.DisplayName())
		}
		configs[ns] = cfg
	}
	if _, ok := configs[namespace.Global]; !ok {
		return nil, errors.NotValidf("%s without a global namespace", globalPath)
	}
	return NewTopology(configs), nil
}

// NewTopology returns a topology for the given per-namespace
// configurations. The global namespace must be present.
func NewTopology(configs map[namespace.Namespace]Config) *Topology {
	var nss []namespace.Namespace
	for ns := range configs {
		if !ns.IsGlobal() {
			nss = append(nss, ns)
		}
	}
	return &Topology{
		configs:    configs,
		namespaces: namespace.Sorted(nss),
	}
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Annotatef(err, "reading %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Annotatef(err, "parsing %s", path)
	}
	return cfg, nil
}

// IsMultiNamespace implements namespace.Enumerator.
func (t *Topology) IsMultiNamespace() bool {
	return len(t.namespaces) > 0
}

// Namespaces implements namespace.Enumerator.
func (t *Topology) Namespaces() []namespace.Namespace {
	result := make([]namespace.Namespace, len(t.namespaces))
	copy(result, t.namespaces)
	return result
}

// Endpoint implements database.EndpointResolver. Unix sockets are
// preferred over TCP when an instance offers both.
func (t *Topology) Endpoint(ns namespace.Namespace, db database.DBName) (database.Endpoint, error) {
	cfg, ok := t.configs[ns]
	if !ok {
		return database.Endpoint{}, errors.NotFoundf("namespace %q", ns.DisplayName())
	}
	dbCfg, ok := cfg.Databases[string(db)]
	if !ok {
		return database.Endpoint{}, errors.NotFoundf("%s in namespace %s", db, ns.DisplayName())
	}
	inst, ok := cfg.Instances[dbCfg.Instance]
	if !ok {
		return database.Endpoint{}, errors.NotFoundf("instance %q for %s in namespace %s",
			dbCfg.Instance, db, ns.DisplayName())
	}

	endpoint := database.Endpoint{
		DB:        dbCfg.ID,
		Separator: dbCfg.Separator,
	}
	switch {
	case inst.UnixSocketPath != "":
		endpoint.Network = "unix"
		endpoint.Address = inst.UnixSocketPath
	case inst.Hostname != "" && inst.Port != 0:
		endpoint.Network = "tcp"
		endpoint.Address = net.JoinHostPort(inst.Hostname, strconv.Itoa(inst.Port))
	default:
		return database.Endpoint{}, errors.NotValidf("instance %q without an address", dbCfg.Instance)
	}
	return endpoint, nil
}


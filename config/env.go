package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvURI           = "OGMNEO_URI"
	EnvUsername      = "OGMNEO_USERNAME"
	EnvPassword      = "OGMNEO_PASSWORD"
	EnvDatabase      = "OGMNEO_DATABASE"
	EnvFetchSize     = "OGMNEO_FETCH_SIZE"
	EnvPoolSize      = "OGMNEO_MAX_CONNECTION_POOL_SIZE"
	EnvJournalLog    = "OGMNEO_JOURNAL_LOG"
	EnvJournalRedis  = "OGMNEO_JOURNAL_REDIS_URL"
	EnvLogLevel      = "OGMNEO_LOG_LEVEL"
	EnvLogFormat     = "OGMNEO_LOG_FORMAT"
	EnvEtcdEndpoints = "OGMNEO_ETCD_ENDPOINTS"
	EnvEtcdKey       = "OGMNEO_ETCD_KEY"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with the OGMNEO_* variables found by lookup. A nil
// lookup reads the process environment.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str(EnvURI, &c.Neo4j.URI)
	str(EnvUsername, &c.Neo4j.Username)
	str(EnvPassword, &c.Neo4j.Password)
	str(EnvDatabase, &c.Neo4j.Database)
	if err := integer(EnvFetchSize, &c.Neo4j.FetchSize); err != nil {
		return err
	}
	if err := integer(EnvPoolSize, &c.Neo4j.MaxConnectionPoolSize); err != nil {
		return err
	}
	if v, ok := lookup(EnvJournalLog); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJournalLog, err)
		}
		c.Journal.Log = b
	}
	if v, ok := lookup(EnvJournalRedis); ok && v != "" {
		if c.Journal.Redis == nil {
			c.Journal.Redis = &RedisConfig{}
		}
		c.Journal.Redis.URL = v
	}
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)
	return nil
}

// EtcdFromEnv returns the etcd source named by OGMNEO_ETCD_ENDPOINTS, a
// comma separated endpoint list, or nil when the variable is unset.
func EtcdFromEnv(lookup LookupFunc) *EtcdConfig {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	raw, ok := lookup(EnvEtcdEndpoints)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	var endpoints []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}
	cfg := &EtcdConfig{Endpoints: endpoints}
	if key, ok := lookup(EnvEtcdKey); ok {
		cfg.Key = key
	}
	return cfg
}

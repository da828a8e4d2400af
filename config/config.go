// Package config loads connection, journal and logging settings.
//
// Settings come from a YAML file or an etcd key, and OGMNEO_* environment
// variables override whatever was loaded. Durations are Go duration strings
// ("5s", "1m").
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LucianoPAlmeida/OGMNeo/journal"
	"github.com/LucianoPAlmeida/OGMNeo/neo4jdriver"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// Neo4jConfig holds the database connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`

	MaxConnectionPoolSize        int    `yaml:"max_connection_pool_size,omitempty"`
	ConnectionAcquisitionTimeout string `yaml:"connection_acquisition_timeout,omitempty"`
	SocketConnectTimeout         string `yaml:"socket_connect_timeout,omitempty"`
	FetchSize                    int    `yaml:"fetch_size,omitempty"`
}

// JournalConfig selects where executed statements are recorded.
type JournalConfig struct {
	// Log records statements through the logger
	Log bool `yaml:"log,omitempty"`

	// Redis records statements in Redis when set
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig configures the Redis journal.
type RedisConfig struct {
	URL     string `yaml:"url"`
	Key     string `yaml:"key,omitempty"`
	Channel string `yaml:"channel,omitempty"` // "-" disables publishing
	MaxLen  int64  `yaml:"max_len,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text or json
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Neo4j: Neo4jConfig{URI: "neo4j://localhost:7687"},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var errs []error

	if c.Neo4j.URI == "" {
		errs = append(errs, errors.New("neo4j.uri is required"))
	} else if u, err := url.Parse(c.Neo4j.URI); err != nil || !validScheme(u.Scheme) {
		errs = append(errs, fmt.Errorf("neo4j.uri %q must use a neo4j or bolt scheme", c.Neo4j.URI))
	}
	if c.Neo4j.MaxConnectionPoolSize < 0 {
		errs = append(errs, errors.New("neo4j.max_connection_pool_size must not be negative"))
	}
	if c.Neo4j.FetchSize < -1 {
		errs = append(errs, errors.New("neo4j.fetch_size must be -1 or greater"))
	}
	for name, d := range map[string]string{
		"neo4j.connection_acquisition_timeout": c.Neo4j.ConnectionAcquisitionTimeout,
		"neo4j.socket_connect_timeout":         c.Neo4j.SocketConnectTimeout,
	} {
		if _, err := parseDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if r := c.Journal.Redis; r != nil {
		if r.URL == "" {
			errs = append(errs, errors.New("journal.redis.url is required"))
		}
		if r.MaxLen < 0 {
			errs = append(errs, errors.New("journal.redis.max_len must not be negative"))
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Driver converts the connection settings for neo4jdriver.Open. Call
// Validate first: invalid durations are treated as unset.
func (n Neo4jConfig) Driver() neo4jdriver.Config {
	acquire, _ := parseDuration(n.ConnectionAcquisitionTimeout)
	connect, _ := parseDuration(n.SocketConnectTimeout)
	return neo4jdriver.Config{
		URI:                          n.URI,
		Username:                     n.Username,
		Password:                     n.Password,
		Database:                     n.Database,
		MaxConnectionPoolSize:        n.MaxConnectionPoolSize,
		ConnectionAcquisitionTimeout: acquire,
		SocketConnectTimeout:         connect,
		FetchSize:                    n.FetchSize,
	}
}

// Options converts the Redis settings for journal.NewRedis.
func (r *RedisConfig) Options() journal.RedisOptions {
	if r == nil {
		return journal.RedisOptions{}
	}
	return journal.RedisOptions{
		URL:     r.URL,
		Key:     r.Key,
		Channel: r.Channel,
		MaxLen:  r.MaxLen,
	}
}

// SlogLevel returns the configured level, info when unset or invalid.
func (l LogConfig) SlogLevel() slog.Level {
	level, err := parseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Logger builds a logger writing to w in the configured format.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func validScheme(scheme string) bool {
	switch scheme {
	case "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc":
		return true
	}
	return false
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", s)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q is not a valid level", s)
	}
	return level, nil
}

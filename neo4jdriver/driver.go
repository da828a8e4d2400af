// Package neo4jdriver implements session.Provider on top of the official
// Neo4j Go driver over Bolt.
//
// Transaction functions are not retried: the driver is configured with a
// zero MaxTransactionRetryTime, so every operation runs exactly once and its
// outcome is surfaced to the caller.
package neo4jdriver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/LucianoPAlmeida/OGMNeo/session"
)

// ErrClosed is returned when a session is requested from a closed driver.
var ErrClosed = errors.New("neo4jdriver: driver is closed")

// Config holds the Bolt connection settings.
type Config struct {
	// URI is the server address, e.g. "neo4j://localhost:7687"
	URI string

	// Username and Password for basic auth. An empty username disables auth.
	Username string
	Password string

	// Database selects the target database. Empty uses the server default.
	Database string

	// MaxConnectionPoolSize caps open connections per host. Zero keeps the
	// driver default.
	MaxConnectionPoolSize int

	// ConnectionAcquisitionTimeout bounds waiting for a pooled connection.
	// Zero keeps the driver default.
	ConnectionAcquisitionTimeout time.Duration

	// SocketConnectTimeout bounds establishing a new connection. Zero keeps
	// the driver default.
	SocketConnectTimeout time.Duration

	// FetchSize is the number of records fetched per batch. Zero keeps the
	// driver default.
	FetchSize int
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger routes driver logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Driver owns a Neo4j driver and opens sessions on it. It is safe for
// concurrent use, including Close racing in-flight sessions.
type Driver struct {
	mu       sync.RWMutex
	driver   neo4j.DriverWithContext
	database string
	fetch    int
	logger   *slog.Logger
}

// Open creates the driver and verifies connectivity. The driver is closed
// again if the server cannot be reached.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Driver, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4jdriver: URI is required")
	}

	d := &Driver{
		database: cfg.Database,
		fetch:    cfg.FetchSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxTransactionRetryTime = 0
		c.Log = &slogAdapter{logger: d.logger}
		if cfg.MaxConnectionPoolSize > 0 {
			c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
		}
		if cfg.ConnectionAcquisitionTimeout > 0 {
			c.ConnectionAcquisitionTimeout = cfg.ConnectionAcquisitionTimeout
		}
		if cfg.SocketConnectTimeout > 0 {
			c.SocketConnectTimeout = cfg.SocketConnectTimeout
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", cfg.URI, err)
	}

	d.driver = driver
	d.logger.Debug("neo4j driver connected", "uri", cfg.URI, "database", cfg.Database)
	return d, nil
}

func (d *Driver) current() neo4j.DriverWithContext {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.driver
}

// NewSession opens a session on the configured database.
func (d *Driver) NewSession(ctx context.Context) (session.Session, error) {
	driver := d.current()
	if driver == nil {
		return nil, ErrClosed
	}
	cfg := neo4j.SessionConfig{DatabaseName: d.database}
	if d.fetch > 0 {
		cfg.FetchSize = d.fetch
	}
	return &boltSession{session: driver.NewSession(ctx, cfg)}, nil
}

// VerifyConnectivity checks that the server is reachable.
func (d *Driver) VerifyConnectivity(ctx context.Context) error {
	driver := d.current()
	if driver == nil {
		return ErrClosed
	}
	return driver.VerifyConnectivity(ctx)
}

// Close closes the underlying driver and every pooled connection. Later
// calls are no-ops and later sessions fail with ErrClosed.
func (d *Driver) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	driver := d.driver
	d.driver = nil
	d.mu.Unlock()

	if driver == nil {
		return nil
	}
	return driver.Close(ctx)
}

package ogmneo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/LucianoPAlmeida/OGMNeo/config"
	"github.com/LucianoPAlmeida/OGMNeo/cypher"
	"github.com/LucianoPAlmeida/OGMNeo/health"
	"github.com/LucianoPAlmeida/OGMNeo/index"
	"github.com/LucianoPAlmeida/OGMNeo/journal"
	"github.com/LucianoPAlmeida/OGMNeo/neo4jdriver"
	"github.com/LucianoPAlmeida/OGMNeo/node"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/relation"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

// Connection owns a session provider and the services running on it. It is
// safe for concurrent use.
type Connection struct {
	exec      *operation.Executer
	nodes     *node.Service
	relations *relation.Service
	cypher    *cypher.Runner
	indexes   *index.Manager

	logger   *slog.Logger
	driver   *neo4jdriver.Driver
	journals []journal.Journal
	closers  []namedCloser

	closeOnce sync.Once
	closeErr  error
}

// New builds a Connection on any session provider. Closing it closes only
// the resources the connection opened itself.
func New(provider session.Provider, opts ...Option) *Connection {
	return newConnection(provider, newOptions(opts))
}

func newConnection(provider session.Provider, o *options) *Connection {
	exec := operation.NewExecuter(provider, o.executerOptions()...)
	c := &Connection{
		exec:      exec,
		nodes:     node.NewService(exec),
		relations: relation.NewService(exec),
		cypher:    cypher.NewRunner(exec),
		indexes:   index.NewManager(exec),
		logger:    o.logger,
		journals:  o.journals,
		closers:   o.closers,
	}
	return c
}

// Open connects to Neo4j with cfg, verifies connectivity and returns a
// Connection owning the driver.
func Open(ctx context.Context, cfg neo4jdriver.Config, opts ...Option) (*Connection, error) {
	return open(ctx, cfg, newOptions(opts))
}

func open(ctx context.Context, cfg neo4jdriver.Config, o *options) (*Connection, error) {
	driver, err := neo4jdriver.Open(ctx, cfg, neo4jdriver.WithLogger(o.logger))
	if err != nil {
		for _, nc := range o.closers {
			CloseWithLog(nc.closer, o.logger, nc.name)
		}
		return nil, fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	c := newConnection(driver, o)
	c.driver = driver
	return c, nil
}

// OpenConfig validates cfg, builds the journals it configures and opens the
// connection. Options given here are applied after the configured ones, so
// an explicit WithLogger wins over the config logger.
func OpenConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Connection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	o := newOptions(opts)
	if cfg.Journal.Log {
		o.journals = append(o.journals, journal.NewLog(o.logger, slog.LevelInfo))
	}
	if cfg.Journal.Redis != nil {
		rj, err := journal.NewRedis(cfg.Journal.Redis.Options())
		if err != nil {
			return nil, err
		}
		o.journals = append(o.journals, rj)
		o.closers = append(o.closers, namedCloser{name: "redis journal", closer: rj})
	}
	return open(ctx, cfg.Neo4j.Driver(), o)
}

// Executer returns the executer shared by all services.
func (c *Connection) Executer() *operation.Executer { return c.exec }

// Nodes returns the node service.
func (c *Connection) Nodes() *node.Service { return c.nodes }

// Relations returns the relationship service.
func (c *Connection) Relations() *relation.Service { return c.relations }

// Cypher returns the raw statement runner.
func (c *Connection) Cypher() *cypher.Runner { return c.cypher }

// Indexes returns the index manager.
func (c *Connection) Indexes() *index.Manager { return c.indexes }

// Health checks the database and every journal that can be pinged. An
// owned driver is checked with VerifyConnectivity, any other provider with
// a read of RETURN 1.
func (c *Connection) Health(ctx context.Context) health.Status {
	checks := []health.Status{health.DatabaseCheck(ctx, "neo4j", health.PingFunc(c.pingDatabase))}
	for _, j := range c.journals {
		if p, ok := j.(health.Pinger); ok {
			checks = append(checks, health.JournalCheck(ctx, journalName(j), p))
		}
	}
	return health.Combine(checks...)
}

func (c *Connection) pingDatabase(ctx context.Context) error {
	if c.driver != nil {
		return c.driver.VerifyConnectivity(ctx)
	}
	_, err := c.cypher.Run(ctx, operation.Read, "RETURN 1", nil)
	return err
}

func journalName(j journal.Journal) string {
	switch j.(type) {
	case *journal.RedisJournal:
		return "redis journal"
	default:
		return "journal"
	}
}

// Close closes the driver and journals opened by Open or OpenConfig. It is
// safe to call more than once; later calls return the first result.
func (c *Connection) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		var errs []error
		if c.driver != nil {
			if err := c.driver.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		for _, nc := range c.closers {
			if err := nc.closer.Close(); err != nil {
				c.logger.Warn("failed to close resource", "resource", nc.name, "error", err)
				errs = append(errs, err)
			}
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

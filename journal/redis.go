package journal

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKey is the list holding recent entries
	DefaultKey = "ogmneo:journal"

	// DefaultChannel is the pub/sub channel entries are published on
	DefaultChannel = "ogmneo:journal:events"

	// DefaultMaxLen caps the list length
	DefaultMaxLen = 1000
)

// RedisOptions configures the Redis connection and journal layout.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// Key is the list holding recent entries, DefaultKey when empty
	Key string

	// Channel is the pub/sub channel, DefaultChannel when empty.
	// Set to "-" to disable publishing.
	Channel string

	// MaxLen caps the list, DefaultMaxLen when zero
	MaxLen int64
}

func (o *RedisOptions) applyDefaults() {
	if o.URL == "" {
		o.URL = "redis://localhost:6379"
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = 5 * time.Second
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = 3 * time.Second
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = 3 * time.Second
	}
	if o.Key == "" {
		o.Key = DefaultKey
	}
	if o.Channel == "" {
		o.Channel = DefaultChannel
	}
	if o.MaxLen <= 0 {
		o.MaxLen = DefaultMaxLen
	}
}

// RedisJournal keeps the most recent entries in a Redis list (newest first)
// and publishes each entry on a channel.
type RedisJournal struct {
	client  redis.UniversalClient
	key     string
	channel string
	maxLen  int64
	owned   bool
}

// NewRedis connects to Redis and returns a journal. The connection is
// verified with PING.
func NewRedis(opts RedisOptions) (*RedisJournal, error) {
	opts.applyDefaults()

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if opts.TLS != nil {
		redisOpts.TLSConfig = opts.TLS
	}
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	j := NewRedisWithClient(client, opts)
	j.owned = true
	return j, nil
}

// NewRedisWithClient wraps an existing client. Close does not close it.
func NewRedisWithClient(client redis.UniversalClient, opts RedisOptions) *RedisJournal {
	opts.applyDefaults()
	return &RedisJournal{
		client:  client,
		key:     opts.Key,
		channel: opts.Channel,
		maxLen:  opts.MaxLen,
	}
}

// Record pushes the entry to the list, trims it and publishes the entry.
func (j *RedisJournal) Record(ctx context.Context, e Entry) error {
	data, err := Encode(e)
	if err != nil {
		return err
	}

	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, j.key, data)
	pipe.LTrim(ctx, j.key, 0, j.maxLen-1)
	if j.channel != "-" {
		pipe.Publish(ctx, j.channel, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record journal entry %s: %w", e.OperationID, err)
	}
	return nil
}

// Recent returns up to n entries, newest first. n <= 0 returns every kept
// entry.
func (j *RedisJournal) Recent(ctx context.Context, n int64) ([]Entry, error) {
	stop := n - 1
	if n <= 0 {
		stop = -1
	}
	items, err := j.client.LRange(ctx, j.key, 0, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal %s: %w", j.key, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		e, err := Decode([]byte(item))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Subscribe streams entries published after the subscription is confirmed.
// The channel is closed when ctx is done.
func (j *RedisJournal) Subscribe(ctx context.Context) (<-chan Entry, error) {
	if j.channel == "-" {
		return nil, fmt.Errorf("journal publishing is disabled")
	}
	pubsub := j.client.Subscribe(ctx, j.channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", j.channel, err)
	}

	out := make(chan Entry)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				e, err := Decode([]byte(msg.Payload))
				if err != nil {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Ping checks that Redis is reachable.
func (j *RedisJournal) Ping(ctx context.Context) error {
	return j.client.Ping(ctx).Err()
}

// Close closes the Redis connection when the journal opened it.
func (j *RedisJournal) Close() error {
	if !j.owned {
		return nil
	}
	return j.client.Close()
}

package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// DefaultEtcdKey is the key read when EtcdConfig.Key is empty.
const DefaultEtcdKey = "/ogmneo/config"

// ErrNotFound is returned when the etcd key holds no configuration.
var ErrNotFound = errors.New("config: key not found in etcd")

// EtcdConfig locates a YAML configuration stored in etcd.
type EtcdConfig struct {
	Endpoints   []string
	Key         string
	DialTimeout time.Duration
	Username    string
	Password    string
	TLS         *TLSConfig
}

func (e EtcdConfig) key() string {
	if e.Key == "" {
		return DefaultEtcdKey
	}
	return e.Key
}

// LoadEtcd connects to etcd, reads the configuration key and closes the
// client.
func LoadEtcd(ctx context.Context, ec EtcdConfig) (*Config, error) {
	cli, err := newEtcdClient(ec)
	if err != nil {
		return nil, err
	}
	defer cli.Close()
	return LoadKV(ctx, cli, ec.key())
}

// LoadKV reads and parses the configuration stored under key.
func LoadKV(ctx context.Context, kv clientv3.KV, key string) (*Config, error) {
	resp, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from etcd: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return Parse(resp.Kvs[0].Value)
}

// StoreKV writes cfg as YAML under key.
func StoreKV(ctx context.Context, kv clientv3.KV, key string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if _, err := kv.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s to etcd: %w", key, err)
	}
	return nil
}

func newEtcdClient(ec EtcdConfig) (*clientv3.Client, error) {
	if len(ec.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints cannot be empty")
	}
	dial := ec.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}

	clientCfg := clientv3.Config{
		Endpoints:   ec.Endpoints,
		DialTimeout: dial,
		Username:    ec.Username,
		Password:    ec.Password,
	}
	tlsConfig, err := ec.TLS.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	clientCfg.TLS = tlsConfig

	cli, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}
	return cli, nil
}

package config

import "context"

// Load builds the effective configuration. The base comes from the YAML file
// at path when set, otherwise from etcd when OGMNEO_ETCD_ENDPOINTS is set,
// otherwise from Default. Environment overrides are applied last and the
// result is validated.
func Load(ctx context.Context, path string, lookup LookupFunc) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch ec := EtcdFromEnv(lookup); {
	case path != "":
		cfg, err = LoadFile(path)
	case ec != nil:
		cfg, err = LoadEtcd(ctx, *ec)
	default:
		cfg = Default()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

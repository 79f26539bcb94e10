package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rafflehouse/artcli/internal/gateway"
)

const (
	defaultRPCURL      = "https://eth.llamarpc.com"
	defaultFastTimeout = 5
	defaultSlowTimeout = 10

	configFile = "config.json"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.artcli.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".artcli")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if len(cfg.IPFSGateways) == 0 {
		cfg.IPFSGateways = gateway.Default().IPFS
	}
	if len(cfg.ArweaveGateways) == 0 {
		cfg.ArweaveGateways = gateway.Default().Arweave
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// GatewaySet assembles the configured gateway endpoints.
func (c *Config) GatewaySet() gateway.Set {
	return gateway.Set{
		IPFS:    c.IPFSGateways,
		Arweave: c.ArweaveGateways,
	}
}

// AddIPFSGateway appends an IPFS gateway endpoint (lowest priority).
func (c *Config) AddIPFSGateway(url string) error {
	if slices.Contains(c.IPFSGateways, url) {
		return fmt.Errorf("gateway %s already configured", url)
	}
	c.IPFSGateways = append(c.IPFSGateways, url)
	return nil
}

// RemoveIPFSGateway removes an IPFS gateway endpoint.
func (c *Config) RemoveIPFSGateway(url string) error {
	idx := slices.Index(c.IPFSGateways, url)
	if idx == -1 {
		return fmt.Errorf("gateway %s not configured", url)
	}
	c.IPFSGateways = slices.Delete(c.IPFSGateways, idx, idx+1)
	return nil
}

// FastTimeout is the per-attempt timeout for mintable ERC-721 metadata.
func (c *Config) FastTimeout() time.Duration {
	return time.Duration(c.FastTimeoutSecs) * time.Second
}

// SlowTimeout is the per-attempt timeout for escrowed / ERC-1155 metadata.
func (c *Config) SlowTimeout() time.Duration {
	return time.Duration(c.SlowTimeoutSecs) * time.Second
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// --- helpers ---

func defaults(dir string) *Config {
	gw := gateway.Default()
	return &Config{
		RPCURL:          defaultRPCURL,
		IPFSGateways:    gw.IPFS,
		ArweaveGateways: gw.Arweave,
		FastTimeoutSecs: defaultFastTimeout,
		SlowTimeoutSecs: defaultSlowTimeout,
		configDir:       dir,
	}
}

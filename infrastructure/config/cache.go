package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheConfig is the immutable cache policy configuration, loaded once
// at process start and passed into the cache manager's constructor.
type CacheConfig struct {
	DefaultTTL         time.Duration           `yaml:"default_ttl"`
	KeyPrefix          string                  `yaml:"key_prefix"`
	EnableNullValues   bool                    `yaml:"enable_null_values"`
	EnableTransactions bool                    `yaml:"enable_transactions"`
	Regions            map[string]RegionConfig `yaml:"caches"`
}

// RegionConfig overrides the cache defaults for one named region.
// Zero values fall back to the defaults.
type RegionConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	Prefix          string        `yaml:"prefix"`
	AllowNullValues bool          `yaml:"allow_null_values"`
}

// regionFile mirrors the YAML layout with string durations, since the
// yaml package does not decode time.Duration directly.
type regionFile struct {
	DefaultTTL         string                  `yaml:"default_ttl"`
	KeyPrefix          string                  `yaml:"key_prefix"`
	EnableNullValues   *bool                   `yaml:"enable_null_values"`
	EnableTransactions *bool                   `yaml:"enable_transactions"`
	Caches             map[string]regionEntry  `yaml:"caches"`
}

type regionEntry struct {
	TTL             string `yaml:"ttl"`
	Prefix          string `yaml:"prefix"`
	AllowNullValues bool   `yaml:"allow_null_values"`
}

// loadRegionFile merges the YAML file at path into the config.
// File values override the environment-supplied defaults.
func (c *CacheConfig) loadRegionFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file regionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if file.DefaultTTL != "" {
		ttl, err := time.ParseDuration(file.DefaultTTL)
		if err != nil {
			return fmt.Errorf("default_ttl: %w", err)
		}
		c.DefaultTTL = ttl
	}
	if file.KeyPrefix != "" {
		c.KeyPrefix = file.KeyPrefix
	}
	if file.EnableNullValues != nil {
		c.EnableNullValues = *file.EnableNullValues
	}
	if file.EnableTransactions != nil {
		c.EnableTransactions = *file.EnableTransactions
	}

	if len(file.Caches) > 0 {
		if c.Regions == nil {
			c.Regions = make(map[string]RegionConfig, len(file.Caches))
		}
		for name, entry := range file.Caches {
			region := RegionConfig{
				Prefix:          entry.Prefix,
				AllowNullValues: entry.AllowNullValues,
			}
			if entry.TTL != "" {
				ttl, err := time.ParseDuration(entry.TTL)
				if err != nil {
					return fmt.Errorf("caches.%s.ttl: %w", name, err)
				}
				region.TTL = ttl
			}
			c.Regions[name] = region
		}
	}

	return nil
}

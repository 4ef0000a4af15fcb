package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
)

// Config holds all runtime configuration for a chartsync run.
type Config struct {
	DSN                 string
	FilePath            string
	OutPath             string
	CatalogPath         string
	LogFormat           string // "text" or "json"
	MaterializeDefaults bool
	MigrateLegacyKeys   bool
	Save                bool     // also persist the record to the case store
	Force               bool     // persist even when the stored fingerprint matches
	DryRun              bool     // do not write the record file back
	Regions             []string // subset of the catalog to allow
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Catalog             string   `yaml:"catalog"`
	Regions             []string `yaml:"regions"`
	MaterializeDefaults *bool    `yaml:"materialize_defaults"`
	MigrateLegacyKeys   *bool    `yaml:"migrate_legacy_keys"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Flags already set take precedence for the catalog path.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.CatalogPath == "" {
		c.CatalogPath = yc.Catalog
	}
	c.Regions = yc.Regions
	if yc.MaterializeDefaults != nil {
		c.MaterializeDefaults = *yc.MaterializeDefaults
	}
	if yc.MigrateLegacyKeys != nil {
		c.MigrateLegacyKeys = *yc.MigrateLegacyKeys
	}
	cat, err := catalog.Load(c.CatalogPath)
	if err != nil {
		return err
	}
	return c.validateRegions(cat)
}

// validateRegions checks that every entry in Regions is a catalog region.
// If Regions is empty, it defaults to every region in the catalog.
func (c *Config) validateRegions(cat catalog.Catalog) error {
	if len(c.Regions) == 0 {
		c.Regions = cat.Keys()
		return nil
	}
	for _, key := range c.Regions {
		if _, ok := cat.RegionByKey(key); !ok {
			return fmt.Errorf("unknown region %q in config", key)
		}
	}
	return nil
}

// Catalog loads the configured catalog restricted to Regions.
func (c *Config) Catalog() (catalog.Catalog, error) {
	cat, err := catalog.Load(c.CatalogPath)
	if err != nil {
		return catalog.Catalog{}, err
	}
	return cat.Subset(c.Regions)
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or CHARTSYNC_DB_URL is required")
	}
	return nil
}

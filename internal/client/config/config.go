package config

import "time"

// Config holds runtime settings for the jobtrack CLI.
//
// Fields:
//   - CloudEndpointAddr: base URL of the cloud sync API.
//   - DatabasePath: location of the local SQLite database file.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	CloudEndpointAddr   string
	DatabasePath        string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.CloudEndpointAddr = "http://127.0.0.1:8080"
	c.DatabasePath = "jobtrack.db"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

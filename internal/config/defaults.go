package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL      = "https://fapi.bitunix.com"
	DefaultAPITimeout   = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultPageLimit    = 100
	DefaultStatePath    = "last_export_state.json"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
)

func (c *ExporterConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.PageLimit == 0 {
		c.API.PageLimit = DefaultPageLimit
	}

	// State defaults
	if c.State.Path == "" {
		c.State.Path = DefaultStatePath
	}

	// Archive defaults only matter when the archive is enabled, but applying
	// them unconditionally keeps Validate simple.
	if c.Archive.DB.Port == 0 {
		c.Archive.DB.Port = DefaultDBPort
	}
	if c.Archive.DB.SSLMode == "" {
		c.Archive.DB.SSLMode = DefaultDBSSLMode
	}
	if c.Archive.DB.MaxConns == 0 {
		c.Archive.DB.MaxConns = DefaultMaxConns
	}
	if c.Archive.DB.MinConns == 0 {
		c.Archive.DB.MinConns = DefaultMinConns
	}
}

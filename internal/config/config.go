package config

import "time"

// ExporterConfig is the root configuration for an exporter run.
type ExporterConfig struct {
	API      APIConfig      `yaml:"api"`
	State    StateConfig    `yaml:"state"`
	Export   ExportConfig   `yaml:"export"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// APIConfig holds Bitunix API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	PageLimit    int           `yaml:"page_limit"`
}

// StateConfig holds checkpoint persistence settings.
type StateConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds CSV output settings.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for default-named output files
}

// ArchiveConfig holds the optional Postgres trade archive.
type ArchiveConfig struct {
	Enabled bool     `yaml:"enabled"`
	DB      DBConfig `yaml:"db"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ScheduleConfig holds the optional interval mode.
// A zero interval means one-shot execution.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

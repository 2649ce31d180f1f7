package config

import (
	"fmt"
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server  ServerData  `json:"server" yaml:"server"`
	Report  ReportData  `json:"report" yaml:"report"`
	Chart   ChartData   `json:"chart" yaml:"chart"`
	Archive ArchiveData `json:"archive" yaml:"archive"`
	Metrics MetricsData `json:"metrics" yaml:"metrics"`
	Logging LoggingData `json:"logging" yaml:"logging"`
}

// ServerData holds the HTTP listener configuration
type ServerData struct {
	ListenAddr          string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"omitempty,ip|hostname"`
	Port                int    `json:"http_port,omitempty" yaml:"http_port,omitempty" validate:"min=0,max=65535"`
	Cert                string `json:"cert,omitempty" yaml:"cert,omitempty" validate:"required_with=Key"`
	Key                 string `json:"key,omitempty" yaml:"key,omitempty" validate:"required_with=Cert"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds,omitempty" yaml:"read_timeout_seconds,omitempty" validate:"min=0"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds,omitempty" yaml:"write_timeout_seconds,omitempty" validate:"min=0"`
}

// Addr returns the host:port the server listens on
func (s ServerData) Addr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddr, s.Port)
}

// ReadTimeout returns the read timeout as a duration
func (s ServerData) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerData) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ReportData configures the exported report
type ReportData struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty" validate:"omitempty,excludesall=/\\"`
}

// ChartData sets the size of the chart snapshot in pixels
type ChartData struct {
	WidthPx  int `json:"width_px,omitempty" yaml:"width_px,omitempty" validate:"min=0,max=4096"`
	HeightPx int `json:"height_px,omitempty" yaml:"height_px,omitempty" validate:"min=0,max=4096"`
}

// Archive backends
const (
	ArchiveNone     = "none"
	ArchiveSQLite   = "sqlite"
	ArchivePostgres = "postgres"
)

// ArchiveData selects where completed runs are recorded
type ArchiveData struct {
	Backend          string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=none sqlite postgres"`
	SQLitePath       string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_if=Backend sqlite"`
	ConnectionString string `json:"connection_string,omitempty" yaml:"connection_string,omitempty" validate:"required_if=Backend postgres"`
}

// MetricsData controls the Prometheus endpoint
type MetricsData struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" validate:"omitempty,startswith=/"`
}

// LoggingData controls log verbosity and the optional rotating log file
type LoggingData struct {
	Debug      bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty" validate:"min=0"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty" validate:"min=0"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty" validate:"min=0"`
}

// StaticProvider serves a configuration that is already in memory
type StaticProvider struct {
	config *ConfigData
}

// NewStaticProvider wraps cfg
func NewStaticProvider(cfg *ConfigData) *StaticProvider {
	return &StaticProvider{config: cfg}
}

// LoadConfig returns the wrapped configuration
func (s *StaticProvider) LoadConfig() (*ConfigData, error) {
	return s.config, nil
}

// IsReadOnly returns true
func (s *StaticProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op
func (s *StaticProvider) Close() error {
	return nil
}

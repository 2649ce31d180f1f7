package config

import (
	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/validator"
)

// Default values applied to unset keys
const (
	DefaultListenAddr   = "0.0.0.0"
	DefaultPort         = 8080
	DefaultTimeoutSecs  = 15
	DefaultMetricsPath  = "/metrics"
	DefaultLogMaxSizeMB = 50
)

// Default returns a configuration with every default applied
func Default() *ConfigData {
	c := &ConfigData{Metrics: MetricsData{Enabled: true}}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset keys in place
func (c *ConfigData) ApplyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = DefaultTimeoutSecs
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = DefaultTimeoutSecs
	}

	if c.Report.Title == "" {
		c.Report.Title = constants.DefaultReportTitle
	}
	if c.Report.Filename == "" {
		c.Report.Filename = constants.DefaultReportFilename
	}

	if c.Chart.WidthPx == 0 {
		c.Chart.WidthPx = constants.DefaultChartWidthPx
	}
	if c.Chart.HeightPx == 0 {
		c.Chart.HeightPx = constants.DefaultChartHeightPx
	}

	if c.Archive.Backend == "" {
		c.Archive.Backend = ArchiveNone
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Logging.File != "" && c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	}
}

// Validate checks the configuration against its struct tags
func (c *ConfigData) Validate() error {
	return validator.Validate(c)
}

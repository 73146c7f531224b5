package config

import (
	"fmt"
	"net/url"
)

type Config struct {
	Backend     BackendConfig     `yaml:"backend" toml:"backend"`
	Paths       PathsConfig       `yaml:"paths" toml:"paths"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg" toml:"ffmpeg"`
	Export      ExportConfig      `yaml:"export" toml:"export"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Performance PerformanceConfig `yaml:"performance" toml:"performance"`
}

type BackendConfig struct {
	// BaseURL is where the POST endpoints live, e.g. http://localhost:8000
	// or http://localhost:3000/api. Artifacts are fetched from its origin.
	BaseURL   string `yaml:"base_url" toml:"base_url"`
	Summarize bool   `yaml:"summarize" toml:"summarize"`
	// TimeoutSeconds of 0 means no client timeout.
	TimeoutSeconds int `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox" toml:"inbox"`
	Output   string `yaml:"output" toml:"output"`
	Archived string `yaml:"archived" toml:"archived"`
	Temp     string `yaml:"temp" toml:"temp"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
	SampleRate int    `yaml:"sample_rate" toml:"sample_rate"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx" toml:"docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File redirects log output; the TUI needs this since it owns stdout.
	File string `yaml:"file" toml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) Validate() error {
	c.setDefaults()

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute http(s) URL: %q", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend.timeout_seconds must not be negative")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	return nil
}

// setDefaults fills every zero field that has a default.
func (c *Config) setDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:8000"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

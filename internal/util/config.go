// Package util provides common utilities for phishguard.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// Remote verdict service
	APIBaseURL     string        `mapstructure:"api_base_url"`
	APIKey         string        `mapstructure:"api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxFileSize    int64         `mapstructure:"max_file_size"`

	// Upstream ML inference service (used by `phishguard serve`)
	InferenceURL string `mapstructure:"inference_url"`

	// Poll cadence per consumer
	HistoryPollInterval time.Duration `mapstructure:"history_poll_interval"`
	StatusPollInterval  time.Duration `mapstructure:"status_poll_interval"`

	// Extension liveness window
	HeartbeatWindow time.Duration `mapstructure:"heartbeat_window"`

	// Servers
	WebPort   int `mapstructure:"web_port"`
	ServePort int `mapstructure:"serve_port"`

	// External phishing-report template; the scanned target is
	// percent-encoded into the %s slot.
	ReportURLTemplate string `mapstructure:"report_url_template"`

	// Report output
	ReportOutputDir string `mapstructure:"report_output_dir"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".phishguard")

	return &Config{
		DataDir:  dataDir,
		LogLevel: "info",
		LogFile:  filepath.Join(dataDir, "phishguard.log"),

		APIBaseURL:     "http://127.0.0.1:8000",
		APIKey:         "",
		RequestTimeout: 30 * time.Second,
		MaxFileSize:    50 * 1024 * 1024,

		InferenceURL: "http://127.0.0.1:8500",

		HistoryPollInterval: 5 * time.Second,
		StatusPollInterval:  10 * time.Second,
		HeartbeatWindow:     60 * time.Second,

		WebPort:   8080,
		ServePort: 8000,

		ReportURLTemplate: "https://safebrowsing.google.com/safebrowsing/report_phish/?url=%s",
		ReportOutputDir:   filepath.Join(dataDir, "reports"),
	}
}

// LoadConfig loads configuration from file and environment. An empty
// cfgFile falls back to the default search path.
func LoadConfig(cfgFile string) (*Config, error) {
	cfg := DefaultConfig()

	// Ensure config directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(cfg.DataDir)
		viper.AddConfigPath(".")
	}

	// Set defaults in viper
	viper.SetDefault("data_dir", cfg.DataDir)
	viper.SetDefault("log_level", cfg.LogLevel)
	viper.SetDefault("api_base_url", cfg.APIBaseURL)
	viper.SetDefault("request_timeout", cfg.RequestTimeout)
	viper.SetDefault("max_file_size", cfg.MaxFileSize)
	viper.SetDefault("inference_url", cfg.InferenceURL)
	viper.SetDefault("history_poll_interval", cfg.HistoryPollInterval)
	viper.SetDefault("status_poll_interval", cfg.StatusPollInterval)
	viper.SetDefault("heartbeat_window", cfg.HeartbeatWindow)
	viper.SetDefault("web_port", cfg.WebPort)
	viper.SetDefault("serve_port", cfg.ServePort)
	viper.SetDefault("report_url_template", cfg.ReportURLTemplate)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal into config struct
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// EnsureDir ensures a directory exists.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

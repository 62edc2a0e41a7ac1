// Package config loads and stores application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Version  int            `toml:"version"`
	API      APIConfig      `toml:"api"`
	Scraping ScrapingConfig `toml:"scraping"`
	Monitor  MonitorConfig  `toml:"monitor"`
	Browser  BrowserConfig  `toml:"browser"`
}

// APIConfig holds the RapidAPI credentials. Empty fields fall back to the
// RAPIDAPI_KEY / RAPIDAPI_HOST environment variables.
type APIConfig struct {
	Key  string `toml:"key"`
	Host string `toml:"host"`
}

// ScrapingConfig controls the retrieval engine.
type ScrapingConfig struct {
	OutputDir       string `toml:"output_dir"`
	Mode            string `toml:"mode"`
	PageDelayMS     int    `toml:"page_delay_ms"`
	ReplyDelayMS    int    `toml:"reply_delay_ms"`
	CheckpointEvery int    `toml:"checkpoint_every"`
}

// MonitorConfig controls continuous monitoring defaults.
type MonitorConfig struct {
	IntervalMinutes int    `toml:"interval_minutes"`
	ArchivePath     string `toml:"archive_path"`
}

// BrowserConfig controls the browser-based extraction path.
type BrowserConfig struct {
	Headless   bool   `toml:"headless"`
	MaxScrolls int    `toml:"max_scrolls"`
	CookiePath string `toml:"cookie_path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Scraping: ScrapingConfig{
			OutputDir:       "scraping",
			Mode:            "latest",
			PageDelayMS:     1000,
			ReplyDelayMS:    500,
			CheckpointEvery: 5,
		},
		Monitor: MonitorConfig{
			IntervalMinutes: 5,
			ArchivePath:     "scraping/archive.db",
		},
		Browser: BrowserConfig{
			Headless:   true,
			MaxScrolls: 5,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "xscrape"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// Credentials resolves the RapidAPI key and host, preferring the config file
// and falling back to the environment.
func (c *Config) Credentials() (key, host string, err error) {
	key = c.API.Key
	if key == "" {
		key = os.Getenv("RAPIDAPI_KEY")
	}
	host = c.API.Host
	if host == "" {
		host = os.Getenv("RAPIDAPI_HOST")
	}
	if key == "" || host == "" {
		return "", "", fmt.Errorf("RAPIDAPI_KEY and RAPIDAPI_HOST must be set in the environment or config file")
	}
	return key, host, nil
}

// Package config loads the stats server configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the HTTP server settings.
type Config struct {
	Listen            string   `toml:"listen"`
	MaxUploadBytes    int64    `toml:"max_upload_bytes"`
	MaxFormBytes      int64    `toml:"max_form_bytes"`
	AllowedExtensions []string `toml:"allowed_extensions"`
	Compression       bool     `toml:"compression"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:            ":8080",
		MaxUploadBytes:    100 * 1024 * 1024,
		MaxFormBytes:      10 * 1024 * 1024,
		AllowedExtensions: []string{".txt", ".md", ".log", ".csv", ".json", ".go"},
		Compression:       true,
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; the defaults apply. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	err = cfg.validate()
	if err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}

	if c.MaxFormBytes <= 0 {
		return fmt.Errorf("max_form_bytes must be positive, got %d", c.MaxFormBytes)
	}

	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("allowed_extensions cannot be empty")
	}

	return nil
}

// ExtensionAllowed reports whether ext (including the leading dot) is an
// accepted upload extension.
func (c Config) ExtensionAllowed(ext string) bool {
	for _, allowed := range c.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}

// Package config defines the flash-ui configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < environment < CLI flag overrides.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/CodexForgeBR/flash-ui/internal/model"
)

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [10]string{
	"API_KEY",
	"MODEL",
	"API_BASE_URL",
	"TEMPERATURE",
	"VARIATION_TEMPERATURE",
	"MAX_RETRIES",
	"BASE_DELAY_MS",
	"STATE_DIR",
	"EXPORT_DIR",
	"VERBOSE",
}

// EnvPrefix prefixes environment variables that map onto whitelisted keys,
// e.g. FLASH_UI_MODEL sets MODEL.
const EnvPrefix = "FLASH_UI_"

// ProjectConfigPath is the project-local config file, relative to the
// working directory.
const ProjectConfigPath = ".flash-ui/config"

// Config holds every configuration field for the flash-ui CLI.
type Config struct {
	// Model access.
	APIKey     string
	Model      string
	APIBaseURL string

	// Sampling. A nil Temperature leaves the model default in place.
	Temperature          *float64
	VariationTemperature float64

	// Retry budget for rate-limited calls.
	MaxRetries  int
	BaseDelayMS int

	// Local storage.
	StateDir  string
	ExportDir string

	// Runtime flags.
	Verbose bool

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		Model:                model.DefaultModel,
		VariationTemperature: 1.2,
		MaxRetries:           3,
		BaseDelayMS:          2000,
		StateDir:             ".flash-ui",
		ExportDir:            ".",
	}
}

// BaseDelay returns BaseDelayMS as a duration.
func (c *Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMS) * time.Millisecond
}

// GlobalConfigPath returns the per-user config file location, or "" if the
// user config directory cannot be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "flash-ui", "config")
}

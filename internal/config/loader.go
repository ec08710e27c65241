package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// LoadFile reads a KEY=VALUE config file and returns the whitelisted
// entries. Blank lines, # comments, lines without "=" and unknown keys are
// skipped. A leading "export " and one pair of matching quotes around the
// value are stripped, so a shell env file can be reused as-is.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	entries := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		key, value, ok := parseLine(line)
		if !ok || !slices.Contains(WhitelistedVars[:], key) {
			continue
		}
		entries[key] = value
	}
	return entries, nil
}

// parseLine splits one config line on its first "=".
func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), unquote(strings.TrimSpace(value)), true
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// EnvOverrides collects configuration from the environment. GEMINI_API_KEY
// and API_KEY set the API key (GEMINI_API_KEY wins); FLASH_UI_<KEY> sets any
// whitelisted key and wins over both.
func EnvOverrides(getenv func(string) string) map[string]string {
	result := make(map[string]string)

	if v := getenv("API_KEY"); v != "" {
		result["API_KEY"] = v
	}
	if v := getenv("GEMINI_API_KEY"); v != "" {
		result["API_KEY"] = v
	}
	for _, key := range WhitelistedVars {
		if v := getenv(EnvPrefix + key); v != "" {
			result[key] = v
		}
	}

	return result
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. Environment overrides (envOverrides map)
//  6. CLI overrides (cliOverrides map)
//
// Missing global and project files are skipped. An explicit file must exist.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, envOverrides, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, layer := range []struct {
		name string
		path string
	}{
		{"global", globalPath},
		{"project", projectPath},
	} {
		if layer.path == "" {
			continue
		}
		m, err := LoadFile(layer.path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s config: %w", layer.name, err)
			}
			continue
		}
		ApplyMapToConfig(cfg, m)
	}

	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	ApplyMapToConfig(cfg, envOverrides)
	ApplyMapToConfig(cfg, cliOverrides)

	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Unknown keys are silently ignored. Numeric fields that fail to parse
// are silently ignored (the previous value is preserved). An empty
// TEMPERATURE clears the temperature override.
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "API_KEY":
			cfg.APIKey = value
		case "MODEL":
			cfg.Model = value
		case "API_BASE_URL":
			cfg.APIBaseURL = value
		case "TEMPERATURE":
			if value == "" {
				cfg.Temperature = nil
			} else if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.Temperature = &v
			}
		case "VARIATION_TEMPERATURE":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.VariationTemperature = v
			}
		case "MAX_RETRIES":
			if v, err := strconv.Atoi(value); err == nil && v >= 0 {
				cfg.MaxRetries = v
			}
		case "BASE_DELAY_MS":
			if v, err := strconv.Atoi(value); err == nil && v > 0 {
				cfg.BaseDelayMS = v
			}
		case "STATE_DIR":
			cfg.StateDir = value
		case "EXPORT_DIR":
			cfg.ExportDir = value
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		}
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

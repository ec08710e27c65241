// Package cli provides the cobra command tree, flag binding and validation
// for the flash-ui CLI.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/flash-ui/internal/config"
)

// Flags holds the raw values of the persistent flags. Only flags the user
// explicitly set are turned into config overrides.
type Flags struct {
	ConfigFile           string
	APIKey               string
	Model                string
	APIBaseURL           string
	Temperature          float64
	VariationTemperature float64
	MaxRetries           int
	BaseDelayMS          int
	StateDir             string
	ExportDir            string
	Verbose              bool
}

// BindFlags registers the persistent flags on the given cobra command.
// Defaults shown in help come from config.NewDefaultConfig; config files
// and the environment can still override them.
func BindFlags(cmd *cobra.Command, f *Flags) {
	def := config.NewDefaultConfig()
	flags := cmd.PersistentFlags()

	// Model
	flags.StringVar(&f.APIKey, "api-key", "", "Gemini API key (default: $GEMINI_API_KEY or $API_KEY)")
	flags.StringVarP(&f.Model, "model", "m", def.Model, "Gemini model to use")
	flags.StringVar(&f.APIBaseURL, "api-base-url", "", "Override the Gemini REST endpoint")
	flags.Float64Var(&f.Temperature, "temperature", 0, "Sampling temperature for artifacts (default: model default)")
	flags.Float64Var(&f.VariationTemperature, "variation-temperature", def.VariationTemperature, "Sampling temperature for variations")

	// Rate limits
	flags.IntVar(&f.MaxRetries, "max-retries", def.MaxRetries, "Retries after a rate-limited call")
	flags.IntVar(&f.BaseDelayMS, "base-delay-ms", def.BaseDelayMS, "Initial backoff delay in milliseconds")

	// Storage
	flags.StringVar(&f.StateDir, "state-dir", def.StateDir, "Directory holding sessions and library")
	flags.StringVar(&f.ExportDir, "export-dir", def.ExportDir, "Directory for exported HTML files")
	flags.StringVar(&f.ConfigFile, "config", "", "Path to additional config file")

	flags.BoolVarP(&f.Verbose, "verbose", "v", false, "Show debug output")
}

// ValidateFlags checks flag values after parsing.
func ValidateFlags(cmd *cobra.Command, f *Flags) error {
	// --config must exist if provided
	if f.ConfigFile != "" {
		if _, err := os.Stat(f.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if f.MaxRetries < 0 {
		return fmt.Errorf("--max-retries must be >= 0, got: %d", f.MaxRetries)
	}
	if f.BaseDelayMS <= 0 {
		return fmt.Errorf("--base-delay-ms must be > 0, got: %d", f.BaseDelayMS)
	}
	if cmd.Flags().Changed("temperature") && (f.Temperature < 0 || f.Temperature > 2) {
		return fmt.Errorf("--temperature must be between 0 and 2, got: %g", f.Temperature)
	}
	if f.VariationTemperature < 0 || f.VariationTemperature > 2 {
		return fmt.Errorf("--variation-temperature must be between 0 and 2, got: %g", f.VariationTemperature)
	}

	return nil
}

// BuildOverrides creates a map of config overrides from the flags the user
// explicitly set, so config file values are not overridden by defaults.
func BuildOverrides(cmd *cobra.Command, f *Flags) map[string]string {
	overrides := make(map[string]string)
	changed := cmd.Flags().Changed

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"api-key":      {"API_KEY", f.APIKey},
		"model":        {"MODEL", f.Model},
		"api-base-url": {"API_BASE_URL", f.APIBaseURL},
		"state-dir":    {"STATE_DIR", f.StateDir},
		"export-dir":   {"EXPORT_DIR", f.ExportDir},
	}
	for flag, mapping := range stringFlags {
		if changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	floatFlags := map[string]struct {
		key string
		val float64
	}{
		"temperature":           {"TEMPERATURE", f.Temperature},
		"variation-temperature": {"VARIATION_TEMPERATURE", f.VariationTemperature},
	}
	for flag, mapping := range floatFlags {
		if changed(flag) {
			overrides[mapping.key] = strconv.FormatFloat(mapping.val, 'g', -1, 64)
		}
	}

	intFlags := map[string]struct {
		key string
		val int
	}{
		"max-retries":   {"MAX_RETRIES", f.MaxRetries},
		"base-delay-ms": {"BASE_DELAY_MS", f.BaseDelayMS},
	}
	for flag, mapping := range intFlags {
		if changed(flag) {
			overrides[mapping.key] = strconv.Itoa(mapping.val)
		}
	}

	if changed("verbose") {
		overrides["VERBOSE"] = strconv.FormatBool(f.Verbose)
	}

	return overrides
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	resumepdf "github.com/alnah/go-resumepdf"
)

const envPrefix = "RESUMEPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // RESUMEPDF_CONFIG: config file name or path
	FontPath    string // RESUMEPDF_FONT_PATH: font base directory
	CustomFonts *bool  // RESUMEPDF_CUSTOM_FONTS: embed TrueType assets
	TemplateDir string // RESUMEPDF_TEMPLATE_DIR: markup template overrides
	Template    string // RESUMEPDF_TEMPLATE: default template id
	OutputDir   string // RESUMEPDF_OUTPUT_DIR: batch output directory
	Workers     int    // RESUMEPDF_WORKERS: batch workers
	LogFormat   string // RESUMEPDF_LOG_FORMAT: console, json
}

// knownEnvVars lists valid RESUMEPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUMEPDF_CONFIG":       true,
	"RESUMEPDF_FONT_PATH":    true,
	"RESUMEPDF_CUSTOM_FONTS": true,
	"RESUMEPDF_TEMPLATE_DIR": true,
	"RESUMEPDF_TEMPLATE":     true,
	"RESUMEPDF_OUTPUT_DIR":   true,
	"RESUMEPDF_WORKERS":      true,
	"RESUMEPDF_LOG_FORMAT":   true,
	"RESUMEPDF_CONTAINER":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numeric and boolean values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("RESUMEPDF_CONFIG"),
		FontPath:    getenv("RESUMEPDF_FONT_PATH"),
		TemplateDir: getenv("RESUMEPDF_TEMPLATE_DIR"),
		Template:    getenv("RESUMEPDF_TEMPLATE"),
		OutputDir:   getenv("RESUMEPDF_OUTPUT_DIR"),
		LogFormat:   strings.ToLower(getenv("RESUMEPDF_LOG_FORMAT")),
	}

	if v := getenv("RESUMEPDF_CUSTOM_FONTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CustomFonts = &b
		}
	}

	if workers := getenv("RESUMEPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RESUMEPDF_* variables.
// Helps catch typos like RESUMEPDF_FONTS_PATH instead of RESUMEPDF_FONT_PATH.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over cfg.
// Resulting precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by applyFontFlags).
func applyEnvConfig(env *envConfig, cfg *resumepdf.Config) {
	if env.FontPath != "" {
		cfg.FontBasePath = env.FontPath
	}
	if env.CustomFonts != nil {
		cfg.EnableCustomFonts = *env.CustomFonts
	}
	if env.TemplateDir != "" {
		cfg.TemplateDir = env.TemplateDir
	}
}

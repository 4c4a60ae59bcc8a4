// Package config loads the rendering configuration: where font assets live,
// whether custom fonts are embedded, and which fonts each template declares.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-resumepdf/internal/dateutil"
	"github.com/alnah/go-resumepdf/internal/fileutil"
	"github.com/alnah/go-resumepdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Defaults mirrored by DefaultConfig.
const (
	DefaultFontBasePath = "static/fonts/"
	DefaultPresentLabel = "Present"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds all configuration for resume rendering.
type Config struct {
	FontBasePath      string              `yaml:"fontBasePath" validate:"max=1024"`
	EnableCustomFonts bool                `yaml:"enableCustomFonts"`
	TemplateDir       string              `yaml:"templateDir" validate:"max=1024"`   // Empty = embedded markup only
	DateFormat        string              `yaml:"dateFormat" validate:"max=50"`      // dateutil tokens or preset
	PresentLabel      string              `yaml:"presentLabel" validate:"max=50"`    // Shown for ongoing periods
	Templates         map[string]Template `yaml:"templates" validate:"dive,keys,min=1,max=50,endkeys"`
}

// Template lists the fonts a template declares, in registration order.
type Template struct {
	Fonts []Font `yaml:"fonts" validate:"max=32,dive"`
}

// Font is one font declaration. File is relative to FontBasePath.
type Font struct {
	Family  string `yaml:"family" validate:"required,max=100"`
	File    string `yaml:"file" validate:"required,max=255"`
	Weight  string `yaml:"weight,omitempty" validate:"omitempty,oneof=normal regular bold 100 200 300 400 500 600 700 800 900"`
	Style   string `yaml:"style,omitempty" validate:"omitempty,oneof=normal italic oblique"`
	Primary bool   `yaml:"primary,omitempty"`
}

// fileConfig is the on-disk shape. Pointer fields distinguish "absent"
// from zero values so a file only overrides what it sets.
type fileConfig struct {
	FontBasePath      *string             `yaml:"fontBasePath"`
	EnableCustomFonts *bool               `yaml:"enableCustomFonts"`
	TemplateDir       *string             `yaml:"templateDir"`
	DateFormat        *string             `yaml:"dateFormat"`
	PresentLabel      *string             `yaml:"presentLabel"`
	Templates         map[string]Template `yaml:"templates"`
}

// Validate checks field constraints. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	for id := range c.Templates {
		if fileutil.IsFilePath(id) || id != strings.ToLower(strings.TrimSpace(id)) {
			return fmt.Errorf("%w: template id %q must be a lowercase name", ErrConfigInvalid, id)
		}
	}
	if _, err := dateutil.Layout(c.DateFormat); err != nil {
		return fmt.Errorf("%w: dateFormat: %v", ErrConfigInvalid, err)
	}
	return nil
}

// DefaultConfig returns the built-in configuration: custom fonts enabled and
// one font list per built-in template.
func DefaultConfig() *Config {
	return &Config{
		FontBasePath:      DefaultFontBasePath,
		EnableCustomFonts: true,
		DateFormat:        dateutil.DefaultDateFormat,
		PresentLabel:      DefaultPresentLabel,
		Templates: map[string]Template{
			"default": {Fonts: []Font{
				{Family: "Lato", File: "Lato-Regular.ttf", Weight: "normal", Primary: true},
				{Family: "Lato", File: "Lato-Bold.ttf", Weight: "bold"},
			}},
			"modern": {Fonts: []Font{
				{Family: "Roboto", File: "Roboto-Regular.ttf", Weight: "normal", Primary: true},
				{Family: "Roboto", File: "Roboto-Bold.ttf", Weight: "bold"},
			}},
			"professional": {Fonts: []Font{
				{Family: "SourceSerif", File: "SourceSerif4-Regular.ttf", Weight: "normal", Primary: true},
				{Family: "SourceSerif", File: "SourceSerif4-Bold.ttf", Weight: "bold"},
			}},
			"creative": {Fonts: []Font{
				{Family: "OpenSans", File: "OpenSans-Regular.ttf", Weight: "normal", Primary: true},
				{Family: "Montserrat", File: "Montserrat-Bold.ttf", Weight: "bold"},
				{Family: "Poppins", File: "Poppins-Light.ttf", Weight: "300"},
			}},
			"minimal": {Fonts: []Font{
				{Family: "Inter", File: "Inter-Regular.ttf", Weight: "normal", Primary: true},
				{Family: "Inter", File: "Inter-Medium.ttf", Weight: "500"},
			}},
		},
	}
}

// LoadConfig loads configuration from a file path or config name and merges
// it over DefaultConfig. A template listed in the file replaces that
// template's font list; other templates keep their defaults.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data and merges it over DefaultConfig.
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yamlutil.UnmarshalStrict(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := DefaultConfig()
	cfg.merge(fc)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(fc fileConfig) {
	if fc.FontBasePath != nil {
		c.FontBasePath = *fc.FontBasePath
	}
	if fc.EnableCustomFonts != nil {
		c.EnableCustomFonts = *fc.EnableCustomFonts
	}
	if fc.TemplateDir != nil {
		c.TemplateDir = *fc.TemplateDir
	}
	if fc.DateFormat != nil {
		c.DateFormat = *fc.DateFormat
	}
	if fc.PresentLabel != nil {
		c.PresentLabel = *fc.PresentLabel
	}
	maps.Copy(c.Templates, fc.Templates)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-resumepdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-resumepdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError lists the paths searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

package resumepdf

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alnah/go-resumepdf/internal/config"
)

// Config is the rendering configuration consumed by NewRegistry.
type Config struct {
	// FontBasePath is the directory every FontDeclaration.AssetPath is
	// relative to.
	FontBasePath string
	// EnableCustomFonts gates asset reading. When false every declaration
	// resolves to a builtin font.
	EnableCustomFonts bool
	// TemplateDir optionally overrides embedded template markup with
	// {TemplateDir}/{id}.md.tmpl files. Empty means embedded markup only.
	TemplateDir string
	// DateFormat is a dateutil token format or preset name.
	DateFormat string
	// PresentLabel ends the period of an ongoing position or study.
	PresentLabel string
	// Templates maps each template identifier to its font declarations,
	// in registration order.
	Templates map[string][]FontDeclaration
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	cfg, err := fromInternal(config.DefaultConfig())
	if err != nil {
		// Built-in font declarations are constants.
		panic(err)
	}
	return cfg
}

// LoadConfig loads a YAML configuration by path or name and merges it over
// DefaultConfig. See internal/config for the lookup rules.
func LoadConfig(nameOrPath string) (Config, error) {
	ic, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return Config{}, err
	}
	return fromInternal(ic)
}

// ParseConfig decodes YAML configuration data and merges it over
// DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	ic, err := config.Parse(data)
	if err != nil {
		return Config{}, err
	}
	return fromInternal(ic)
}

// Clone returns a copy sharing no declaration storage with c.
func (c Config) Clone() Config {
	out := c
	out.Templates = make(map[string][]FontDeclaration, len(c.Templates))
	for id, decls := range c.Templates {
		out.Templates[id] = slices.Clone(decls)
	}
	return out
}

// TemplateIDs returns the configured template identifiers, sorted.
func (c Config) TemplateIDs() []string {
	return slices.Sorted(maps.Keys(c.Templates))
}

func fromInternal(ic *config.Config) (Config, error) {
	cfg := Config{
		FontBasePath:      ic.FontBasePath,
		EnableCustomFonts: ic.EnableCustomFonts,
		TemplateDir:       ic.TemplateDir,
		DateFormat:        ic.DateFormat,
		PresentLabel:      ic.PresentLabel,
		Templates:         make(map[string][]FontDeclaration, len(ic.Templates)),
	}
	for id, tpl := range ic.Templates {
		decls := make([]FontDeclaration, 0, len(tpl.Fonts))
		for i, f := range tpl.Fonts {
			d, err := declarationOf(f)
			if err != nil {
				return Config{}, fmt.Errorf("template %q font %d: %w", id, i, err)
			}
			decls = append(decls, d)
		}
		cfg.Templates[id] = decls
	}
	return cfg, nil
}

func declarationOf(f config.Font) (FontDeclaration, error) {
	weight, err := ParseFontWeight(f.Weight)
	if err != nil {
		return FontDeclaration{}, err
	}
	style, err := ParseFontStyle(f.Style)
	if err != nil {
		return FontDeclaration{}, err
	}
	return FontDeclaration{
		Family:    f.Family,
		AssetPath: f.File,
		Weight:    weight,
		Style:     style,
		Primary:   f.Primary,
	}, nil
}

package resumepdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-resumepdf/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	for _, id := range TemplateNames() {
		decls, ok := cfg.Templates[id]
		if !ok || len(decls) == 0 {
			t.Errorf("DefaultConfig() has no fonts for %q", id)
		}
	}
	if !cfg.EnableCustomFonts {
		t.Error("EnableCustomFonts = false, want true")
	}
	creative := cfg.Templates[TemplateCreative]
	if creative[2].Family != "Poppins" || creative[2].Weight != 300 {
		t.Errorf("creative light face = %+v", creative[2])
	}
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides one template", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
fontBasePath: /srv/fonts
enableCustomFonts: false
presentLabel: Today
templates:
  modern:
    fonts:
      - family: Inter
        file: Inter-Italic.ttf
        style: italic
        primary: true
`)
		cfg, err := ParseConfig(data)
		if err != nil {
			t.Fatalf("ParseConfig() error = %v", err)
		}
		if cfg.FontBasePath != "/srv/fonts" || cfg.EnableCustomFonts || cfg.PresentLabel != "Today" {
			t.Errorf("scalars not merged: %+v", cfg)
		}
		modern := cfg.Templates[TemplateModern]
		if len(modern) != 1 || modern[0].Style != StyleItalic || modern[0].Weight != WeightNormal {
			t.Errorf("modern = %+v", modern)
		}
		if len(cfg.Templates[TemplateDefault]) != 2 {
			t.Error("default template lost its built-in fonts")
		}
	})

	t.Run("invalid weight", func(t *testing.T) {
		t.Parallel()

		data := []byte("templates:\n  default:\n    fonts:\n      - family: Lato\n        file: a.ttf\n        weight: heavy\n")
		if _, err := ParseConfig(data); !errors.Is(err, config.ErrConfigInvalid) {
			t.Errorf("ParseConfig() error = %v, want ErrConfigInvalid", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseConfig([]byte("fontPath: x\n")); !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("ParseConfig() error = %v, want ErrConfigParse", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "resume.yaml")
	if err := os.WriteFile(path, []byte("dateFormat: year\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DateFormat != "year" {
		t.Errorf("DateFormat = %q, want year", cfg.DateFormat)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("LoadConfig(missing) error = %v, want ErrConfigNotFound", err)
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	c := cfg.Clone()
	c.Templates[TemplateDefault][0].Family = "changed"
	delete(c.Templates, TemplateMinimal)

	if cfg.Templates[TemplateDefault][0].Family != "Lato" {
		t.Error("Clone() shares declaration storage")
	}
	if _, ok := cfg.Templates[TemplateMinimal]; !ok {
		t.Error("Clone() shares the template map")
	}
	if ids := cfg.TemplateIDs(); len(ids) != 5 || ids[0] != TemplateCreative {
		t.Errorf("TemplateIDs() = %v", ids)
	}
}

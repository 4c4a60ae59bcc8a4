package resumepdf

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/alnah/go-resumepdf/internal/assets"
	"github.com/alnah/go-resumepdf/internal/dateutil"
)

// Markup sources recorded on a TemplateDescriptor.
const (
	SourceEmbedded = "embedded"
	SourceCustom   = "custom"
)

// markupFuncs are available to every template markup.
var markupFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"upper": strings.ToUpper,
}

// TemplateDescriptor is the immutable, parsed form of one template.
type TemplateDescriptor struct {
	ID     string
	Source string // SourceEmbedded or SourceCustom
	Fonts  []FontDeclaration
	markup *template.Template
}

// Primary returns the declaration used for body text.
func (d *TemplateDescriptor) Primary() (FontDeclaration, bool) {
	return primaryDeclaration(d.Fonts)
}

// Registry holds one descriptor per configured template. It is built once at
// startup, never mutated afterwards, and safe for concurrent use.
type Registry struct {
	templates    map[string]*TemplateDescriptor
	fontBasePath string
	customFonts  bool
	dateFormat   string
	presentLabel string
}

// NewRegistry parses every configured template. Each built-in identifier
// must be configured: a missing one is ErrTemplateConfigMissing, and no
// Registry is returned on any error.
func NewRegistry(cfg Config) (*Registry, error) {
	if _, err := dateutil.Layout(cfg.DateFormat); err != nil {
		return nil, fmt.Errorf("%w: dateFormat: %v", ErrInvalidConfig, err)
	}
	for _, id := range templateNames {
		if _, ok := cfg.Templates[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrTemplateConfigMissing, id)
		}
	}

	loader, err := assets.NewResolver(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: templateDir: %v", ErrInvalidConfig, err)
	}

	reg := &Registry{
		templates:    make(map[string]*TemplateDescriptor, len(cfg.Templates)),
		fontBasePath: cfg.FontBasePath,
		customFonts:  cfg.EnableCustomFonts,
		dateFormat:   cfg.DateFormat,
		presentLabel: cfg.PresentLabel,
	}
	if reg.presentLabel == "" {
		reg.presentLabel = "Present"
	}

	for _, id := range cfg.TemplateIDs() {
		if id != strings.ToLower(strings.TrimSpace(id)) || assets.ValidateAssetName(id) != nil {
			return nil, fmt.Errorf("%w: template id %q", ErrInvalidConfig, id)
		}
		desc, err := loadDescriptor(loader, id, cfg.Templates[id])
		if err != nil {
			return nil, err
		}
		reg.templates[id] = desc
	}
	return reg, nil
}

func loadDescriptor(loader *assets.Resolver, id string, decls []FontDeclaration) (*TemplateDescriptor, error) {
	for i, d := range decls {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("%w: template %q font %d: %v", ErrInvalidFontDecl, id, i, err)
		}
	}

	src, custom, err := loader.LoadMarkupSource(id)
	if err != nil {
		if errors.Is(err, assets.ErrMarkupNotFound) {
			return nil, fmt.Errorf("%w: no markup for %q", ErrTemplateConfigMissing, id)
		}
		return nil, fmt.Errorf("loading markup %q: %w", id, err)
	}

	tmpl, err := template.New(id).Funcs(markupFuncs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateParse, id, err)
	}

	source := SourceEmbedded
	if custom {
		source = SourceCustom
	}
	return &TemplateDescriptor{
		ID:     id,
		Source: source,
		Fonts:  slices.Clone(decls),
		markup: tmpl,
	}, nil
}

// Normalize maps a requested template name to a configured identifier,
// falling back to TemplateDefault.
func (r *Registry) Normalize(name string) string {
	return normalizeAgainst(name, func(id string) bool {
		_, ok := r.templates[id]
		return ok
	})
}

// Lookup returns the descriptor for name after normalization. It never
// returns nil.
func (r *Registry) Lookup(name string) *TemplateDescriptor {
	return r.templates[r.Normalize(name)]
}

// Templates returns the configured identifiers, sorted.
func (r *Registry) Templates() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// FontBasePath returns the directory font assets are resolved against.
func (r *Registry) FontBasePath() string { return r.fontBasePath }

// CustomFontsEnabled reports whether font assets are read at all.
func (r *Registry) CustomFontsEnabled() bool { return r.customFonts }

// DateFormat returns the configured period date format.
func (r *Registry) DateFormat() string { return r.dateFormat }

// PresentLabel returns the label ending ongoing periods.
func (r *Registry) PresentLabel() string { return r.presentLabel }

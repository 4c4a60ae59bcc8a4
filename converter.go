package resumepdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ContentTypePDF is the media type of Result.PDF.
const ContentTypePDF = "application/pdf"

// Result is a rendered resume.
type Result struct {
	PDF         []byte
	Filename    string // suggested download name
	ContentType string
	Template    string // normalized template identifier actually used
	Markup      string // composed markup handed to the renderer
	Pages       int
	Fonts       FontSet
}

// Converter runs the render pipeline: validate, resolve fonts, compose
// markup, lay out and serialize. It is safe for concurrent use.
type Converter struct {
	registry   *Registry
	resolver   *FontResolver
	compositor *Compositor
	renderer   *Renderer
	logger     *zap.Logger
}

type converterOptions struct {
	cfg      *Config
	registry *Registry
	logger   *zap.Logger
	creator  string
}

// Option configures a Converter.
type Option func(*converterOptions)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *converterOptions) {
		o.logger = l
	}
}

// WithConfig builds the registry from cfg instead of DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *converterOptions) {
		o.cfg = &cfg
	}
}

// WithRegistry uses an already built registry. It takes precedence over
// WithConfig.
func WithRegistry(r *Registry) Option {
	return func(o *converterOptions) {
		o.registry = r
	}
}

// WithCreator overrides the PDF Creator metadata.
func WithCreator(creator string) Option {
	return func(o *converterOptions) {
		o.creator = creator
	}
}

// NewConverter creates a Converter. Registry construction errors
// (ErrTemplateConfigMissing, ErrTemplateParse, ErrInvalidFontDecl) are
// returned as is; they are startup failures.
func NewConverter(opts ...Option) (*Converter, error) {
	o := converterOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	reg := o.registry
	if reg == nil {
		cfg := DefaultConfig()
		if o.cfg != nil {
			cfg = *o.cfg
		}
		var err error
		reg, err = NewRegistry(cfg)
		if err != nil {
			return nil, err
		}
	}

	compositor, err := NewCompositor(reg.DateFormat(), reg.PresentLabel())
	if err != nil {
		return nil, err
	}
	renderer := NewRenderer()
	if o.creator != "" {
		renderer.creator = o.creator
	}

	return &Converter{
		registry:   reg,
		resolver:   NewFontResolver(reg.FontBasePath(), reg.CustomFontsEnabled(), o.logger),
		compositor: compositor,
		renderer:   renderer,
		logger:     o.logger,
	}, nil
}

// Registry returns the template registry in use.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// ResolveFonts resolves the fonts of the named template without rendering.
func (c *Converter) ResolveFonts(templateName string) FontSet {
	desc := c.registry.Lookup(templateName)
	return c.resolver.Resolve(desc.ID, desc.Fonts)
}

// Render renders r with the named template. Unknown or malformed template
// names use TemplateDefault. Every failure other than context cancellation
// is a *RenderError matching ErrRendering; r is never modified.
func (c *Converter) Render(ctx context.Context, r *Resume, templateName string) (result *Result, err error) {
	stage := StageValidating
	id := c.registry.Normalize(templateName)

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &RenderError{Stage: stage, Template: id, Err: fmt.Errorf("internal error: %v", rec)}
		}
		if err != nil {
			c.logger.Error("render failed",
				zap.String("template", id),
				zap.String("stage", string(stage)),
				zap.Error(err))
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &RenderError{Stage: stage, Template: id, Err: ErrNilResume}
	}
	if err := r.CheckOwnership(); err != nil {
		return nil, &RenderError{Stage: stage, Template: id, Err: err}
	}
	if requested := strings.ToLower(strings.TrimSpace(templateName)); requested != id {
		c.logger.Debug("template name normalized",
			zap.String("requested", templateName),
			zap.String("template", id))
	}
	desc := c.registry.Lookup(id)

	stage = StageResolving
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fonts := c.resolver.Resolve(id, desc.Fonts)

	stage = StageComposing
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	markup, err := c.compositor.Compose(desc, r)
	if err != nil {
		return nil, &RenderError{Stage: stage, Template: id, Err: err}
	}

	stage = StageLayingOut
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := c.renderer.Render(markup, fonts)
	if err != nil {
		var re *RenderError
		if errors.As(err, &re) {
			stage = re.Stage
		}
		return nil, err
	}

	c.logger.Debug("resume rendered",
		zap.String("template", id),
		zap.Int("pages", doc.Pages),
		zap.Int("bytes", len(doc.PDF)),
		zap.Int("embeddedFonts", fonts.Embedded()))

	return &Result{
		PDF:         doc.PDF,
		Filename:    SuggestedFilename(r.Title),
		ContentType: ContentTypePDF,
		Template:    id,
		Markup:      markup,
		Pages:       doc.Pages,
		Fonts:       fonts,
	}, nil
}

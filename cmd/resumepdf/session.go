package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	resumepdf "github.com/alnah/go-resumepdf"
	"github.com/alnah/go-resumepdf/internal/config"
	"github.com/alnah/go-resumepdf/internal/hints"
)

// session bundles what every rendering command builds once per run.
type session struct {
	conv   *resumepdf.Converter
	logger *zap.Logger
	env    *envConfig
	stderr io.Writer
	quiet  bool
}

// newSession loads configuration (flags > env > file > defaults) and builds
// the converter. Registry errors are startup failures.
func newSession(common commonFlags, fonts fontFlags, env *Environment) (*session, error) {
	ec := loadEnvConfig(env.getenv)
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr, env.environ())
	}

	cfg, err := buildConfig(common.config, fonts, ec)
	if err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, logConfigFor(common.quiet, common.verbose, ec.LogFormat))
	conv, err := resumepdf.NewConverter(
		resumepdf.WithConfig(cfg),
		resumepdf.WithLogger(logger),
		resumepdf.WithCreator("resumepdf "+Version),
	)
	if err != nil {
		return nil, err
	}

	return &session{conv: conv, logger: logger, env: ec, stderr: env.Stderr, quiet: common.quiet}, nil
}

// buildConfig resolves the effective configuration.
func buildConfig(configFlag string, fonts fontFlags, ec *envConfig) (resumepdf.Config, error) {
	cfg := resumepdf.DefaultConfig()

	path := configFlag
	if path == "" {
		path = ec.ConfigPath
	}
	if path != "" {
		loaded, err := resumepdf.LoadConfig(path)
		if err != nil {
			return resumepdf.Config{}, err
		}
		cfg = loaded
	}

	applyEnvConfig(ec, &cfg)
	applyFontFlags(fonts, &cfg)
	return cfg, nil
}

// template returns the requested template, falling back to RESUMEPDF_TEMPLATE.
func (s *session) template(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return s.env.Template
}

// warnUnknownTemplate tells the user when name will render with the default.
func (s *session) warnUnknownTemplate(name string) {
	if s.quiet || name == "" {
		return
	}
	reg := s.conv.Registry()
	requested := strings.ToLower(strings.TrimSpace(name))
	if id := reg.Normalize(name); id != requested {
		fmt.Fprintf(s.stderr, "warning: unknown template %q, using %q%s\n", name, id, hints.ForTemplateNotFound(reg.Templates()))
	}
}

// warnFontFallback reports a render that used builtin fonts although the
// template declares custom ones.
func (s *session) warnFontFallback(result *resumepdf.Result) {
	reg := s.conv.Registry()
	if s.quiet || !reg.CustomFontsEnabled() || !result.Fonts.Fallback || len(result.Fonts.Entries) == 0 {
		return
	}
	fmt.Fprintf(s.stderr, "warning: template %s rendered with builtin fonts%s\n",
		result.Template, hints.ForFontsUnavailable(reg.FontBasePath()))
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// printError writes err with an actionable hint when one applies.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

func hintFor(err error) string {
	var notFound *config.NotFoundError
	var renderErr *resumepdf.RenderError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrInvalidResume):
		return hints.ForResumeInvalid()
	case errors.As(err, &renderErr):
		return hints.ForRenderFailure(renderErr.Template)
	default:
		return ""
	}
}

func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Environment) environ() []string {
	if e.Environ == nil {
		return nil
	}
	return e.Environ()
}

// Package resumepdf renders resumes to PDF through data-driven templates.
//
// # Quick Start
//
// Create a converter once and render as many resumes as needed:
//
//	conv, err := resumepdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err) // template configuration is incomplete
//	}
//
//	r := resumepdf.NewResume("Jane Doe")
//	r.AddSkill(resumepdf.Skill{Name: "Go", ProficiencyLevel: 5})
//
//	result, err := conv.Render(ctx, r, "modern")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.PDF, 0o644)
//
// # Render Pipeline
//
// A render request goes through these stages:
//
//  1. Validating: the resume is present and every child record belongs to it
//  2. Resolving: each font declaration of the template is embedded from
//     its asset or degraded to a builtin core font
//  3. Composing: the resume is written into the template's Markdown markup
//  4. Laying out: the markup is drawn onto A4 pages (go-pdf/fpdf)
//  5. Serializing: the PDF bytes are produced
//
// Any failure stops the request with a single *RenderError matching
// ErrRendering. Font problems never fail a render; they are logged and
// reported in Result.Fonts.
//
// # Templates
//
// Five templates are built in: default, modern, professional, creative and
// minimal. A requested name is normalized: empty, unknown or path-like names
// select the default template.
//
// Every built-in template must have an entry in Config.Templates, otherwise
// NewRegistry (and NewConverter) fail with ErrTemplateConfigMissing.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	cfg, err := resumepdf.LoadConfig("resume")
//	conv, err := resumepdf.NewConverter(
//	    resumepdf.WithConfig(cfg),
//	    resumepdf.WithLogger(logger),
//	)
//
// Set Config.EnableCustomFonts to false to render with builtin fonts only,
// and Config.TemplateDir to override template markup:
//
//	templates/
//	├── default.md.tmpl
//	└── modern.md.tmpl
//
// # Batch Rendering
//
// Converter is safe for concurrent use. RenderBatch renders several resumes
// with a bounded number of workers:
//
//	results := conv.RenderBatch(ctx, jobs, resumepdf.ResolvePoolSize(0))
package resumepdf

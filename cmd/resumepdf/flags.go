package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	resumepdf "github.com/alnah/go-resumepdf"
)

// ErrUsage reports malformed command lines.
var ErrUsage = errors.New("invalid usage")

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(args, " "))
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// fontFlags override where templates and fonts come from.
type fontFlags struct {
	fontPath      string
	noCustomFonts bool
	templateDir   string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	fonts    fontFlags
	template string
	output   string
	markup   bool
}

// batchFlags holds all flags for the batch command.
type batchFlags struct {
	common    commonFlags
	fonts     fontFlags
	template  string
	outputDir string
	workers   int
	markup    bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	fonts  fontFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addFontFlags adds font and template source flags to a FlagSet.
func addFontFlags(fs *flag.FlagSet, f *fontFlags) {
	fs.StringVar(&f.fontPath, "font-path", "", "directory holding the template font files")
	fs.BoolVar(&f.noCustomFonts, "no-custom-fonts", false, "use builtin PDF fonts only")
	fs.StringVar(&f.templateDir, "template-dir", "", "directory of <id>.md.tmpl overrides")
}

// applyFontFlags applies explicitly set font flags over cfg.
func applyFontFlags(f fontFlags, cfg *resumepdf.Config) {
	if f.fontPath != "" {
		cfg.FontBasePath = f.fontPath
	}
	if f.noCustomFonts {
		cfg.EnableCustomFonts = false
	}
	if f.templateDir != "" {
		cfg.TemplateDir = f.templateDir
	}
}

// newFlagSet creates a ContinueOnError FlagSet writing errors and usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.template, "template", "t", "", "template id (default, modern, professional, minimal, creative)")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file or directory")
	fs.BoolVar(&f.markup, "markup", false, "also write the composed markup next to the PDF")
	addCommonFlags(fs, &f.common)
	addFontFlags(fs, &f.fonts)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBatchFlags parses batch command flags and returns positional args.
func parseBatchFlags(args []string, w io.Writer) (*batchFlags, []string, error) {
	f := &batchFlags{}
	fs := newFlagSet("batch", w, printBatchUsage)

	fs.StringVarP(&f.template, "template", "t", "", "template id for every resume")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory (default: next to each input)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.markup, "markup", false, "also write the composed markup next to each PDF")
	addCommonFlags(fs, &f.common)
	addFontFlags(fs, &f.fonts)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTemplatesFlags parses templates command flags.
func parseTemplatesFlags(args []string, w io.Writer) (*commonFlags, *fontFlags, error) {
	common, fonts := &commonFlags{}, &fontFlags{}
	fs := newFlagSet("templates", w, printTemplatesUsage)
	addCommonFlags(fs, common)
	addFontFlags(fs, fonts)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, errUnexpectedArgs(fs.Args())
	}
	return common, fonts, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addFontFlags(fs, &f.fonts)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errUnexpectedArgs(fs.Args())
	}
	return f, nil
}

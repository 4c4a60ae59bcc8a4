package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	resumepdf "github.com/alnah/go-resumepdf"
	"github.com/alnah/go-resumepdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrWriteOutput reports a PDF or markup file that could not be written.
var ErrWriteOutput = errors.New("failed to write output file")

// runRenderCmd executes the render command and returns an exit code.
func runRenderCmd(args []string, env *Environment) int {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if len(positional) != 1 {
		printError(env.Stderr, fmt.Errorf("%w: render takes exactly one resume file", ErrUsage))
		printRenderUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runRender(ctx, f, positional[0], env); err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRender renders one resume file.
func runRender(ctx context.Context, f *renderFlags, input string, env *Environment) error {
	start := env.Now()

	sess, err := newSession(f.common, f.fonts, env)
	if err != nil {
		return err
	}
	defer sess.close()

	r, err := loadResume(input)
	if err != nil {
		return err
	}

	tmpl := sess.template(f.template)
	sess.warnUnknownTemplate(tmpl)

	result, err := sess.conv.Render(ctx, r, tmpl)
	if err != nil {
		return err
	}

	out := renderOutputPath(f.output, input, result.Filename)
	if err := writeResult(out, result, f.markup); err != nil {
		return err
	}
	sess.warnFontFallback(result)

	switch {
	case f.common.quiet:
	case f.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (template %s, %d pages, %v)\n",
			input, out, result.Template, result.Pages, env.Now().Sub(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}

// renderOutputPath determines where a single render is written. Without
// --output the suggested filename is placed next to the input; an existing
// directory or a path ending in a separator receives the suggested filename.
func renderOutputPath(output, input, suggested string) string {
	if output == "" {
		return filepath.Join(filepath.Dir(input), suggested)
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) || fileutil.DirExists(output) {
		return filepath.Join(output, suggested)
	}
	return output
}

// writeResult writes the PDF, and the composed markup when asked.
func writeResult(pdfPath string, result *resumepdf.Result, withMarkup bool) error {
	if err := writeOutput(pdfPath, result.PDF); err != nil {
		return err
	}
	if withMarkup {
		return writeOutput(markupOutputPath(pdfPath), []byte(result.Markup))
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	// #nosec G306 -- rendered resumes are meant to be readable
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

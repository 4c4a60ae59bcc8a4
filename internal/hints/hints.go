// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-resumepdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFontsUnavailable returns hints for templates whose fonts all fell back
// to builtin faces.
func ForFontsUnavailable(basePath string) string {
	var hints []string

	if !fileutil.DirExists(basePath) {
		hints = append(hints, "font directory "+basePath+" does not exist")
	}
	if os.Getenv("RESUMEPDF_FONT_PATH") == "" {
		hints = append(hints, "set RESUMEPDF_FONT_PATH or --font-path to the directory holding the .ttf files")
	}
	if IsInContainer() {
		hints = append(hints, "mount the font directory into the container")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-resumepdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-resumepdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound lists the available templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForRenderFailure suggests retrying with the default template.
func ForRenderFailure(template string) string {
	if template == "" || template == "default" {
		return format("run 'resumepdf doctor' to check fonts and templates")
	}
	return format("retry with --template default")
}

// ForResumeInvalid points at the resume file format.
func ForResumeInvalid() string {
	return format("resume files are YAML or JSON; title is required and dates use YYYY-MM or YYYY-MM-DD")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

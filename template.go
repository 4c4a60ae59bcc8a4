package resumepdf

import (
	"slices"
	"strings"

	"github.com/alnah/go-resumepdf/internal/fileutil"
)

// Built-in template identifiers.
const (
	TemplateDefault      = "default"
	TemplateModern       = "modern"
	TemplateProfessional = "professional"
	TemplateCreative     = "creative"
	TemplateMinimal      = "minimal"
)

// templateNames is the fixed allow-list. Every entry must be configured
// before a Registry can be built.
var templateNames = []string{
	TemplateDefault,
	TemplateModern,
	TemplateProfessional,
	TemplateCreative,
	TemplateMinimal,
}

// TemplateNames returns the built-in template identifiers.
func TemplateNames() []string {
	return slices.Clone(templateNames)
}

// NormalizeTemplateName maps a caller-supplied template name to a built-in
// identifier. Empty names, names containing a path separator and unknown
// names all become TemplateDefault: an invalid name never fails a render.
func NormalizeTemplateName(name string) string {
	return normalizeAgainst(name, func(id string) bool {
		return slices.Contains(templateNames, id)
	})
}

func normalizeAgainst(name string, known func(string) bool) string {
	if fileutil.IsFilePath(name) {
		return TemplateDefault
	}
	id := strings.ToLower(strings.TrimSpace(name))
	if id == "" || !known(id) {
		return TemplateDefault
	}
	return id
}

package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-resumepdf/internal/yamlutil"
)

// ErrMalformedMarkup indicates the front matter or body cannot be laid out.
var ErrMalformedMarkup = errors.New("malformed markup")

// Default style values, in points unless noted.
const (
	DefaultFontSize       = 10.0
	DefaultLineHeight     = 1.35
	DefaultMargin         = 18.0 // mm
	DefaultSectionSpacing = 3.0  // mm
	DefaultTextColor      = "#222222"
	DefaultMutedColor     = "#666666"
	DefaultTitleAlign     = "left"
)

// defaultHeadingSizes are the point sizes of heading levels 1 to 3.
var defaultHeadingSizes = [3]float64{20, 13, 11}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Style is the front matter of a composed document.
type Style struct {
	Template         string    `yaml:"template" validate:"max=50"`
	Title            string    `yaml:"title" validate:"max=200"`
	BodyFont         string    `yaml:"bodyFont" validate:"max=100"`
	HeadingFont      string    `yaml:"headingFont" validate:"max=100"`
	MonoFont         string    `yaml:"monoFont" validate:"max=100"`
	FontSize         float64   `yaml:"fontSize" validate:"omitempty,gte=6,lte=24"`
	HeadingSizes     []float64 `yaml:"headingSizes" validate:"max=3,dive,gte=6,lte=48"`
	LineHeight       float64   `yaml:"lineHeight" validate:"omitempty,gte=1,lte=3"`
	TextColor        string    `yaml:"textColor" validate:"omitempty,hexcolor"`
	AccentColor      string    `yaml:"accentColor" validate:"omitempty,hexcolor"`
	MutedColor       string    `yaml:"mutedColor" validate:"omitempty,hexcolor"`
	Margin           float64   `yaml:"margin" validate:"omitempty,gte=5,lte=50"`
	SectionSpacing   float64   `yaml:"sectionSpacing" validate:"gte=0,lte=20"`
	TitleAlign       string    `yaml:"titleAlign" validate:"omitempty,oneof=left center right"`
	HeadingRule      bool      `yaml:"headingRule"`
	HeadingUppercase bool      `yaml:"headingUppercase"`
	PageNumbers      bool      `yaml:"pageNumbers"`
}

// ParseStyle decodes front matter. Unknown keys and out-of-range values
// are ErrMalformedMarkup. Empty meta yields the defaults.
func ParseStyle(meta string) (Style, error) {
	var s Style
	if strings.TrimSpace(meta) != "" {
		if err := yamlutil.UnmarshalStrict([]byte(meta), &s); err != nil {
			return Style{}, fmt.Errorf("%w: front matter: %v", ErrMalformedMarkup, err)
		}
	}
	if err := validate.Struct(s); err != nil {
		return Style{}, fmt.Errorf("%w: front matter: %v", ErrMalformedMarkup, err)
	}
	s.applyDefaults()
	return s, nil
}

func (s *Style) applyDefaults() {
	if s.FontSize == 0 {
		s.FontSize = DefaultFontSize
	}
	if s.LineHeight == 0 {
		s.LineHeight = DefaultLineHeight
	}
	if s.Margin == 0 {
		s.Margin = DefaultMargin
	}
	if s.SectionSpacing == 0 {
		s.SectionSpacing = DefaultSectionSpacing
	}
	if s.TextColor == "" {
		s.TextColor = DefaultTextColor
	}
	if s.AccentColor == "" {
		s.AccentColor = s.TextColor
	}
	if s.MutedColor == "" {
		s.MutedColor = DefaultMutedColor
	}
	if s.TitleAlign == "" {
		s.TitleAlign = DefaultTitleAlign
	}
	sizes := defaultHeadingSizes
	copy(sizes[:], s.HeadingSizes)
	s.HeadingSizes = sizes[:]
}

// HeadingSize returns the point size of a heading level; levels past 3
// use the level 3 size.
func (s Style) HeadingSize(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > len(s.HeadingSizes) {
		level = len(s.HeadingSizes)
	}
	return s.HeadingSizes[level-1]
}

// align maps TitleAlign to the fpdf alignment code.
func (s Style) align() string {
	switch s.TitleAlign {
	case "center":
		return "C"
	case "right":
		return "R"
	}
	return "L"
}

// rgb is a colour in 0-255 components.
type rgb struct{ r, g, b int }

// parseHexColor accepts #rgb and #rrggbb.
func parseHexColor(s string) (rgb, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return rgb{}, fmt.Errorf("%w: colour %q", ErrMalformedMarkup, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("%w: colour %q", ErrMalformedMarkup, s)
	}
	return rgb{r: int(v >> 16 & 0xff), g: int(v >> 8 & 0xff), b: int(v & 0xff)}, nil
}

package resumepdf

import (
	"fmt"
	"strconv"
	"strings"
)

// FontWeight is a CSS-style numeric weight between 100 and 900.
type FontWeight int

// Named weights.
const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// ParseFontWeight accepts "normal", "bold" or a multiple of 100 from 100 to
// 900. An empty string means normal.
func ParseFontWeight(s string) (FontWeight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "regular":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 100 || n > 900 || n%100 != 0 {
		return 0, fmt.Errorf("%w: weight %q", ErrInvalidFontDecl, s)
	}
	return FontWeight(n), nil
}

// IsBold reports whether the weight renders as a bold face.
func (w FontWeight) IsBold() bool {
	return w >= 600
}

func (w FontWeight) String() string {
	switch w {
	case WeightNormal:
		return "normal"
	case WeightBold:
		return "bold"
	}
	return strconv.Itoa(int(w))
}

// FontStyle is normal or italic.
type FontStyle string

// Font styles.
const (
	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
)

// ParseFontStyle accepts "normal" (or empty) and "italic".
func ParseFontStyle(s string) (FontStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return StyleNormal, nil
	case "italic", "oblique":
		return StyleItalic, nil
	}
	return "", fmt.Errorf("%w: style %q", ErrInvalidFontDecl, s)
}

// FontDeclaration requests a font asset for a template.
type FontDeclaration struct {
	Family    string     `validate:"required,max=100"`
	AssetPath string     `validate:"required,max=255"`
	Weight    FontWeight `validate:"gte=100,lte=900"`
	Style     FontStyle  `validate:"oneof=normal italic"`
	Primary   bool
}

func (d FontDeclaration) key() faceKey {
	return faceKey{family: strings.ToLower(d.Family), weight: d.Weight, style: d.Style}
}

// faceKey identifies a face for last-registration-wins replacement.
type faceKey struct {
	family string
	weight FontWeight
	style  FontStyle
}

// ResolutionOutcome tells how a declaration was satisfied.
type ResolutionOutcome string

// Resolution outcomes.
const (
	OutcomeEmbedded        ResolutionOutcome = "embedded"
	OutcomeBuiltinFallback ResolutionOutcome = "builtinFallback"
)

// PDF core fonts used when no asset can be embedded.
const (
	BuiltinHelvetica            = "Helvetica"
	BuiltinHelveticaBold        = "Helvetica-Bold"
	BuiltinHelveticaOblique     = "Helvetica-Oblique"
	BuiltinHelveticaBoldOblique = "Helvetica-BoldOblique"
	BuiltinCourier              = "Courier"
)

// ResolvedFont is a face usable by the renderer: either embedded TrueType
// data or a PDF core font name.
type ResolvedFont struct {
	Family    string
	Weight    FontWeight
	Style     FontStyle
	AssetPath string // resolved file path; empty for builtin faces
	Data      []byte // TrueType data when embedded
	Builtin   string // core font name when falling back
	Outcome   ResolutionOutcome
}

// FontResolution is the explicit result of one declaration: Err is nil when
// the asset was embedded and carries the fallback reason otherwise.
type FontResolution struct {
	Declaration FontDeclaration
	Font        ResolvedFont
	Err         error
}

// FontSet is the resolution report for one render.
type FontSet struct {
	Template string
	// Fonts holds the faces handed to the renderer, in registration order.
	Fonts []ResolvedFont
	// Entries holds one result per declaration, in declaration order.
	Entries []FontResolution
	// Fallback is set when no declaration could be embedded and the builtin
	// triplet was added.
	Fallback bool
	primary  string
}

// Primary returns the family used for body text.
func (s FontSet) Primary() string {
	if s.primary != "" {
		return s.primary
	}
	return BuiltinHelvetica
}

// Embedded returns the number of faces embedded from assets.
func (s FontSet) Embedded() int {
	n := 0
	for _, f := range s.Fonts {
		if f.Outcome == OutcomeEmbedded {
			n++
		}
	}
	return n
}

// primaryDeclaration returns the declaration marked primary, or the first
// one when none is marked.
func primaryDeclaration(decls []FontDeclaration) (FontDeclaration, bool) {
	for _, d := range decls {
		if d.Primary {
			return d, true
		}
	}
	if len(decls) > 0 {
		return decls[0], true
	}
	return FontDeclaration{}, false
}

// builtinTriplet is the fixed set used when no declaration can be embedded.
func builtinTriplet() []ResolvedFont {
	return []ResolvedFont{
		{Family: BuiltinHelvetica, Weight: WeightNormal, Style: StyleNormal, Builtin: BuiltinHelvetica, Outcome: OutcomeBuiltinFallback},
		{Family: BuiltinHelvetica, Weight: WeightBold, Style: StyleNormal, Builtin: BuiltinHelveticaBold, Outcome: OutcomeBuiltinFallback},
		{Family: BuiltinCourier, Weight: WeightNormal, Style: StyleNormal, Builtin: BuiltinCourier, Outcome: OutcomeBuiltinFallback},
	}
}

// builtinFor picks the Helvetica variant matching a declaration.
func builtinFor(w FontWeight, s FontStyle) string {
	switch {
	case w.IsBold() && s == StyleItalic:
		return BuiltinHelveticaBoldOblique
	case w.IsBold():
		return BuiltinHelveticaBold
	case s == StyleItalic:
		return BuiltinHelveticaOblique
	default:
		return BuiltinHelvetica
	}
}

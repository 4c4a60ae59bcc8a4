package resumepdf

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"

	"github.com/alnah/go-resumepdf/internal/assets"
)

// maxFontSize bounds a single font asset read.
const maxFontSize = 32 << 20

// FontResolver turns font declarations into embeddable faces, degrading
// each declaration independently to a core font when its asset is unusable.
// It holds no mutable state and is safe for concurrent use.
type FontResolver struct {
	basePath string
	enabled  bool
	logger   *zap.Logger
	readFile func(path string) ([]byte, error)
}

// NewFontResolver creates a resolver reading assets below basePath. When
// enableCustomFonts is false no asset is read and every declaration resolves
// to a builtin font.
func NewFontResolver(basePath string, enableCustomFonts bool, logger *zap.Logger) *FontResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FontResolver{
		basePath: basePath,
		enabled:  enableCustomFonts,
		logger:   logger,
		readFile: readFontFile,
	}
}

// Resolve resolves decls in order. It never fails: unusable assets are
// recorded in the returned entries and logged.
func (r *FontResolver) Resolve(templateID string, decls []FontDeclaration) FontSet {
	set := FontSet{Template: templateID}
	if p, ok := primaryDeclaration(decls); ok {
		set.primary = p.Family
	}

	index := make(map[faceKey]int, len(decls))
	embedded := 0
	for _, d := range decls {
		res := r.resolveOne(d)
		set.Entries = append(set.Entries, res)
		r.logResolution(templateID, res)

		if res.Err == nil {
			embedded++
		}
		k := d.key()
		i, seen := index[k]
		switch {
		case !seen:
			index[k] = len(set.Fonts)
			set.Fonts = append(set.Fonts, res.Font)
		case res.Font.Outcome == OutcomeEmbedded:
			// Last successful registration wins.
			set.Fonts[i] = res.Font
		}
	}

	if embedded == 0 {
		set.Fallback = true
		set.Fonts = append(set.Fonts, builtinTriplet()...)
		if len(decls) > 0 && r.enabled {
			r.logger.Warn("no custom font could be embedded, using builtin fonts",
				zap.String("template", templateID),
				zap.Int("declared", len(decls)))
		}
	}
	return set
}

func (r *FontResolver) resolveOne(d FontDeclaration) FontResolution {
	fallback := ResolvedFont{
		Family:  d.Family,
		Weight:  d.Weight,
		Style:   d.Style,
		Builtin: builtinFor(d.Weight, d.Style),
		Outcome: OutcomeBuiltinFallback,
	}
	if !r.enabled {
		return FontResolution{Declaration: d, Font: fallback, Err: ErrCustomFontsDisabled}
	}

	path, err := assets.ContainedPath(r.basePath, d.AssetPath)
	if err != nil {
		return FontResolution{Declaration: d, Font: fallback, Err: fmt.Errorf("%w: %v", ErrFontAssetUnavailable, err)}
	}
	data, err := r.readFile(path)
	if err != nil {
		return FontResolution{Declaration: d, Font: fallback, Err: fmt.Errorf("%w: %v", ErrFontAssetUnavailable, err)}
	}
	if err := checkTrueType(data); err != nil {
		return FontResolution{Declaration: d, Font: fallback, Err: fmt.Errorf("%w: %s: %v", ErrFontAssetUnavailable, path, err)}
	}

	return FontResolution{
		Declaration: d,
		Font: ResolvedFont{
			Family:    d.Family,
			Weight:    d.Weight,
			Style:     d.Style,
			AssetPath: path,
			Data:      data,
			Outcome:   OutcomeEmbedded,
		},
	}
}

func (r *FontResolver) logResolution(templateID string, res FontResolution) {
	switch {
	case res.Err == nil:
		r.logger.Debug("font embedded",
			zap.String("template", templateID),
			zap.String("family", res.Declaration.Family),
			zap.String("path", res.Font.AssetPath))
	case errors.Is(res.Err, ErrCustomFontsDisabled):
		r.logger.Debug("custom fonts disabled, using builtin font",
			zap.String("template", templateID),
			zap.String("family", res.Declaration.Family),
			zap.String("builtin", res.Font.Builtin))
	default:
		r.logger.Warn("font asset unavailable, using builtin font",
			zap.String("template", templateID),
			zap.String("family", res.Declaration.Family),
			zap.String("asset", res.Declaration.AssetPath),
			zap.String("builtin", res.Font.Builtin),
			zap.Error(res.Err))
	}
}

func readFontFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxFontSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxFontSize)
	}
	return os.ReadFile(path) // #nosec G304 -- path contained in font base path
}

// checkTrueType accepts only glyf-based TrueType fonts, the format the PDF
// writer can subset and embed.
func checkTrueType(data []byte) error {
	if len(data) < 12 {
		return errors.New("file too short to be a font")
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true":
	case "OTTO":
		return errors.New("CFF-flavoured OpenType cannot be embedded")
	case "ttcf":
		return errors.New("font collections cannot be embedded")
	default:
		return fmt.Errorf("unrecognised font signature %q", data[:4])
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return err
	}
	if f.NumGlyphs() == 0 {
		return errors.New("font has no glyphs")
	}
	return nil
}

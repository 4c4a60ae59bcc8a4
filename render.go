package resumepdf

import (
	"errors"

	"github.com/alnah/go-resumepdf/internal/pipeline"
)

// DefaultCreator is written to the PDF Creator field.
const DefaultCreator = "go-resumepdf"

// Document is a rendered PDF.
type Document struct {
	PDF   []byte
	Pages int
	Title string
}

// Renderer lays composed markup out onto A4 pages. Output depends only on
// the markup and the font set: rendering the same input twice yields the
// same bytes.
type Renderer struct {
	creator string
}

// NewRenderer returns a renderer stamping DefaultCreator.
func NewRenderer() *Renderer {
	return &Renderer{creator: DefaultCreator}
}

// Render produces the PDF. Any failure is a *RenderError; there is no
// retry and no partial output.
func (r *Renderer) Render(markup string, fonts FontSet) (*Document, error) {
	doc, err := pipeline.Layout(markup, facesFor(fonts), pipeline.Options{
		BodyFamily: fonts.Primary(),
		Creator:    r.creator,
	})
	if err != nil {
		stage := StageLayingOut
		if errors.Is(err, pipeline.ErrSerialize) {
			stage = StageSerializing
		}
		return nil, &RenderError{Stage: stage, Template: fonts.Template, Err: err}
	}
	return &Document{PDF: doc.PDF, Pages: doc.Pages, Title: doc.Style.Title}, nil
}

func facesFor(set FontSet) []pipeline.Face {
	faces := make([]pipeline.Face, 0, len(set.Fonts))
	for _, f := range set.Fonts {
		faces = append(faces, pipeline.Face{
			Family: f.Family,
			Weight: int(f.Weight),
			Italic: f.Style == StyleItalic,
			Data:   f.Data,
			Core:   f.Builtin,
		})
	}
	return faces
}

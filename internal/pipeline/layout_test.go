package pipeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const sampleMarkup = `---
template: default
title: "Jane Doe"
headingRule: true
pageNumbers: true
---
# Jane Doe

## Experience

### Staff Engineer, Acme

*Jan 2020 - Present*

Built the **billing** platform with ` + "`Go`" + `.\
Second line after a hard break.

- [Ledger](https://example.com/ledger): double entry
- Plain item with escaped \*stars\*

1. first
2. second

> quoted

---

Contact: https://example.com
`

var coreFaces = []Face{
	{Family: "Helvetica", Weight: 400, Core: "Helvetica"},
	{Family: "Helvetica", Weight: 700, Core: "Helvetica-Bold"},
	{Family: "Courier", Weight: 400, Core: "Courier"},
}

func TestLayout_CoreFonts(t *testing.T) {
	t.Parallel()

	doc, err := Layout(sampleMarkup, coreFaces, Options{Creator: "test"})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !bytes.HasPrefix(doc.PDF, []byte("%PDF-")) {
		t.Errorf("output does not start with %%PDF-: %q", doc.PDF[:min(8, len(doc.PDF))])
	}
	if doc.Pages != 1 {
		t.Errorf("Pages = %d, want 1", doc.Pages)
	}
	if doc.Style.Title != "Jane Doe" {
		t.Errorf("Style.Title = %q", doc.Style.Title)
	}
	if !bytes.Contains(doc.PDF, []byte("/Helvetica")) {
		t.Error("expected Helvetica font resource")
	}
}

func TestLayout_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Layout(sampleMarkup, coreFaces, Options{})
	if err != nil {
		t.Fatalf("first Layout() error = %v", err)
	}
	second, err := Layout(sampleMarkup, coreFaces, Options{})
	if err != nil {
		t.Fatalf("second Layout() error = %v", err)
	}
	if !bytes.Equal(first.PDF, second.PDF) {
		t.Error("two layouts of the same markup differ")
	}
}

func TestLayout_EmbeddedFaces(t *testing.T) {
	t.Parallel()

	faces := []Face{
		{Family: "Go", Weight: 400, Data: goregular.TTF},
		{Family: "Go", Weight: 700, Data: gobold.TTF},
	}
	doc, err := Layout("---\nbodyFont: Go\n---\n# Résumé\n\nÉcole **polytechnique**\n", faces, Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !bytes.Contains(doc.PDF, []byte("/FontFile2")) {
		t.Error("expected an embedded TrueType font file")
	}
}

func TestLayout_BodyFamilyOption(t *testing.T) {
	t.Parallel()

	faces := []Face{{Family: "Go", Weight: 400, Data: goregular.TTF}}
	doc, err := Layout("plain text\n", faces, Options{BodyFamily: "Go"})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !bytes.Contains(doc.PDF, []byte("/FontFile2")) {
		t.Error("expected BodyFamily to select the embedded face")
	}
}

func TestLayout_OverflowAddsPages(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("# Long\n\n")
	for range 200 {
		b.WriteString("A paragraph long enough to take a full line of the page and then some more words.\n\n")
	}

	doc, err := Layout(b.String(), coreFaces, Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if doc.Pages < 2 {
		t.Errorf("Pages = %d, want overflow onto at least 2 pages", doc.Pages)
	}
}

func TestLayout_UnknownFamilyFallsBackToCore(t *testing.T) {
	t.Parallel()

	doc, err := Layout("---\nbodyFont: Nowhere\nmonoFont: Nowhere Mono\n---\ntext `code`\n", nil, Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !bytes.Contains(doc.PDF, []byte("/Courier")) {
		t.Error("expected Courier for code spans")
	}
}

func TestLayout_MalformedMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
	}{
		{"unterminated front matter", "---\ntitle: x\n# Body"},
		{"unknown style key", "---\nfancy: true\n---\nbody"},
		{"invalid colour", "---\naccentColor: blue\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Layout(tt.markup, coreFaces, Options{})
			if !errors.Is(err, ErrMalformedMarkup) {
				t.Errorf("Layout() error = %v, want ErrMalformedMarkup", err)
			}
		})
	}
}

func TestPick(t *testing.T) {
	t.Parallel()

	l := &layouter{faces: []registered{
		{Face: Face{Family: "Lato", Weight: 400, Data: []byte{1}}, key: "x-lato-400-n"},
		{Face: Face{Family: "Lato", Weight: 700, Core: "Helvetica-Bold"}, key: "Helvetica", style: "B"},
		{Face: Face{Family: "Inter", Weight: 500, Data: []byte{1}}, key: "x-inter-500-n"},
	}}

	tests := []struct {
		name   string
		family string
		bold   bool
		italic bool
		mono   bool
		want   selection
	}{
		{"regular embedded", "Lato", false, false, false, selection{key: "x-lato-400-n", utf8: true}},
		{"bold falls to core face", "lato", true, false, false, selection{key: "Helvetica", style: "B"}},
		{"italic core adds style", "Lato", true, true, false, selection{key: "Helvetica", style: "BI"}},
		{"closest weight", "Inter", true, false, false, selection{key: "x-inter-500-n", utf8: true}},
		{"unknown family", "Nope", false, true, false, selection{key: "Helvetica", style: "I"}},
		{"unknown mono family", "Nope", false, false, true, selection{key: "Courier"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := l.pick(tt.family, tt.bold, tt.italic, tt.mono)
			if got != tt.want {
				t.Errorf("pick(%q) = %+v, want %+v", tt.family, got, tt.want)
			}
		})
	}
}

func TestCoreFont(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, family, style string
	}{
		{"Helvetica", "Helvetica", ""},
		{"Helvetica-Bold", "Helvetica", "B"},
		{"Helvetica-Oblique", "Helvetica", "I"},
		{"Helvetica-BoldOblique", "Helvetica", "BI"},
		{"Courier", "Courier", ""},
		{"", "Helvetica", ""},
	}

	for _, tt := range tests {
		family, style := coreFont(tt.name)
		if family != tt.family || style != tt.style {
			t.Errorf("coreFont(%q) = %q, %q, want %q, %q", tt.name, family, style, tt.family, tt.style)
		}
	}
}

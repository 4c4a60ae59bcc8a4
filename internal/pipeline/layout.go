package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-resumepdf/internal/yamlutil"
)

// Sentinel errors for PDF writer failures.
var (
	ErrLayout    = errors.New("layout failed")
	ErrSerialize = errors.New("pdf serialization failed")
)

// Epoch pins the PDF creation and modification dates so identical input
// yields identical bytes.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Page geometry: A4 portrait, millimetres.
const (
	pageSize     = "A4"
	pageUnit     = "mm"
	listIndent   = 5.0
	quoteIndent  = 6.0
	footerSizePt = 8.0
	ptToMM       = 25.4 / 72
)

// Core font families understood by the PDF writer without embedding.
const (
	coreSans = "Helvetica"
	coreMono = "Courier"
)

// Face is one font face available to the layout. Data holds TrueType bytes;
// when it is nil, Core names the PDF core font to use instead
// (e.g. "Helvetica-Bold").
type Face struct {
	Family string
	Weight int
	Italic bool
	Data   []byte
	Core   string
}

// Options tune a layout beyond what the front matter declares.
type Options struct {
	// BodyFamily is used when the front matter names no body font.
	BodyFamily string
	// Creator is written to the PDF metadata.
	Creator string
}

// Document is a laid out PDF.
type Document struct {
	PDF   []byte
	Pages int
	Style Style
}

// Layout parses composed markup (YAML front matter plus Markdown) and writes
// it onto A4 pages using faces. Content overflowing a page continues on the
// next one. Front matter problems are ErrMalformedMarkup, PDF writer
// failures (panics included) are ErrLayout and a failed final write is
// ErrSerialize.
func Layout(markup string, faces []Face, opts Options) (doc *Document, err error) {
	meta, body, err := yamlutil.SplitFrontMatter(markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	style, err := ParseStyle(meta)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrLayout, r)
		}
	}()

	l, err := newLayouter(style, faces, opts)
	if err != nil {
		return nil, err
	}

	src := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	root := md.Parser().Parse(text.NewReader(src))
	l.src = src

	l.pdf.AddPage()
	l.applyFont()
	if err := ast.Walk(root, l.walk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	if l.pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrLayout, l.pdf.Error())
	}

	pages := l.pdf.PageNo()
	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return &Document{PDF: buf.Bytes(), Pages: pages, Style: style}, nil
}

// registered is a face as known to the PDF writer.
type registered struct {
	Face
	key   string // PDF writer family key
	style string // base style for core faces ("", "B", "I", "BI")
}

// selection is the font to set for a run of text.
type selection struct {
	key   string
	style string
	utf8  bool
}

type listState struct {
	ordered bool
	next    int
}

type layouter struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	style Style
	src   []byte
	faces []registered

	body, heading, mono string
	ink, accent, muted  rgb
	baseLeft            float64

	size    float64
	bold    int
	italic  int
	code    int
	quoted  int
	struck  int
	inHead  bool
	link    string
	lists   []listState
	current selection
}

func newLayouter(style Style, faces []Face, opts Options) (*layouter, error) {
	l := &layouter{style: style, size: style.FontSize}

	var err error
	if l.ink, err = parseHexColor(style.TextColor); err != nil {
		return nil, err
	}
	if l.accent, err = parseHexColor(style.AccentColor); err != nil {
		return nil, err
	}
	if l.muted, err = parseHexColor(style.MutedColor); err != nil {
		return nil, err
	}

	l.body = firstNonEmpty(style.BodyFont, opts.BodyFamily, coreSans)
	l.heading = firstNonEmpty(style.HeadingFont, l.body)
	l.mono = firstNonEmpty(style.MonoFont, coreMono)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        pageUnit,
		SizeStr:        pageSize,
	})
	pdf.SetCreationDate(Epoch)
	pdf.SetModificationDate(Epoch)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(style.Title, true)
	pdf.SetSubject(style.Template, true)
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.Margin)
	l.pdf = pdf
	l.tr = pdf.UnicodeTranslatorFromDescriptor("")
	l.baseLeft = style.Margin

	l.register(faces)
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrLayout, pdf.Error())
	}

	if style.PageNumbers {
		pdf.AliasNbPages("")
		pdf.SetFooterFunc(l.footer)
	}
	return l, nil
}

// register adds every embedded face under its own key. Faces sharing a
// family, weight and slant are registered once.
func (l *layouter) register(faces []Face) {
	seen := make(map[string]bool, len(faces))
	for _, f := range faces {
		if len(f.Data) == 0 {
			family, style := coreFont(f.Core)
			l.faces = append(l.faces, registered{Face: f, key: family, style: style})
			continue
		}
		key := faceKey(f)
		if !seen[key] {
			l.pdf.AddUTF8FontFromBytes(key, "", f.Data)
			seen[key] = true
		}
		l.faces = append(l.faces, registered{Face: f, key: key})
	}
}

func faceKey(f Face) string {
	slant := "n"
	if f.Italic {
		slant = "i"
	}
	family := strings.ToLower(strings.Join(strings.Fields(f.Family), ""))
	return fmt.Sprintf("x-%s-%d-%s", family, f.Weight, slant)
}

// coreFont splits a core font name such as "Helvetica-BoldOblique" into
// the writer's family and style.
func coreFont(name string) (family, style string) {
	family, variant, _ := strings.Cut(name, "-")
	if family == "" {
		family = coreSans
	}
	switch variant {
	case "Bold":
		style = "B"
	case "Oblique", "Italic":
		style = "I"
	case "BoldOblique", "BoldItalic":
		style = "BI"
	}
	return family, style
}

// pick chooses the face of family closest to the requested weight and
// slant. Core faces take bold and italic from the request; embedded faces
// are used as they are. An unknown family falls back to a core font.
func (l *layouter) pick(family string, bold, italic, mono bool) selection {
	want := 400
	if bold {
		want = 700
	}

	var best *registered
	bestScore := math.MaxInt
	for i := range l.faces {
		f := &l.faces[i]
		if !strings.EqualFold(f.Family, family) {
			continue
		}
		score := abs(f.Weight - want)
		if f.Italic != italic {
			score += 1000
		}
		if score < bestScore {
			best, bestScore = f, score
		}
	}

	if best == nil {
		core := coreSans
		if mono {
			core = coreMono
		}
		return selection{key: core, style: mergeStyle("", bold, italic)}
	}
	if len(best.Data) == 0 {
		return selection{key: best.key, style: mergeStyle(best.style, bold, italic)}
	}
	return selection{key: best.key, utf8: true}
}

func mergeStyle(base string, bold, italic bool) string {
	b := strings.Contains(base, "B") || bold
	i := strings.Contains(base, "I") || italic
	var s string
	if b {
		s += "B"
	}
	if i {
		s += "I"
	}
	return s
}

func (l *layouter) applyFont() {
	family := l.body
	switch {
	case l.code > 0:
		family = l.mono
	case l.inHead:
		family = l.heading
	}
	sel := l.pick(family, l.bold > 0, l.italic > 0, l.code > 0)
	style := sel.style
	if l.link != "" {
		style += "U"
	}
	l.pdf.SetFont(sel.key, style, l.size)
	l.current = sel

	c := l.ink
	switch {
	case l.link != "" || l.inHead:
		c = l.accent
	case l.quoted > 0 || l.struck > 0:
		c = l.muted
	}
	l.pdf.SetTextColor(c.r, c.g, c.b)
}

// encode converts s for the current font: core fonts use cp1252.
func (l *layouter) encode(s string) string {
	if l.current.utf8 {
		return s
	}
	return l.tr(s)
}

func (l *layouter) lineHeight() float64 {
	return l.size * l.style.LineHeight * ptToMM
}

func (l *layouter) write(s string) {
	if s == "" {
		return
	}
	if l.link != "" {
		l.pdf.WriteLinkString(l.lineHeight(), l.encode(s), l.link)
		return
	}
	l.pdf.Write(l.lineHeight(), l.encode(s))
}

// ensureLineStart ends the current line if text was written on it.
func (l *layouter) ensureLineStart() {
	left, _, _, _ := l.pdf.GetMargins()
	if l.pdf.GetX() > left+0.01 {
		l.pdf.Ln(l.lineHeight())
	}
}

func (l *layouter) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Heading:
		if entering {
			l.writeHeading(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.Paragraph:
		if !entering {
			l.ensureLineStart()
			if _, inItem := n.Parent().(*ast.ListItem); !inItem {
				l.pdf.Ln(l.lineHeight() * 0.4)
			}
		}

	case *ast.TextBlock:
		if !entering {
			l.ensureLineStart()
		}

	case *ast.List:
		if entering {
			l.ensureLineStart()
			l.lists = append(l.lists, listState{ordered: n.IsOrdered(), next: n.Start})
		} else {
			l.lists = l.lists[:len(l.lists)-1]
			if len(l.lists) == 0 {
				l.pdf.Ln(l.lineHeight() * 0.4)
			}
		}

	case *ast.ListItem:
		if entering {
			l.startItem()
		} else {
			l.ensureLineStart()
			l.setLeft(l.indentFor(len(l.lists) - 1))
		}

	case *ast.Emphasis:
		d := delta(entering)
		if n.Level >= 2 {
			l.bold += d
		} else {
			l.italic += d
		}
		l.applyFont()

	case *ast.CodeSpan:
		l.code += delta(entering)
		l.applyFont()

	case *extast.Strikethrough:
		l.struck += delta(entering)
		l.applyFont()

	case *ast.Link:
		if entering {
			l.link = string(n.Destination)
		} else {
			l.link = ""
		}
		l.applyFont()

	case *ast.AutoLink:
		if entering {
			l.writeAutoLink(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			l.writeText(n)
		}

	case *ast.String:
		if entering {
			l.write(string(n.Value))
		}

	case *ast.ThematicBreak:
		if entering {
			l.ensureLineStart()
			l.rule(l.pdf.GetY() + 1)
			l.pdf.Ln(3)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			l.writeCodeBlock(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		l.ensureLineStart()
		if entering {
			l.quoted++
			l.setLeft(l.currentLeft() + quoteIndent)
		} else {
			l.quoted--
			l.setLeft(l.currentLeft() - quoteIndent)
		}
		l.applyFont()

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func delta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

func (l *layouter) writeText(n *ast.Text) {
	v := n.Segment.Value(l.src)
	if !n.IsRaw() {
		v = util.UnescapePunctuations(v)
	}
	if n.HardLineBreak() {
		v = bytes.TrimSuffix(v, []byte{'\\'})
	}
	l.write(string(v))
	switch {
	case n.HardLineBreak():
		l.pdf.Ln(l.lineHeight())
	case n.SoftLineBreak():
		l.write(" ")
	}
}

func (l *layouter) writeAutoLink(n *ast.AutoLink) {
	url := string(n.URL(l.src))
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
		url = "mailto:" + url
	}
	if l.link != "" {
		// Already inside a link: keep the outer target.
		l.write(string(n.Label(l.src)))
		return
	}
	l.link = url
	l.applyFont()
	l.write(string(n.Label(l.src)))
	l.link = ""
	l.applyFont()
}

func (l *layouter) writeHeading(n *ast.Heading) {
	txt := plainText(n, l.src)
	if l.style.HeadingUppercase {
		txt = strings.ToUpper(txt)
	}

	l.ensureLineStart()
	_, top, _, _ := l.pdf.GetMargins()
	if l.pdf.GetY() > top+0.01 {
		l.pdf.Ln(l.style.SectionSpacing)
	}

	prevSize := l.size
	l.size = l.style.HeadingSize(n.Level)
	l.inHead = true
	l.bold++
	l.applyFont()

	// Keep the heading with at least two following body lines.
	_, pageH := l.pdf.GetPageSize()
	need := l.lineHeight() + 2*prevSize*l.style.LineHeight*ptToMM
	if l.pdf.GetY()+need > pageH-l.style.Margin {
		l.pdf.AddPage()
	}

	align := "L"
	if n.Level == 1 {
		align = l.style.align()
	}
	l.pdf.MultiCell(0, l.lineHeight(), l.encode(txt), "", align, false)
	if l.style.HeadingRule && n.Level == 2 {
		l.rule(l.pdf.GetY() + 0.5)
		l.pdf.Ln(2)
	} else {
		l.pdf.Ln(1)
	}

	l.bold--
	l.inHead = false
	l.size = prevSize
	l.applyFont()
}

func (l *layouter) writeCodeBlock(n ast.Node) {
	l.ensureLineStart()
	l.code++
	l.applyFont()
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		l.write(strings.TrimRight(string(seg.Value(l.src)), "\r\n"))
		l.pdf.Ln(l.lineHeight())
	}
	l.code--
	l.applyFont()
	l.pdf.Ln(l.lineHeight() * 0.4)
}

func (l *layouter) startItem() {
	l.ensureLineStart()
	depth := len(l.lists)
	st := &l.lists[depth-1]

	marker := "•"
	if st.ordered {
		marker = strconv.Itoa(st.next) + "."
		st.next++
	}

	left := l.indentFor(depth)
	saved := l.bold
	l.bold = 0
	l.applyFont()
	l.pdf.SetX(left - listIndent + 1)
	l.write(marker)
	l.bold = saved
	l.applyFont()

	l.setLeft(left)
	l.pdf.SetX(left)
}

// indentFor returns the left margin of list content at depth.
func (l *layouter) indentFor(depth int) float64 {
	q := float64(l.quoted) * quoteIndent
	return l.baseLeft + q + float64(depth)*listIndent
}

func (l *layouter) currentLeft() float64 {
	left, _, _, _ := l.pdf.GetMargins()
	return left
}

func (l *layouter) setLeft(x float64) {
	l.pdf.SetLeftMargin(x)
	if l.pdf.GetX() < x {
		l.pdf.SetX(x)
	}
}

// rule draws a horizontal line across the text width at y.
func (l *layouter) rule(y float64) {
	pageW, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	l.pdf.SetDrawColor(l.muted.r, l.muted.g, l.muted.b)
	l.pdf.SetLineWidth(0.2)
	l.pdf.Line(left, y, pageW-right, y)
}

func (l *layouter) footer() {
	l.pdf.SetY(-l.style.Margin * 0.6)
	sel := l.pick(l.body, false, false, false)
	l.pdf.SetFont(sel.key, sel.style, footerSizePt)
	l.pdf.SetTextColor(l.muted.r, l.muted.g, l.muted.b)
	l.pdf.CellFormat(0, 4, fmt.Sprintf("%d / {nb}", l.pdf.PageNo()), "", 0, "C", false, 0, "")
}

// plainText concatenates the text content of n's descendants.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			v := c.Segment.Value(src)
			if !c.IsRaw() {
				v = util.UnescapePunctuations(v)
			}
			b.Write(v)
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

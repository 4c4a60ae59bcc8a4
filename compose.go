package resumepdf

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-resumepdf/internal/dateutil"
	"github.com/alnah/go-resumepdf/internal/fileutil"
	"github.com/alnah/go-resumepdf/internal/pipeline"
	"github.com/alnah/go-resumepdf/internal/yamlutil"
)

// Compositor turns a Resume into template markup. Compose has no side
// effects and never mutates its input.
type Compositor struct {
	layout  string
	present string
}

// NewCompositor returns a compositor formatting period dates with format
// (a dateutil token format or preset; empty means the default) and ending
// ongoing periods with presentLabel.
func NewCompositor(format, presentLabel string) (*Compositor, error) {
	layout, err := dateutil.Layout(format)
	if err != nil {
		return nil, fmt.Errorf("%w: dateFormat: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(presentLabel) == "" {
		presentLabel = "Present"
	}
	return &Compositor{layout: layout, present: presentLabel}, nil
}

// Compose executes the descriptor's markup against r. Sections appear in
// their template order; entries within a section keep insertion order.
func (c *Compositor) Compose(d *TemplateDescriptor, r *Resume) (string, error) {
	if r == nil {
		return "", ErrNilResume
	}
	if d == nil || d.markup == nil {
		return "", fmt.Errorf("%w: template not loaded", ErrTemplateParse)
	}

	var buf bytes.Buffer
	if err := d.markup.Execute(&buf, c.view(d, r)); err != nil {
		return "", fmt.Errorf("executing template %q: %w", d.ID, err)
	}
	return normalizeMarkup(buf.String()), nil
}

// normalizeMarkup tidies the Markdown body, leaving front matter untouched.
func normalizeMarkup(s string) string {
	meta, body, err := yamlutil.SplitFrontMatter(s)
	if err != nil || meta == "" {
		return pipeline.Normalize(s)
	}
	return "---\n" + meta + "---\n" + pipeline.Normalize(body)
}

// markupView is the data a template executes against. Every string except
// Title is already escaped Markdown.
type markupView struct {
	Template       string
	Title          string // raw, for front matter via quote
	Heading        string
	Summary        string
	Fonts          fontsView
	Experiences    []experienceView
	Educations     []educationView
	Skills         []skillView
	Certifications []certificationView
	Languages      []languageView
	Hobbies        []hobbyView
}

type fontsView struct {
	Body    string
	Heading string
}

type experienceView struct {
	JobTitle    string
	Company     string
	Period      string
	Description string
	Projects    []projectView
}

type projectView struct {
	Name         string
	Description  string
	Technologies string
	Link         string
}

type educationView struct {
	Degree       string
	FieldOfStudy string
	Institution  string
	Period       string
	Description  string
}

type skillView struct {
	Name   string
	Level  int
	Rating string
}

type certificationView struct {
	Name         string
	Issuer       string
	Validity     string
	CredentialID string
	Link         string
}

type languageView struct {
	Name        string
	Proficiency string
}

type hobbyView struct {
	Name        string
	Description string
}

const maxTitleRunes = 200

func (c *Compositor) view(d *TemplateDescriptor, r *Resume) markupView {
	title := strings.TrimSpace(r.Title)
	if utf8.RuneCountInString(title) > maxTitleRunes {
		title = string([]rune(title)[:maxTitleRunes])
	}
	heading := escapeInline(title)
	if heading == "" {
		heading = "Resume"
	}

	v := markupView{
		Template: d.ID,
		Title:    title,
		Heading:  heading,
		Summary:  escapeBlock(r.Summary),
		Fonts:    fontsFor(d.Fonts),
	}

	for _, e := range r.Experiences {
		ev := experienceView{
			JobTitle:    escapeInline(e.JobTitle),
			Company:     escapeInline(e.CompanyName),
			Period:      escapeInline(c.experiencePeriod(e)),
			Description: escapeBlock(e.Description),
		}
		for _, p := range e.Projects {
			ev.Projects = append(ev.Projects, projectView{
				Name:         escapeInline(p.Name),
				Description:  escapeInline(p.Description),
				Technologies: escapeInline(p.Technologies),
				Link:         markdownLink(p.URL),
			})
		}
		v.Experiences = append(v.Experiences, ev)
	}
	for _, e := range r.Educations {
		v.Educations = append(v.Educations, educationView{
			Degree:       escapeInline(e.Degree),
			FieldOfStudy: escapeInline(e.FieldOfStudy),
			Institution:  escapeInline(e.Institution),
			Period:       escapeInline(c.educationPeriod(e)),
			Description:  escapeBlock(e.Description),
		})
	}
	for _, s := range r.Skills {
		v.Skills = append(v.Skills, skillView{
			Name:   escapeInline(s.Name),
			Level:  s.ProficiencyLevel,
			Rating: rating(s.ProficiencyLevel),
		})
	}
	for _, cert := range r.Certifications {
		v.Certifications = append(v.Certifications, certificationView{
			Name:         escapeInline(cert.Name),
			Issuer:       escapeInline(cert.IssuingOrganization),
			Validity:     escapeInline(c.validity(cert)),
			CredentialID: escapeInline(cert.CredentialID),
			Link:         markdownLink(cert.CredentialURL),
		})
	}
	for _, l := range r.Languages {
		v.Languages = append(v.Languages, languageView{
			Name:        escapeInline(l.Name),
			Proficiency: escapeInline(l.ProficiencyLevel),
		})
	}
	for _, h := range r.Hobbies {
		v.Hobbies = append(v.Hobbies, hobbyView{
			Name:        escapeInline(h.Name),
			Description: escapeInline(h.Description),
		})
	}
	return v
}

// fontsFor picks the body family (the primary declaration) and the heading
// family (the first bold declaration, else the primary).
func fontsFor(decls []FontDeclaration) fontsView {
	var fv fontsView
	if p, ok := primaryDeclaration(decls); ok {
		fv.Body = p.Family
	}
	fv.Heading = fv.Body
	for _, d := range decls {
		if d.Weight.IsBold() {
			fv.Heading = d.Family
			break
		}
	}
	return fv
}

// experiencePeriod renders the present branch when the position is ongoing.
func (c *Compositor) experiencePeriod(e Experience) string {
	return c.period(e.StartDate, e.EndDate, e.CurrentlyWorking)
}

// educationPeriod renders the present branch when the study is ongoing.
func (c *Compositor) educationPeriod(e Education) string {
	return c.period(e.StartDate, e.EndDate, e.CurrentlyStudying)
}

// period formats "start - end". An ongoing period, or a started one with no
// end date, ends with the present label.
func (c *Compositor) period(start, end Date, ongoing bool) string {
	from := start.Format(c.layout)
	var to string
	switch {
	case ongoing:
		to = c.present
	case end.IsZero():
		if from == "" {
			return ""
		}
		to = c.present
	default:
		to = end.Format(c.layout)
	}
	if from == "" {
		return to
	}
	return from + " - " + to
}

func (c *Compositor) validity(cert Certification) string {
	issued := cert.IssueDate.Format(c.layout)
	expires := cert.ExpirationDate.Format(c.layout)
	switch {
	case issued != "" && expires != "":
		return issued + " - " + expires
	case expires != "":
		return "until " + expires
	default:
		return issued
	}
}

func rating(level int) string {
	if level < 1 || level > 5 {
		return ""
	}
	return strconv.Itoa(level) + "/5"
}

// markdownLink renders an http(s) URL as a Markdown link labelled with its
// host and path. Other schemes render nothing.
func markdownLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if !fileutil.IsURL(raw) {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	label := strings.TrimPrefix(u.Host, "www.") + strings.TrimSuffix(u.EscapedPath(), "/")
	dest := linkDestReplacer.Replace(u.String())
	return "[" + escapeInline(label) + "](<" + dest + ">)"
}

var linkDestReplacer = strings.NewReplacer(" ", "%20", "<", "%3C", ">", "%3E", "\\", "%5C")

// Markdown escaping of user text.

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
	`~`, `\~`,
)

var (
	orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])(\s|$)`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// escapeInline collapses s to one line and escapes it so it renders as
// literal text.
func escapeInline(s string) string {
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	return escapeLine(s)
}

// escapeBlock escapes multi-line text. Lines are kept apart with hard line
// breaks; blank lines are dropped so user text stays within one paragraph.
func escapeBlock(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	var lines []string
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, escapeLine(line))
	}
	return strings.Join(lines, "\\\n")
}

func escapeLine(line string) string {
	if line == "" {
		return ""
	}
	line = inlineEscaper.Replace(line)
	switch line[0] {
	case '-', '+', '=':
		return `\` + line
	}
	return orderedMarker.ReplaceAllString(line, `$1\$2$3`)
}

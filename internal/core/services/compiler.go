package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// Neutral colors shared by every deck.
const (
	colorWhite = domain.Color("FFFFFF")
	colorText  = domain.Color("1F2937")
	colorMuted = domain.Color("64748B")
)

// Layout geometry, in inches on a 13.333 x 7.5 slide.
const (
	marginX       = 0.6
	headerHeight  = 1.1
	bodyTop       = 1.5
	footerHeight  = 0.7
	rowHeight     = 0.5
	maxTableRows  = 11
	bodyFontSize  = 20
	titleFontSize = 30
)

// palette holds the parsed colors for one slide build.
type palette struct {
	primary   domain.Color
	secondary domain.Color
	accent    domain.Color
}

// Compiler turns a SlideDeckSpec into a Presentation tree, one slide per spec.
type Compiler struct{}

// NewCompiler creates a slide deck compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile builds the presentation. Empty colors fall back to the defaults;
// a color that is present but not six hex digits fails the build.
func (c *Compiler) Compile(spec *domain.SlideDeckSpec) (*domain.Presentation, error) {
	if spec == nil || len(spec.Slides) == 0 {
		return nil, fmt.Errorf("%w: no slides", domain.ErrInvalidDeckSpec)
	}

	deck := *spec
	deck.ApplyColorDefaults()

	p := &domain.Presentation{
		Title:  deckTitle(&deck),
		Author: deck.Author,
		Width:  domain.SlideWidth,
		Height: domain.SlideHeight,
		Slides: make([]domain.Slide, 0, len(deck.Slides)),
	}

	for i, slide := range deck.Slides {
		if err := ValidateSlide(slide); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		pal, err := parsePalette(&deck)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		p.Slides = append(p.Slides, buildSlide(slide, pal, deck.Author))
	}
	return p, nil
}

func parsePalette(d *domain.SlideDeckSpec) (palette, error) {
	primary, err := domain.ParseColor(d.PrimaryColor)
	if err != nil {
		return palette{}, fmt.Errorf("primary color: %w", err)
	}
	secondary, err := domain.ParseColor(d.SecondaryColor)
	if err != nil {
		return palette{}, fmt.Errorf("secondary color: %w", err)
	}
	accent, err := domain.ParseColor(d.AccentColor)
	if err != nil {
		return palette{}, fmt.Errorf("accent color: %w", err)
	}
	return palette{primary: primary, secondary: secondary, accent: accent}, nil
}

func deckTitle(d *domain.SlideDeckSpec) string {
	if d.Title != "" {
		return d.Title
	}
	for _, s := range d.Slides {
		if t, ok := s.(domain.TitleSlide); ok {
			return t.Title
		}
	}
	return d.Slides[0].Heading()
}

func buildSlide(spec domain.SlideSpec, pal palette, author string) domain.Slide {
	switch s := spec.(type) {
	case domain.TitleSlide:
		return titleSlide(s, pal, author)
	case domain.ConceptSlide:
		return conceptSlide(s, pal)
	case domain.QuoteSlide:
		return quoteSlide(s, pal)
	case domain.TableSlide:
		return tableSlide(s, pal)
	case domain.ConclusionSlide:
		return conclusionSlide(s, pal)
	default:
		// Unreachable: SlideSpec is sealed and ValidateSlide ran first.
		return domain.Slide{Type: spec.Type()}
	}
}

func titleSlide(s domain.TitleSlide, pal palette, author string) domain.Slide {
	bg := pal.primary
	slide := domain.Slide{
		Type:       domain.SlideTypeTitle,
		Background: &bg,
		Shapes: []domain.Shape{
			textBox("Title", rect(0.75, 2.1, 11.83, 1.6), domain.AnchorBottom,
				para(domain.AlignCenter, false, run(s.Title, 44, true, false, colorWhite))),
			textBox("Subtitle", rect(0.75, 3.9, 11.83, 1.0), domain.AnchorTop,
				para(domain.AlignCenter, false, run(s.Subtitle, 22, false, false, pal.secondary))),
		},
	}

	footer := filledBox("Footer", rect(0, 7.5-footerHeight, 13.333, footerHeight), pal.accent, domain.AnchorMiddle)
	if author != "" {
		footer.Paragraphs = []domain.Paragraph{
			para(domain.AlignCenter, false, run(author, 14, false, false, colorWhite)),
		}
	}
	slide.Shapes = append(slide.Shapes, footer)
	return slide
}

func conceptSlide(s domain.ConceptSlide, pal palette) domain.Slide {
	return domain.Slide{
		Type: domain.SlideTypeConcept,
		Shapes: []domain.Shape{
			header(s.Title, pal.accent),
			{
				Kind:  domain.ShapeRect,
				Name:  "Accent Rule",
				Frame: rect(marginX, bodyTop, 0.08, 5.4),
				Fill:  colorPtr(pal.accent),
			},
			textBox("Body", rect(marginX+0.3, bodyTop, 11.8, 5.4), domain.AnchorTop,
				bullets(s.Points, bodyFontSize, colorText)...),
		},
		Notes: strings.TrimSpace(s.SpeakerNote),
	}
}

func quoteSlide(s domain.QuoteSlide, pal palette) domain.Slide {
	quote := "“" + strings.Trim(strings.TrimSpace(s.Quote), "\"“”") + "”"
	return domain.Slide{
		Type: domain.SlideTypeQuote,
		Shapes: []domain.Shape{
			header(s.Title, pal.primary),
			textBox("Quote", rect(1.0, 1.7, 11.33, 3.0), domain.AnchorMiddle,
				para(domain.AlignCenter, false, run(quote, 28, false, true, pal.primary))),
			{
				Kind:  domain.ShapeRect,
				Name:  "Divider",
				Frame: rect(5.17, 4.95, 3.0, 0.04),
				Fill:  colorPtr(pal.accent),
			},
			textBox("Attribution", rect(1.0, 5.15, 11.33, 0.7), domain.AnchorTop,
				para(domain.AlignCenter, false, run(s.Attribution, 18, false, false, colorMuted))),
		},
	}
}

func tableSlide(s domain.TableSlide, pal palette) domain.Slide {
	cols := len(s.Headers)
	width := domain.SlideWidth - 2*domain.Inches(marginX)
	widths := make([]int64, cols)
	for i := range widths {
		widths[i] = width / int64(cols)
	}
	widths[cols-1] += width - widths[0]*int64(cols)

	rows := make([][]domain.Cell, 0, len(s.Rows)+1)
	rows = append(rows, cells(s.Headers, cols))
	for _, r := range s.Rows {
		rows = append(rows, cells(r, cols))
	}

	fontSize := 16
	if len(rows) > 7 {
		fontSize = 12
	}
	visible := len(rows)
	if visible > maxTableRows {
		visible = maxTableRows
	}

	return domain.Slide{
		Type: domain.SlideTypeTable,
		Shapes: []domain.Shape{
			header(s.Title, pal.primary),
			{
				Kind:  domain.ShapeTable,
				Name:  "Table",
				Frame: rect(marginX, bodyTop, 13.333-2*marginX, rowHeight*float64(visible)),
				Table: &domain.Table{
					ColumnWidths: widths,
					Rows:         rows,
					HeaderFill:   pal.primary,
					HeaderColor:  colorWhite,
					BodyColor:    colorText,
					BandFill:     pal.secondary,
					FontSize:     fontSize,
				},
			},
		},
	}
}

func conclusionSlide(s domain.ConclusionSlide, pal palette) domain.Slide {
	return domain.Slide{
		Type: domain.SlideTypeConclusion,
		Shapes: []domain.Shape{
			header(s.Title, pal.primary),
			textBox("Body", rect(marginX+0.3, bodyTop, 11.8, 4.3), domain.AnchorTop,
				bullets(s.Points, bodyFontSize, colorText)...),
			withText(filledBox("Closing", rect(0, 6.1, 13.333, 1.4), pal.accent, domain.AnchorMiddle),
				para(domain.AlignCenter, false, run(s.Closing, 22, true, false, colorWhite))),
		},
	}
}

func header(title string, fill domain.Color) domain.Shape {
	return withText(filledBox("Header", rect(0, 0, 13.333, headerHeight), fill, domain.AnchorMiddle),
		para(domain.AlignLeft, false, run(title, titleFontSize, true, false, colorWhite)))
}

func rect(x, y, w, h float64) domain.Rect {
	r := domain.Rect{X: domain.Inches(x), Y: domain.Inches(y), W: domain.Inches(w), H: domain.Inches(h)}
	if r.X+r.W > domain.SlideWidth {
		r.W = domain.SlideWidth - r.X
	}
	return r
}

func textBox(name string, frame domain.Rect, anchor domain.Anchor, paras ...domain.Paragraph) domain.Shape {
	return domain.Shape{
		Kind:       domain.ShapeText,
		Name:       name,
		Frame:      frame,
		Anchor:     anchor,
		Paragraphs: paras,
	}
}

func filledBox(name string, frame domain.Rect, fill domain.Color, anchor domain.Anchor) domain.Shape {
	s := textBox(name, frame, anchor)
	s.Fill = colorPtr(fill)
	return s
}

func withText(s domain.Shape, paras ...domain.Paragraph) domain.Shape {
	s.Paragraphs = append(s.Paragraphs, paras...)
	return s
}

func para(align domain.Align, bullet bool, runs ...domain.Run) domain.Paragraph {
	return domain.Paragraph{Runs: runs, Align: align, Bullet: bullet}
}

func run(text string, size int, bold, italic bool, color domain.Color) domain.Run {
	return domain.Run{Text: text, Size: size, Bold: bold, Italic: italic, Color: color}
}

func bullets(points []string, size int, color domain.Color) []domain.Paragraph {
	out := make([]domain.Paragraph, 0, len(points))
	for _, p := range points {
		out = append(out, para(domain.AlignLeft, true, run(strings.TrimSpace(p), size, false, false, color)))
	}
	return out
}

// cells pads or keeps a row at exactly n cells.
func cells(values []string, n int) []domain.Cell {
	out := make([]domain.Cell, n)
	for i := 0; i < n && i < len(values); i++ {
		out[i] = domain.Cell{Text: strings.TrimSpace(values[i])}
	}
	return out
}

func colorPtr(c domain.Color) *domain.Color {
	return &c
}

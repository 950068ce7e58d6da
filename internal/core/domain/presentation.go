package domain

// EMU (English Metric Units) conversions used by the presentation tree.
const (
	EMUPerInch  int64 = 914400
	EMUPerPoint int64 = 12700

	// SlideWidth and SlideHeight describe a 16:9 slide.
	SlideWidth  int64 = 12192000
	SlideHeight int64 = 6858000
)

// Inches converts inches to EMU.
func Inches(v float64) int64 {
	return int64(v * float64(EMUPerInch))
}

// ShapeKind identifies a presentation shape.
type ShapeKind int

// Shape kinds.
const (
	// ShapeRect is a filled rectangle with no text (bars, rules, dividers).
	ShapeRect ShapeKind = iota

	// ShapeText is a text box, optionally filled.
	ShapeText

	// ShapeTable is a table grid.
	ShapeTable
)

// Align is paragraph alignment.
type Align string

// Paragraph alignments.
const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// Anchor is vertical text anchoring inside a shape.
type Anchor string

// Text anchors.
const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// Rect is a shape frame in EMU.
type Rect struct {
	X, Y, W, H int64
}

// Run is a span of uniformly formatted text.
type Run struct {
	Text string

	// Size is the font size in points.
	Size   int
	Bold   bool
	Italic bool
	Color  Color
}

// Paragraph is a line of runs.
type Paragraph struct {
	Runs   []Run
	Align  Align
	Bullet bool
}

// Cell is one table cell.
type Cell struct {
	Text string
}

// Table is a grid whose first row is the header row.
type Table struct {
	ColumnWidths []int64
	Rows         [][]Cell
	HeaderFill   Color
	HeaderColor  Color
	BodyColor    Color
	BandFill     Color
	FontSize     int
}

// DataRows returns the number of rows after the header.
func (t *Table) DataRows() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows) - 1
}

// Shape is one drawable element of a slide.
type Shape struct {
	Kind       ShapeKind
	Name       string
	Frame      Rect
	Fill       *Color
	Paragraphs []Paragraph
	Anchor     Anchor
	Table      *Table
}

// Slide is one page of the presentation tree.
type Slide struct {
	// Type records which deck variant produced the slide.
	Type SlideType

	// Background is the solid background color, or nil for the master default.
	Background *Color

	// Shapes are drawn in order.
	Shapes []Shape

	// Notes is attached as a speaker note and not rendered on the slide.
	Notes string
}

// Presentation is the in-memory document tree handed to a DeckWriter.
type Presentation struct {
	Title  string
	Author string
	Width  int64
	Height int64
	Slides []Slide
}

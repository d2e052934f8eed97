package layout

// Geometry describes the page canvas in device-independent units.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Padding      float64 // on every side of the writing area
	FooterHeight float64 // reserved under the body for the page number
	TitleHeight  float64 // reserved on the first page only
	BodyInset    float64 // extra padding around the body text block
	FontSize     float64
	LineHeight   float64 // multiple of FontSize
}

// DefaultGeometry is the 816x1190 canvas every page is drawn on.
var DefaultGeometry = Geometry{
	PageWidth:    816,
	PageHeight:   1190,
	Padding:      64,
	FooterHeight: 50,
	TitleHeight:  200,
	BodyInset:    8,
	FontSize:     30,
	LineHeight:   1.4,
}

// ContentWidth is the width body text wraps at.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Padding - 2*g.BodyInset
}

// LineAdvance is the vertical distance between two body lines.
func (g Geometry) LineAdvance() float64 {
	return g.FontSize * g.LineHeight
}

// UsableHeight is the limit a measured body block (text plus padding) must
// stay within. The first page gives up TitleHeight to the heading.
func (g Geometry) UsableHeight(first bool) float64 {
	h := g.PageHeight - 2*g.Padding - g.FooterHeight
	if first {
		h -= g.TitleHeight
	}
	return h
}

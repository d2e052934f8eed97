package render

import (
	"image"
	"image/color"
	"math"

	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// canvas maps page units onto a bitmap scale times larger.
type canvas struct {
	dst   *image.RGBA
	scale float64
	fonts *FontSet
}

func newCanvas(g layout.Geometry, scale float64, fonts *FontSet) *canvas {
	w := int(math.Round(g.PageWidth * scale))
	h := int(math.Round(g.PageHeight * scale))
	return &canvas{
		dst:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		fonts: fonts,
	}
}

func (c *canvas) px(v float64) int { return int(math.Round(v * c.scale)) }

func (c *canvas) rect(x, y, w, h float64) image.Rectangle {
	return image.Rect(c.px(x), c.px(y), c.px(x+w), c.px(y+h))
}

func (c *canvas) fill(col color.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// cover scales img over the whole canvas, cropping to keep its aspect ratio.
func (c *canvas) cover(img image.Image, op draw.Op) {
	draw.CatmullRom.Scale(c.dst, c.dst.Bounds(), img, coverSource(img.Bounds(), c.dst.Bounds()), op, nil)
}

// drawImage draws img into the page rectangle r.
func (c *canvas) drawImage(img image.Image, r image.Rectangle) {
	draw.ApproxBiLinear.Scale(c.dst, r, img, img.Bounds(), draw.Over, nil)
}

// faded draws img into r at the given opacity (0..255).
func (c *canvas) faded(img image.Image, r image.Rectangle, alpha uint8) {
	tmp := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.CatmullRom.Scale(tmp, tmp.Bounds(), img, img.Bounds(), draw.Src, nil)
	draw.DrawMask(c.dst, r, tmp, image.Point{}, image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
}

// coverSource picks the centered part of src with dst's aspect ratio.
func coverSource(src, dst image.Rectangle) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	dw, dh := float64(dst.Dx()), float64(dst.Dy())
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return src
	}
	if sw/sh > dw/dh {
		w := int(math.Round(sh * dw / dh))
		x := src.Min.X + (src.Dx()-w)/2
		return image.Rect(x, src.Min.Y, x+w, src.Max.Y)
	}
	h := int(math.Round(sw * dh / dw))
	y := src.Min.Y + (src.Dy()-h)/2
	return image.Rect(src.Min.X, y, src.Max.X, y+h)
}

// textStyle is a font at a size in page units.
type textStyle struct {
	family     models.Font
	bold       bool
	size       float64
	lineHeight float64 // multiple of size
	color      color.Color
}

func (t textStyle) line() float64 { return t.size * t.lineHeight }

// measure returns the width of s in page units.
func (c *canvas) measure(t textStyle, s string) (float64, error) {
	adv, err := c.fonts.Advance(t.family, t.bold, t.size)
	if err != nil {
		return 0, err
	}
	return adv(s), nil
}

// wrap breaks s at width page units using the scale 1 metrics of t.
func (c *canvas) wrap(t textStyle, s string, width float64) ([]string, error) {
	adv, err := c.fonts.Advance(t.family, t.bold, t.size)
	if err != nil {
		return nil, err
	}
	return layout.Wrap(s, width, adv), nil
}

// text draws a single line whose line box starts at top.
func (c *canvas) text(t textStyle, x, top float64, s string) error {
	face, err := c.fonts.Face(t.family, t.bold, t.size*c.scale)
	if err != nil {
		return err
	}
	m := face.Metrics()
	glyphTop := top + (t.line()-t.size)/2
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(t.color),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(c.px(x)), Y: fixed.I(c.px(glyphTop)) + m.Ascent},
	}
	d.DrawString(s)
	return nil
}

// lines draws each line below the previous one and returns the bottom edge.
func (c *canvas) lines(t textStyle, x, top float64, ls []string) (float64, error) {
	for _, l := range ls {
		if err := c.text(t, x, top, l); err != nil {
			return top, err
		}
		top += t.line()
	}
	return top, nil
}

// paragraph wraps s to width and draws it.
func (c *canvas) paragraph(t textStyle, x, top, width float64, s string) (float64, error) {
	ls, err := c.wrap(t, s, width)
	if err != nil {
		return top, err
	}
	return c.lines(t, x, top, ls)
}

// rightAligned draws s so that it ends at right.
func (c *canvas) rightAligned(t textStyle, right, top float64, s string) error {
	w, err := c.measure(t, s)
	if err != nil {
		return err
	}
	return c.text(t, right-w, top, s)
}

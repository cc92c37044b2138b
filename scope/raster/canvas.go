// Package raster strokes display traces into an RGBA pixel buffer.
//
// Paths are turned into polygons (one quad per segment plus a small cap at
// every joint) and filled with an anti-aliasing rasterizer. Glowing styles
// get a wide, translucent underlay before the main stroke.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"oscope/scope/display"
	"oscope/scope/source"

	"golang.org/x/image/vector"
)

// Buffer is the pixel storage a Canvas draws into.
//
// Resize must reallocate the image; the returned image of a later Image call
// reflects the new size.
type Buffer interface {
	Image() *image.RGBA
	Resize(w, h int)
}

// Canvas implements display.Canvas on top of a Buffer.
type Canvas struct {
	Background color.RGBA

	buf  Buffer
	z    *vector.Rasterizer
	fill image.Uniform
	path []display.Point
}

func New(buf Buffer) *Canvas {
	return &Canvas{
		Background: color.RGBA{A: 0xff},
		buf:        buf,
	}
}

func (c *Canvas) Size() (w, h int) {
	img := c.image()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Resize(w, h int) {
	if c.buf == nil || w < 0 || h < 0 {
		return
	}
	c.buf.Resize(w, h)
	c.Clear()
}

func (c *Canvas) Clear() {
	img := c.image()
	if img == nil {
		return
	}
	c.fill.C = c.Background
	draw.Draw(img, img.Bounds(), &c.fill, image.Point{}, draw.Src)
}

// Stroke draws path as one continuous line in style st.
func (c *Canvas) Stroke(path []display.Point, st source.Style) {
	img := c.image()
	if img == nil || len(path) == 0 || st.StrokeWidth <= 0 {
		return
	}
	path = c.clip(path, img.Bounds(), st.StrokeWidth)
	if len(path) == 0 {
		return
	}
	if st.Glow {
		glow := st.Color
		glow.A = 0x40
		c.stroke(img, path, st.StrokeWidth*3, premultiply(glow))
	}
	c.stroke(img, path, st.StrokeWidth, st.Color)
}

// clip drops points that are not finite and pulls far off-surface
// coordinates in to a margin around b, which keeps the rasterizer's
// float32 math bounded.
func (c *Canvas) clip(path []display.Point, b image.Rectangle, width float64) []display.Point {
	limit := 4*math.Max(float64(b.Dx()), float64(b.Dy())) + 3*width
	c.path = c.path[:0]
	for _, p := range path {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		c.path = append(c.path, display.Point{
			X: math.Max(-limit, math.Min(limit, p.X)),
			Y: math.Max(-limit, math.Min(limit, p.Y)),
		})
	}
	return c.path
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c *Canvas) image() *image.RGBA {
	if c.buf == nil {
		return nil
	}
	return c.buf.Image()
}

func (c *Canvas) stroke(img *image.RGBA, path []display.Point, width float64, col color.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	if c.z == nil {
		c.z = vector.NewRasterizer(w, h)
	} else {
		c.z.Reset(w, h)
	}

	half := width / 2
	for i := 1; i < len(path); i++ {
		addSegment(c.z, path[i-1], path[i], half)
	}
	for _, p := range path {
		addJoint(c.z, p, half)
	}

	c.fill.C = col
	c.z.Draw(img, b, &c.fill, image.Point{})
}

// addSegment adds the quad covering a→b with the given half width.
func addSegment(z *vector.Rasterizer, a, b display.Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	addPolygon(z, []display.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	})
}

// addJoint adds an octagon that rounds off the corner at p.
func addJoint(z *vector.Rasterizer, p display.Point, half float64) {
	pts := make([]display.Point, 8)
	for i := range pts {
		a := float64(i) * math.Pi / 4
		pts[i] = display.Point{X: p.X + half*math.Cos(a), Y: p.Y + half*math.Sin(a)}
	}
	addPolygon(z, pts)
}

// addPolygon adds a closed polygon with a fixed winding so overlapping pieces
// accumulate instead of cancelling.
func addPolygon(z *vector.Rasterizer, pts []display.Point) {
	if len(pts) < 3 {
		return
	}
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 0xff),
		G: uint8(uint32(c.G) * a / 0xff),
		B: uint8(uint32(c.B) * a / 0xff),
		A: c.A,
	}
}

package lef

import "math"

// Point is a location in microns.
type Point struct {
	X, Y float64
}

// Box is an axis aligned rectangle.
type Box struct {
	Min Point
	Max Point
}

// NewBox returns an empty box, ready to Expand.
func NewBox() Box {
	return Box{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether nothing has been added.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Expand grows the box to include p.
func (b *Box) Expand(p Point) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
}

// ExpandBox grows the box to include other.
func (b *Box) ExpandBox(other Box) {
	if !other.IsEmpty() {
		b.Expand(other.Min)
		b.Expand(other.Max)
	}
}

// Width returns the x extent.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the y extent.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint.
func (b Box) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// repeat returns the offset of the last copy of an iterated shape.
func (s StepPattern) repeat() (dx, dy float64) {
	nx, ny := math.Max(s.NumX-1, 0), math.Max(s.NumY-1, 0)
	return nx * s.StepX, ny * s.StepY
}

func (b *Box) expandRect(xl, yl, xh, yh float64) {
	b.Expand(Point{X: math.Min(xl, xh), Y: math.Min(yl, yh)})
	b.Expand(Point{X: math.Max(xl, xh), Y: math.Max(yl, yh)})
}

func (b *Box) expandPoints(x, y []float64, halfWidth float64) {
	for i := range x {
		b.expandRect(x[i]-halfWidth, y[i]-halfWidth, x[i]+halfWidth, y[i]+halfWidth)
	}
}

func (b *Box) expandStepped(shape Box, step StepPattern) {
	if shape.IsEmpty() {
		return
	}
	dx, dy := step.repeat()
	b.ExpandBox(shape)
	b.expandRect(shape.Min.X+dx, shape.Min.Y+dy, shape.Max.X+dx, shape.Max.Y+dy)
}

// Bounds returns the box enclosing every shape of the list. Paths are
// widened by half the last WIDTH seen before them; via placements count
// as points; ITERATE shapes include their last stepped copy.
func (g *Geometries) Bounds() Box {
	box := NewBox()
	half := 0.0
	for _, it := range g.items.items {
		switch v := it.(type) {
		case LayerItem:
			half = 0
		case WidthItem:
			half = v.Width / 2
		case GeomRect:
			box.expandRect(v.XL, v.YL, v.XH, v.YH)
		case GeomRectIter:
			shape := NewBox()
			shape.expandRect(v.XL, v.YL, v.XH, v.YH)
			box.expandStepped(shape, v.Step)
		case GeomPath:
			box.expandPoints(v.X, v.Y, half)
		case GeomPathIter:
			shape := NewBox()
			shape.expandPoints(v.X, v.Y, half)
			box.expandStepped(shape, v.Step)
		case GeomPolygon:
			box.expandPoints(v.X, v.Y, 0)
		case GeomPolygonIter:
			shape := NewBox()
			shape.expandPoints(v.X, v.Y, 0)
			box.expandStepped(shape, v.Step)
		case GeomVia:
			box.Expand(Point{X: v.X, Y: v.Y})
		case GeomViaIter:
			shape := NewBox()
			shape.Expand(Point{X: v.X, Y: v.Y})
			box.expandStepped(shape, v.Step)
		}
	}
	return box
}

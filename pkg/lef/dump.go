package lef

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// dumper writes records as indented s-expressions. The first write error
// sticks and is returned by err.
type dumper struct {
	w     io.Writer
	depth int
	e     error
}

func newDumper(w io.Writer) *dumper { return &dumper{w: w} }

func (d *dumper) err() error { return d.e }

func (d *dumper) printf(format string, args ...any) {
	if d.e != nil {
		return
	}
	_, d.e = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) line(head string, args []any) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", d.depth))
	b.WriteByte('(')
	b.WriteString(head)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(atom(a))
	}
	return b.String()
}

// open starts a list whose children follow on their own lines.
func (d *dumper) open(head string, args ...any) {
	d.printf("%s\n", d.line(head, args))
	d.depth++
}

func (d *dumper) close() {
	d.depth--
	d.printf("%s)\n", strings.Repeat("  ", d.depth))
}

// leaf writes a one line list.
func (d *dumper) leaf(head string, args ...any) {
	d.printf("%s)\n", d.line(head, args))
}

func (d *dumper) flag(head string, on bool) {
	if on {
		d.leaf(head)
	}
}

func (d *dumper) str(head, v string) {
	if v != "" {
		d.leaf(head, v)
	}
}

func optLeaf[T any](d *dumper, head string, o Opt[T]) {
	if v, ok := o.Get(); ok {
		d.leaf(head, v)
	}
}

func atom(v any) string {
	switch x := v.(type) {
	case string:
		return symbol(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return symbol(x.String())
	default:
		return symbol(fmt.Sprint(x))
	}
}

// symbol quotes s unless it reads back as a single bare atom.
func symbol(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\r\n()\";'") {
		return strconv.Quote(s)
	}
	return s
}

func (d *dumper) geometries(head string, g *Geometries) {
	if g == nil {
		return
	}
	d.open(head)
	for _, it := range g.items.items {
		switch v := it.(type) {
		case LayerItem:
			d.leaf("layer", v.Name)
		case LayerExceptPgNetItem:
			d.leaf("exceptpgnet")
		case LayerMinSpacingItem:
			d.leaf("spacing", v.Spacing)
		case LayerRuleWidthItem:
			d.leaf("designrulewidth", v.Width)
		case LayerMaskItem:
			d.leaf("mask", v.Mask)
		case WidthItem:
			d.leaf("width", v.Width)
		case ClassItem:
			d.leaf("class", v.Name)
		case GeomRect:
			d.leaf("rect", v.ColorMask, v.XL, v.YL, v.XH, v.YH)
		case GeomRectIter:
			d.leaf("rect_iter", v.ColorMask, v.XL, v.YL, v.XH, v.YH, v.Step.NumX, v.Step.NumY, v.Step.StepX, v.Step.StepY)
		case GeomPath:
			d.leaf("path", pointArgs(v.ColorMask, v.X, v.Y)...)
		case GeomPathIter:
			d.leaf("path_iter", stepArgs(pointArgs(v.ColorMask, v.X, v.Y), v.Step)...)
		case GeomPolygon:
			d.leaf("polygon", pointArgs(v.ColorMask, v.X, v.Y)...)
		case GeomPolygonIter:
			d.leaf("polygon_iter", stepArgs(pointArgs(v.ColorMask, v.X, v.Y), v.Step)...)
		case GeomVia:
			d.leaf("via", v.Name, v.X, v.Y, v.TopMaskNum, v.CutMaskNum, v.BottomMaskNum)
		case GeomViaIter:
			d.leaf("via_iter", v.Name, v.X, v.Y, v.TopMaskNum, v.CutMaskNum, v.BottomMaskNum,
				v.Step.NumX, v.Step.NumY, v.Step.StepX, v.Step.StepY)
		}
	}
	d.close()
}

func pointArgs(mask int, x, y []float64) []any {
	args := make([]any, 0, 1+2*len(x))
	args = append(args, mask)
	for i := range x {
		args = append(args, x[i], y[i])
	}
	return args
}

func stepArgs(args []any, s StepPattern) []any {
	return append(args, s.NumX, s.NumY, s.StepX, s.StepY)
}

func (d *dumper) properties(p *Properties) {
	for _, prop := range p.seq.items {
		if n, ok := prop.Number.Get(); ok {
			d.leaf("property", prop.Name, n, prop.Type)
			continue
		}
		d.leaf("property", prop.Name, prop.Value, prop.Type)
	}
}

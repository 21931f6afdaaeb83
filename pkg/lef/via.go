package lef

import "io"

// ViaRect is a RECT of a via layer.
type ViaRect struct {
	Mask           int
	XL, YL, XH, YH float64
}

// ViaPolygon is a POLYGON of a via layer.
type ViaPolygon struct {
	Mask int
	X, Y []float64
}

// ViaLayer is one LAYER section of a fixed via.
type ViaLayer struct {
	Name     string
	Rects    []ViaRect
	Polygons []ViaPolygon
}

// AddRect appends a RECT.
func (vl *ViaLayer) AddRect(mask int, xl, yl, xh, yh float64) {
	vl.Rects = append(vl.Rects, ViaRect{Mask: mask, XL: xl, YL: yl, XH: xh, YH: yh})
}

// AddPolygon appends a POLYGON. The vertex slices are copied.
func (vl *ViaLayer) AddPolygon(mask int, x, y []float64) {
	vl.Polygons = append(vl.Polygons, ViaPolygon{Mask: mask, X: cloneFloats(x), Y: cloneFloats(y)})
}

// ViaRuleParams are the VIARULE parameters of a generated via.
type ViaRuleParams struct {
	RuleName   string
	CutSize    Point
	BotLayer   string
	CutLayer   string
	TopLayer   string
	CutSpacing Point
	BotEnc     Point
	TopEnc     Point
}

// RowCol is the ROWCOL numCutRows numCutCols of a generated via.
type RowCol struct {
	Rows, Cols int
}

// ViaOffset is the OFFSET of a generated via.
type ViaOffset struct {
	Bot, Top Point
}

// Via is a VIA definition.
type Via struct {
	names *NameCase

	name        string
	isDefault   bool
	isGenerated bool
	resistance  Opt[float64]
	topOfStack  bool
	foreign     Opt[Foreign]

	layers Seq[*ViaLayer]

	rule    Opt[ViaRuleParams]
	rowCol  Opt[RowCol]
	origin  Opt[Point]
	offset  Opt[ViaOffset]
	pattern string

	props Properties

	limit int
}

// ViaKind qualifies a via definition.
type ViaKind int

const (
	ViaPlain     ViaKind = iota
	ViaDefault           // VIA name DEFAULT
	ViaGenerated         // VIA name GENERATED
)

// NewVia returns an empty via using names for name conversion.
func NewVia(names *NameCase) *Via {
	v := &Via{names: names}
	v.Reset()
	return v
}

// Reset clears every field but the name policy and the list limit.
func (v *Via) Reset() {
	names, n := v.names, v.limit
	*v = Via{
		names:  names,
		limit:  n,
		layers: limitedSeq[*ViaLayer]("via layer", n),
		props:  newProperties(n),
	}
}

// setLimit caps every list of the via at n entries and clears the via.
func (v *Via) setLimit(n int) {
	v.limit = n
	v.Reset()
}

// SetName resets the via and names it.
func (v *Via) SetName(name string, kind ViaKind) {
	v.Reset()
	v.name = v.names.Apply(name)
	switch kind {
	case ViaDefault:
		v.isDefault = true
	case ViaGenerated:
		v.isGenerated = true
	}
}

func (v *Via) SetResistance(r float64) { v.resistance.Set(r) }
func (v *Via) SetTopOfStack()          { v.topOfStack = true }

// SetForeign records FOREIGN name [pt [orient]].
func (v *Via) SetForeign(name string, pt Opt[Point], orient Orient) {
	v.foreign.Set(Foreign{Name: v.names.Apply(name), Point: pt, Orient: orient})
}

// AddLayer opens a LAYER section.
func (v *Via) AddLayer(name string) (*ViaLayer, error) {
	return appendEntry(&v.layers, &ViaLayer{Name: v.names.Apply(name)})
}

func (v *Via) currentLayer(call string) (*ViaLayer, error) {
	return lastEntry(&v.layers, call, "AddLayer")
}

// AddRectToLayer appends a RECT to the layer opened last.
func (v *Via) AddRectToLayer(mask int, xl, yl, xh, yh float64) error {
	vl, err := v.currentLayer("AddRectToLayer")
	if err != nil {
		return err
	}
	if err := room("via rect", len(vl.Rects), 1, v.limit); err != nil {
		return err
	}
	vl.AddRect(mask, xl, yl, xh, yh)
	return nil
}

// AddPolyToLayer appends a POLYGON to the layer opened last.
func (v *Via) AddPolyToLayer(mask int, x, y []float64) error {
	vl, err := v.currentLayer("AddPolyToLayer")
	if err != nil {
		return err
	}
	if err := room("via polygon", len(vl.Polygons), 1, v.limit); err != nil {
		return err
	}
	if err := room("via polygon point", 0, len(x), v.limit); err != nil {
		return err
	}
	vl.AddPolygon(mask, x, y)
	return nil
}

// SetViaRule records the VIARULE parameters of a generated via.
func (v *Via) SetViaRule(p ViaRuleParams) {
	p.BotLayer = v.names.Apply(p.BotLayer)
	p.CutLayer = v.names.Apply(p.CutLayer)
	p.TopLayer = v.names.Apply(p.TopLayer)
	v.rule.Set(p)
}

func (v *Via) SetRowCol(rows, cols int) { v.rowCol.Set(RowCol{Rows: rows, Cols: cols}) }
func (v *Via) SetOrigin(x, y float64)   { v.origin.Set(Point{X: x, Y: y}) }
func (v *Via) SetOffset(xBot, yBot, xTop, yTop float64) {
	v.offset.Set(ViaOffset{Bot: Point{X: xBot, Y: yBot}, Top: Point{X: xTop, Y: yTop}})
}
func (v *Via) SetPattern(p string) { v.pattern = p }

func (v *Via) AddProp(name, value string, typ PropType) error {
	return v.props.Add(name, value, typ)
}

func (v *Via) AddNumProp(name string, d float64, value string, typ PropType) error {
	return v.props.AddNum(name, d, value, typ)
}

func (v *Via) Name() string                   { return v.name }
func (v *Via) HasDefault() bool               { return v.isDefault }
func (v *Via) HasGenerated() bool             { return v.isGenerated }
func (v *Via) Resistance() (float64, bool)    { return v.resistance.Get() }
func (v *Via) HasTopOfStack() bool            { return v.topOfStack }
func (v *Via) Foreign() (Foreign, bool)       { return v.foreign.Get() }
func (v *Via) NumLayers() int                 { return v.layers.Len() }
func (v *Via) Layer(i int) (*ViaLayer, error) { return v.layers.At(i) }
func (v *Via) ViaRule() (ViaRuleParams, bool) { return v.rule.Get() }
func (v *Via) HasViaRule() bool               { return v.rule.IsSet() }
func (v *Via) RowCol() (RowCol, bool)         { return v.rowCol.Get() }
func (v *Via) Origin() (Point, bool)          { return v.origin.Get() }
func (v *Via) Offset() (ViaOffset, bool)      { return v.offset.Get() }
func (v *Via) CutPattern() string             { return v.pattern }
func (v *Via) HasCutPattern() bool            { return v.pattern != "" }
func (v *Via) Props() *Properties             { return &v.props }
func (v *Via) NumProps() int                  { return v.props.Len() }

// Clone returns a deep copy of the via, used when a via definition is
// embedded in another record.
func (v *Via) Clone() *Via {
	c := *v
	c.layers = limitedSeq[*ViaLayer]("via layer", v.limit)
	for _, vl := range v.layers.items {
		cl := &ViaLayer{Name: vl.Name, Rects: append([]ViaRect(nil), vl.Rects...)}
		for _, p := range vl.Polygons {
			cl.Polygons = append(cl.Polygons, ViaPolygon{Mask: p.Mask, X: cloneFloats(p.X), Y: cloneFloats(p.Y)})
		}
		c.layers.items = append(c.layers.items, cl)
	}
	c.props = Properties{seq: v.props.seq.clone()}
	return &c
}

// Print writes the via as an s-expression.
func (v *Via) Print(w io.Writer) error {
	d := newDumper(w)
	v.dump(d)
	return d.err()
}

func (v *Via) dump(d *dumper) {
	d.open("via", v.name)
	d.flag("default", v.isDefault)
	d.flag("generated", v.isGenerated)
	optLeaf(d, "resistance", v.resistance)
	d.flag("topofstackonly", v.topOfStack)
	if f, ok := v.foreign.Get(); ok {
		dumpForeign(d, f)
	}
	for _, vl := range v.layers.items {
		d.open("layer", vl.Name)
		for _, r := range vl.Rects {
			d.leaf("rect", r.Mask, r.XL, r.YL, r.XH, r.YH)
		}
		for _, p := range vl.Polygons {
			d.leaf("polygon", pointArgs(p.Mask, p.X, p.Y)...)
		}
		d.close()
	}
	if r, ok := v.rule.Get(); ok {
		d.open("viarule", r.RuleName)
		d.leaf("cutsize", r.CutSize.X, r.CutSize.Y)
		d.leaf("layers", r.BotLayer, r.CutLayer, r.TopLayer)
		d.leaf("cutspacing", r.CutSpacing.X, r.CutSpacing.Y)
		d.leaf("enclosure", r.BotEnc.X, r.BotEnc.Y, r.TopEnc.X, r.TopEnc.Y)
		if rc, ok := v.rowCol.Get(); ok {
			d.leaf("rowcol", rc.Rows, rc.Cols)
		}
		if o, ok := v.origin.Get(); ok {
			d.leaf("origin", o.X, o.Y)
		}
		if o, ok := v.offset.Get(); ok {
			d.leaf("offset", o.Bot.X, o.Bot.Y, o.Top.X, o.Top.Y)
		}
		d.str("pattern", v.pattern)
		d.close()
	}
	d.properties(&v.props)
	d.close()
}

func dumpForeign(d *dumper, f Foreign) {
	args := []any{f.Name}
	if p, ok := f.Point.Get(); ok {
		args = append(args, p.X, p.Y)
	}
	if f.HasOrient() {
		args = append(args, f.Orient)
	}
	d.leaf("foreign", args...)
}

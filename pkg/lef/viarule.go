package lef

import (
	"fmt"
	"io"
)

// MaxViaRuleLayers is the number of LAYER sections a VIARULE may carry.
const MaxViaRuleLayers = 3

// ViaRuleLayer is one LAYER section of a VIARULE.
type ViaRuleLayer struct {
	Name          string
	Direction     string // HORIZONTAL or VERTICAL
	Enclosure     Opt[Point]
	Width         Opt[MinMax]
	Overhang      Opt[float64]
	MetalOverhang Opt[float64]
	Rect          Opt[Box]
	Spacing       Opt[Point] // SPACING x BY y
	Resistance    Opt[float64]
}

func (vl *ViaRuleLayer) SetDirection(dir string) { vl.Direction = dir }
func (vl *ViaRuleLayer) SetEnclosure(overhang1, overhang2 float64) {
	vl.Enclosure.Set(Point{X: overhang1, Y: overhang2})
}
func (vl *ViaRuleLayer) SetWidth(min, max float64) { vl.Width.Set(MinMax{Min: min, Max: max}) }
func (vl *ViaRuleLayer) SetOverhang(d float64)     { vl.Overhang.Set(d) }
func (vl *ViaRuleLayer) SetMetalOverhang(d float64) {
	vl.MetalOverhang.Set(d)
}
func (vl *ViaRuleLayer) SetRect(xl, yl, xh, yh float64) {
	vl.Rect.Set(Box{Min: Point{X: xl, Y: yl}, Max: Point{X: xh, Y: yh}})
}
func (vl *ViaRuleLayer) SetSpacing(x, y float64) { vl.Spacing.Set(Point{X: x, Y: y}) }
func (vl *ViaRuleLayer) SetResistance(r float64) { vl.Resistance.Set(r) }
func (vl *ViaRuleLayer) IsHorizontal() bool      { return vl.Direction == "HORIZONTAL" }
func (vl *ViaRuleLayer) IsVertical() bool        { return vl.Direction == "VERTICAL" }

// ViaRule is a VIARULE or VIARULE GENERATE definition.
type ViaRule struct {
	names *NameCase

	name      string
	generate  bool
	isDefault bool
	layers    Seq[*ViaRuleLayer]
	vias      Seq[string]
	props     Properties

	limit int
}

// NewViaRule returns an empty via rule using names for name conversion.
func NewViaRule(names *NameCase) *ViaRule {
	r := &ViaRule{names: names}
	r.Reset()
	return r
}

// Reset clears every field but the name policy and the list limit.
func (r *ViaRule) Reset() {
	names, n := r.names, r.limit
	*r = ViaRule{
		names:  names,
		limit:  n,
		layers: limitedSeq[*ViaRuleLayer]("viarule layer", MaxViaRuleLayers),
		vias:   limitedSeq[string]("viarule via", n),
		props:  newProperties(n),
	}
}

// setLimit caps the via and property lists at n entries and clears the
// rule. The layer list stays capped at MaxViaRuleLayers.
func (r *ViaRule) setLimit(n int) {
	r.limit = n
	r.Reset()
}

// SetName resets the rule and names it.
func (r *ViaRule) SetName(name string) {
	r.Reset()
	r.name = r.names.Apply(name)
}

func (r *ViaRule) SetGenerate() { r.generate = true }
func (r *ViaRule) SetDefault()  { r.isDefault = true }

// AddLayer opens a LAYER section. A fourth section fails with
// ErrResourceExhausted.
func (r *ViaRule) AddLayer(name string) (*ViaRuleLayer, error) {
	vl, err := appendEntry(&r.layers, &ViaRuleLayer{Name: r.names.Apply(name)})
	if err != nil {
		return nil, fmt.Errorf("lef: viarule %s: %w", r.name, err)
	}
	return vl, nil
}

// CurrentLayer returns the LAYER section opened last.
func (r *ViaRule) CurrentLayer() (*ViaRuleLayer, error) {
	return lastEntry(&r.layers, "viarule layer statement", "AddLayer")
}

// AddViaName appends a VIA name of a non-generate rule.
func (r *ViaRule) AddViaName(name string) error {
	return r.vias.Append(r.names.Apply(name))
}

func (r *ViaRule) AddProp(name, value string, typ PropType) error {
	return r.props.Add(name, value, typ)
}

func (r *ViaRule) AddNumProp(name string, d float64, value string, typ PropType) error {
	return r.props.AddNum(name, d, value, typ)
}

func (r *ViaRule) Name() string                       { return r.name }
func (r *ViaRule) HasGenerate() bool                  { return r.generate }
func (r *ViaRule) HasDefault() bool                   { return r.isDefault }
func (r *ViaRule) NumLayers() int                     { return r.layers.Len() }
func (r *ViaRule) Layer(i int) (*ViaRuleLayer, error) { return r.layers.At(i) }
func (r *ViaRule) NumVias() int                       { return r.vias.Len() }
func (r *ViaRule) ViaName(i int) (string, error)      { return r.vias.At(i) }
func (r *ViaRule) Props() *Properties                 { return &r.props }
func (r *ViaRule) NumProps() int                      { return r.props.Len() }

// Print writes the rule as an s-expression.
func (r *ViaRule) Print(w io.Writer) error {
	d := newDumper(w)
	r.dump(d)
	return d.err()
}

func (r *ViaRule) dump(d *dumper) {
	d.open("viarule", r.name)
	d.flag("generate", r.generate)
	d.flag("default", r.isDefault)
	for _, vl := range r.layers.items {
		d.open("layer", vl.Name)
		d.str("direction", vl.Direction)
		if e, ok := vl.Enclosure.Get(); ok {
			d.leaf("enclosure", e.X, e.Y)
		}
		if m, ok := vl.Width.Get(); ok {
			d.leaf("width", m.Min, m.Max)
		}
		optLeaf(d, "overhang", vl.Overhang)
		optLeaf(d, "metaloverhang", vl.MetalOverhang)
		if b, ok := vl.Rect.Get(); ok {
			d.leaf("rect", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		}
		if s, ok := vl.Spacing.Get(); ok {
			d.leaf("spacing", s.X, s.Y)
		}
		optLeaf(d, "resistance", vl.Resistance)
		d.close()
	}
	for _, v := range r.vias.items {
		d.leaf("via", v)
	}
	d.properties(&r.props)
	d.close()
}

package lef

import (
	"fmt"
	"io"
)

// NonDefaultLayer is one LAYER section of a NONDEFAULTRULE.
type NonDefaultLayer struct {
	Name          string
	Width         Opt[float64]
	DiagWidth     Opt[float64]
	Spacing       Opt[float64]
	WireExtension Opt[float64]
	Resistance    Opt[float64] // RESISTANCE RPERSQ
	Capacitance   Opt[float64] // CAPACITANCE CPERSQDIST
	EdgeCap       Opt[float64]
}

// MinCuts is a MINCUTS cutLayer numCuts entry.
type MinCuts struct {
	CutLayer string
	NumCuts  int
}

// NonDefaultRule is a NONDEFAULTRULE definition.
type NonDefaultRule struct {
	names *NameCase

	name        string
	hardSpacing bool
	layers      Seq[*NonDefaultLayer]
	vias        Seq[*Via]
	spacings    Seq[Spacing]
	useVias     Seq[string]
	useViaRules Seq[string]
	minCuts     Seq[MinCuts]
	props       Properties

	limit int
}

// NewNonDefaultRule returns an empty rule using names for name conversion.
func NewNonDefaultRule(names *NameCase) *NonDefaultRule {
	r := &NonDefaultRule{names: names}
	r.Reset()
	return r
}

// Reset clears every field but the name policy and the list limit.
func (r *NonDefaultRule) Reset() {
	names, n := r.names, r.limit
	*r = NonDefaultRule{
		names:       names,
		limit:       n,
		layers:      limitedSeq[*NonDefaultLayer]("nondefault layer", n),
		vias:        limitedSeq[*Via]("nondefault via", n),
		spacings:    limitedSeq[Spacing]("nondefault spacing", n),
		useVias:     limitedSeq[string]("usevia", n),
		useViaRules: limitedSeq[string]("useviarule", n),
		minCuts:     limitedSeq[MinCuts]("mincuts", n),
		props:       newProperties(n),
	}
}

// setLimit caps every list of the rule at n entries and clears the rule.
func (r *NonDefaultRule) setLimit(n int) {
	r.limit = n
	r.Reset()
}

// SetName resets the rule and names it.
func (r *NonDefaultRule) SetName(name string) {
	r.Reset()
	r.name = r.names.Apply(name)
}

func (r *NonDefaultRule) SetHardSpacing() { r.hardSpacing = true }

// AddLayer opens a LAYER section.
func (r *NonDefaultRule) AddLayer(name string) (*NonDefaultLayer, error) {
	return appendEntry(&r.layers, &NonDefaultLayer{Name: r.names.Apply(name)})
}

// CurrentLayer returns the LAYER section opened last.
func (r *NonDefaultRule) CurrentLayer() (*NonDefaultLayer, error) {
	return lastEntry(&r.layers, "nondefault layer statement", "AddLayer")
}

func (r *NonDefaultRule) setLayerValue(call string, set func(*NonDefaultLayer)) error {
	l, err := lastEntry(&r.layers, call, "AddLayer")
	if err != nil {
		return err
	}
	set(l)
	return nil
}

func (r *NonDefaultRule) AddWidth(d float64) error {
	return r.setLayerValue("AddWidth", func(l *NonDefaultLayer) { l.Width.Set(d) })
}

func (r *NonDefaultRule) AddDiagWidth(d float64) error {
	return r.setLayerValue("AddDiagWidth", func(l *NonDefaultLayer) { l.DiagWidth.Set(d) })
}

func (r *NonDefaultRule) AddSpacing(d float64) error {
	return r.setLayerValue("AddSpacing", func(l *NonDefaultLayer) { l.Spacing.Set(d) })
}

func (r *NonDefaultRule) AddWireExtension(d float64) error {
	return r.setLayerValue("AddWireExtension", func(l *NonDefaultLayer) { l.WireExtension.Set(d) })
}

func (r *NonDefaultRule) AddResistance(d float64) error {
	return r.setLayerValue("AddResistance", func(l *NonDefaultLayer) { l.Resistance.Set(d) })
}

func (r *NonDefaultRule) AddCapacitance(d float64) error {
	return r.setLayerValue("AddCapacitance", func(l *NonDefaultLayer) { l.Capacitance.Set(d) })
}

func (r *NonDefaultRule) AddEdgeCap(d float64) error {
	return r.setLayerValue("AddEdgeCap", func(l *NonDefaultLayer) { l.EdgeCap.Set(d) })
}

// AddVia embeds a copy of v. A via without a name is rejected.
func (r *NonDefaultRule) AddVia(v *Via) error {
	if v == nil || v.Name() == "" {
		return fmt.Errorf("lef: nondefault rule %s: via is invalid", r.name)
	}
	return r.vias.Append(v.Clone())
}

// AddSpacingRule embeds a SPACING entry.
func (r *NonDefaultRule) AddSpacingRule(s Spacing) error {
	s.Name1 = r.names.Apply(s.Name1)
	s.Name2 = r.names.Apply(s.Name2)
	return r.spacings.Append(s)
}

func (r *NonDefaultRule) AddUseVia(name string) error {
	return r.useVias.Append(r.names.Apply(name))
}

func (r *NonDefaultRule) AddUseViaRule(name string) error {
	return r.useViaRules.Append(r.names.Apply(name))
}

func (r *NonDefaultRule) AddMinCuts(cutLayer string, numCuts int) error {
	return r.minCuts.Append(MinCuts{CutLayer: r.names.Apply(cutLayer), NumCuts: numCuts})
}

func (r *NonDefaultRule) AddProp(name, value string, typ PropType) error {
	return r.props.Add(name, value, typ)
}

func (r *NonDefaultRule) AddNumProp(name string, d float64, value string, typ PropType) error {
	return r.props.AddNum(name, d, value, typ)
}

func (r *NonDefaultRule) Name() string                          { return r.name }
func (r *NonDefaultRule) HasHardSpacing() bool                  { return r.hardSpacing }
func (r *NonDefaultRule) NumLayers() int                        { return r.layers.Len() }
func (r *NonDefaultRule) Layer(i int) (*NonDefaultLayer, error) { return r.layers.At(i) }
func (r *NonDefaultRule) NumVias() int                          { return r.vias.Len() }
func (r *NonDefaultRule) Via(i int) (*Via, error)               { return r.vias.At(i) }
func (r *NonDefaultRule) NumSpacingRules() int                  { return r.spacings.Len() }
func (r *NonDefaultRule) SpacingRule(i int) (Spacing, error)    { return r.spacings.At(i) }
func (r *NonDefaultRule) NumUseVia() int                        { return r.useVias.Len() }
func (r *NonDefaultRule) UseVia(i int) (string, error)          { return r.useVias.At(i) }
func (r *NonDefaultRule) NumUseViaRule() int                    { return r.useViaRules.Len() }
func (r *NonDefaultRule) UseViaRule(i int) (string, error)      { return r.useViaRules.At(i) }
func (r *NonDefaultRule) NumMinCuts() int                       { return r.minCuts.Len() }
func (r *NonDefaultRule) MinCuts(i int) (MinCuts, error)        { return r.minCuts.At(i) }
func (r *NonDefaultRule) Props() *Properties                    { return &r.props }
func (r *NonDefaultRule) NumProps() int                         { return r.props.Len() }

// Print writes the rule as an s-expression.
func (r *NonDefaultRule) Print(w io.Writer) error {
	d := newDumper(w)
	r.dump(d)
	return d.err()
}

func (r *NonDefaultRule) dump(d *dumper) {
	d.open("nondefaultrule", r.name)
	d.flag("hardspacing", r.hardSpacing)
	for _, l := range r.layers.items {
		d.open("layer", l.Name)
		optLeaf(d, "width", l.Width)
		optLeaf(d, "diagwidth", l.DiagWidth)
		optLeaf(d, "spacing", l.Spacing)
		optLeaf(d, "wireextension", l.WireExtension)
		optLeaf(d, "resistance", l.Resistance)
		optLeaf(d, "capacitance", l.Capacitance)
		optLeaf(d, "edgecapacitance", l.EdgeCap)
		d.close()
	}
	for _, v := range r.vias.items {
		v.dump(d)
	}
	for _, s := range r.spacings.items {
		dumpSpacing(d, s)
	}
	for _, v := range r.useVias.items {
		d.leaf("usevia", v)
	}
	for _, v := range r.useViaRules.items {
		d.leaf("useviarule", v)
	}
	for _, m := range r.minCuts.items {
		d.leaf("mincuts", m.CutLayer, m.NumCuts)
	}
	d.properties(&r.props)
	d.close()
}

func dumpSpacing(d *dumper, s Spacing) {
	d.open("samenet", s.Name1, s.Name2, s.Distance)
	d.flag("stack", s.Stack)
	d.close()
}

package lef

import (
	"fmt"
	"io"
)

// Obstruction is an OBS block of a macro.
type Obstruction struct {
	geoms *Geometries
}

// NewObstruction returns an obstruction holding g.
func NewObstruction(g *Geometries) *Obstruction { return &Obstruction{geoms: g} }

// Geometries returns the obstruction shapes.
func (o *Obstruction) Geometries() *Geometries { return o.geoms }

// Print writes the obstruction as an s-expression.
func (o *Obstruction) Print(w io.Writer) error {
	d := newDumper(w)
	d.geometries("obs", o.geoms)
	return d.err()
}

// DensityRect is one RECT of a DENSITY layer with its density value.
type DensityRect struct {
	Box
	Value float64
}

// DensityLayer is one LAYER section of a DENSITY block.
type DensityLayer struct {
	Name  string
	Rects []DensityRect
}

// Density is the DENSITY block of a macro.
type Density struct {
	names  *NameCase
	layers Seq[*DensityLayer]
	limit  int
}

// NewDensity returns an empty density block.
func NewDensity(names *NameCase) *Density { return newDensity(names, 0) }

func newDensity(names *NameCase, limit int) *Density {
	return &Density{names: names, layers: limitedSeq[*DensityLayer]("density layer", limit), limit: limit}
}

// AddLayer opens a LAYER section.
func (dn *Density) AddLayer(name string) (*DensityLayer, error) {
	return appendEntry(&dn.layers, &DensityLayer{Name: dn.names.Apply(name)})
}

// AddRect appends a RECT to the layer opened last.
func (dn *Density) AddRect(xl, yl, xh, yh, value float64) error {
	l, err := lastEntry(&dn.layers, "density RECT", "AddLayer")
	if err != nil {
		return err
	}
	if err := room("density rect", len(l.Rects), 1, dn.limit); err != nil {
		return err
	}
	l.Rects = append(l.Rects, DensityRect{
		Box:   Box{Min: Point{X: xl, Y: yl}, Max: Point{X: xh, Y: yh}},
		Value: value,
	})
	return nil
}

func (dn *Density) NumLayers() int                     { return dn.layers.Len() }
func (dn *Density) Layer(i int) (*DensityLayer, error) { return dn.layers.At(i) }

// Print writes the density block as an s-expression.
func (dn *Density) Print(w io.Writer) error {
	d := newDumper(w)
	dn.dump(d)
	return d.err()
}

func (dn *Density) dump(d *dumper) {
	d.open("density")
	for _, l := range dn.layers.items {
		d.open("layer", l.Name)
		for _, r := range l.Rects {
			d.leaf("rect", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, r.Value)
		}
		d.close()
	}
	d.close()
}

// Generate is the GENERATE statement of a macro.
type Generate struct {
	Name1, Name2 string
}

// Macro is a MACRO definition together with its pins, obstructions and
// density.
type Macro struct {
	names *NameCase

	name      string
	class     string
	generator string
	generate  Opt[Generate]
	power     Opt[float64]
	origin    Opt[Point]
	source    string
	eeq       string
	leq       string
	clockType string
	symX      bool
	symY      bool
	sym90     bool
	siteName  string
	sites     Seq[SitePattern]
	size      Opt[Point]
	buffer    bool
	inverter  bool
	fixedMask bool
	foreigns  Seq[Foreign]
	props     Properties

	pins    Seq[*Pin]
	obs     Seq[*Obstruction]
	density *Density

	limit int
}

// NewMacro returns an empty macro using names for name conversion.
func NewMacro(names *NameCase) *Macro {
	m := &Macro{names: names}
	m.Reset()
	return m
}

// Reset clears every field but the name policy and the list limit.
func (m *Macro) Reset() {
	names, n := m.names, m.limit
	*m = Macro{
		names:    names,
		limit:    n,
		sites:    limitedSeq[SitePattern]("site pattern", n),
		foreigns: limitedSeq[Foreign]("macro foreign", n),
		pins:     limitedSeq[*Pin]("pin", n),
		obs:      limitedSeq[*Obstruction]("obstruction", n),
		props:    newProperties(n),
	}
}

// setLimit caps every list of the macro at n entries and clears the macro.
// Pins, obstructions and density added later keep their own limits.
func (m *Macro) setLimit(n int) {
	m.limit = n
	m.Reset()
}

// SetName resets the macro and names it.
func (m *Macro) SetName(name string) {
	m.Reset()
	m.name = m.names.Apply(name)
}

func (m *Macro) SetClass(class string)    { m.class = m.names.Apply(class) }
func (m *Macro) SetGenerator(name string) { m.generator = m.names.Apply(name) }
func (m *Macro) SetPower(p float64)       { m.power.Set(p) }
func (m *Macro) SetOrigin(x, y float64)   { m.origin.Set(Point{X: x, Y: y}) }
func (m *Macro) SetSource(src string)     { m.source = m.names.Apply(src) }
func (m *Macro) SetEEQ(name string)       { m.eeq = m.names.Apply(name) }
func (m *Macro) SetLEQ(name string)       { m.leq = m.names.Apply(name) }
func (m *Macro) SetClockType(name string) { m.clockType = m.names.Apply(name) }
func (m *Macro) SetXSymmetry()            { m.symX = true }
func (m *Macro) SetYSymmetry()            { m.symY = true }
func (m *Macro) Set90Symmetry()           { m.sym90 = true }
func (m *Macro) SetSiteName(name string)  { m.siteName = m.names.Apply(name) }
func (m *Macro) SetSize(x, y float64)     { m.size.Set(Point{X: x, Y: y}) }
func (m *Macro) SetBuffer()               { m.buffer = true }
func (m *Macro) SetInverter()             { m.inverter = true }
func (m *Macro) SetFixedMask()            { m.fixedMask = true }
func (m *Macro) SetGenerate(name1, name2 string) {
	m.generate.Set(Generate{Name1: m.names.Apply(name1), Name2: name2})
}

// AddSitePattern appends a SITE with a placement pattern.
func (m *Macro) AddSitePattern(p SitePattern) error {
	p.Name = m.names.Apply(p.Name)
	return m.sites.Append(p)
}

// AddForeign appends a FOREIGN reference. orient is OrientNone when no
// orientation was given.
func (m *Macro) AddForeign(name string, pt Opt[Point], orient Orient) error {
	return m.foreigns.Append(Foreign{Name: m.names.Apply(name), Point: pt, Orient: orient})
}

func (m *Macro) AddProp(name, value string, typ PropType) error {
	return m.props.Add(name, value, typ)
}

func (m *Macro) AddNumProp(name string, d float64, value string, typ PropType) error {
	return m.props.AddNum(name, d, value, typ)
}

// AddPin attaches a completed pin.
func (m *Macro) AddPin(p *Pin) error {
	if p == nil {
		return fmt.Errorf("lef: macro %s: nil pin", m.name)
	}
	return m.pins.Append(p)
}

// AddObstruction attaches a completed OBS block.
func (m *Macro) AddObstruction(o *Obstruction) error {
	if o == nil {
		return fmt.Errorf("lef: macro %s: nil obstruction", m.name)
	}
	return m.obs.Append(o)
}

// SetDensity attaches the DENSITY block.
func (m *Macro) SetDensity(dn *Density) { m.density = dn }

func (m *Macro) Name() string                            { return m.name }
func (m *Macro) Class() string                           { return m.class }
func (m *Macro) HasClass() bool                          { return m.class != "" }
func (m *Macro) Generator() string                       { return m.generator }
func (m *Macro) HasGenerator() bool                      { return m.generator != "" }
func (m *Macro) Generate() (Generate, bool)              { return m.generate.Get() }
func (m *Macro) Power() (float64, bool)                  { return m.power.Get() }
func (m *Macro) Origin() (Point, bool)                   { return m.origin.Get() }
func (m *Macro) Source() string                          { return m.source }
func (m *Macro) HasSource() bool                         { return m.source != "" }
func (m *Macro) EEQ() string                             { return m.eeq }
func (m *Macro) HasEEQ() bool                            { return m.eeq != "" }
func (m *Macro) LEQ() string                             { return m.leq }
func (m *Macro) HasLEQ() bool                            { return m.leq != "" }
func (m *Macro) ClockType() string                       { return m.clockType }
func (m *Macro) HasClockType() bool                      { return m.clockType != "" }
func (m *Macro) HasXSymmetry() bool                      { return m.symX }
func (m *Macro) HasYSymmetry() bool                      { return m.symY }
func (m *Macro) Has90Symmetry() bool                     { return m.sym90 }
func (m *Macro) SiteName() string                        { return m.siteName }
func (m *Macro) HasSiteName() bool                       { return m.siteName != "" }
func (m *Macro) NumSitePattern() int                     { return m.sites.Len() }
func (m *Macro) SitePattern(i int) (SitePattern, error)  { return m.sites.At(i) }
func (m *Macro) Size() (Point, bool)                     { return m.size.Get() }
func (m *Macro) IsBuffer() bool                          { return m.buffer }
func (m *Macro) IsInverter() bool                        { return m.inverter }
func (m *Macro) IsFixedMask() bool                       { return m.fixedMask }
func (m *Macro) NumForeigns() int                        { return m.foreigns.Len() }
func (m *Macro) Foreign(i int) (Foreign, error)          { return m.foreigns.At(i) }
func (m *Macro) Props() *Properties                      { return &m.props }
func (m *Macro) NumProps() int                           { return m.props.Len() }
func (m *Macro) NumPins() int                            { return m.pins.Len() }
func (m *Macro) Pin(i int) (*Pin, error)                 { return m.pins.At(i) }
func (m *Macro) NumObstructions() int                    { return m.obs.Len() }
func (m *Macro) Obstruction(i int) (*Obstruction, error) { return m.obs.At(i) }
func (m *Macro) Density() *Density                       { return m.density }

// Pins returns the pins in definition order.
func (m *Macro) Pins() []*Pin { return m.pins.Values() }

// LookupPin returns the pin called name.
func (m *Macro) LookupPin(name string) (*Pin, bool) {
	name = m.names.Apply(name)
	for _, p := range m.pins.items {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Print writes the macro as an s-expression.
func (m *Macro) Print(w io.Writer) error {
	d := newDumper(w)
	m.dump(d)
	return d.err()
}

func (m *Macro) dump(d *dumper) {
	d.open("macro", m.name)
	d.str("class", m.class)
	d.flag("fixedmask", m.fixedMask)
	d.str("generator", m.generator)
	if g, ok := m.generate.Get(); ok {
		d.leaf("generate", g.Name1, g.Name2)
	}
	optLeaf(d, "power", m.power)
	if o, ok := m.origin.Get(); ok {
		d.leaf("origin", o.X, o.Y)
	}
	d.str("source", m.source)
	d.str("eeq", m.eeq)
	d.str("leq", m.leq)
	d.str("clocktype", m.clockType)
	if m.symX || m.symY || m.sym90 {
		var args []any
		if m.symX {
			args = append(args, "X")
		}
		if m.symY {
			args = append(args, "Y")
		}
		if m.sym90 {
			args = append(args, "R90")
		}
		d.leaf("symmetry", args...)
	}
	d.str("site", m.siteName)
	for _, p := range m.sites.items {
		dumpSitePattern(d, p)
	}
	if s, ok := m.size.Get(); ok {
		d.leaf("size", s.X, s.Y)
	}
	d.flag("buffer", m.buffer)
	d.flag("inverter", m.inverter)
	for _, f := range m.foreigns.items {
		dumpForeign(d, f)
	}
	d.properties(&m.props)
	for _, p := range m.pins.items {
		p.dump(d)
	}
	for _, o := range m.obs.items {
		d.geometries("obs", o.geoms)
	}
	if m.density != nil {
		m.density.dump(d)
	}
	d.close()
}

func dumpSitePattern(d *dumper, p SitePattern) {
	args := []any{p.Name, p.X, p.Y}
	if p.Orient.Valid() {
		args = append(args, p.Orient)
	}
	if s, ok := p.Step.Get(); ok {
		args = stepArgs(args, s)
	}
	d.leaf("site", args...)
}

package lef

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// HighLow is a pair of values given as high then low, e.g. INPUTNOISEMARGIN.
type HighLow struct {
	High, Low float64
}

// Tables is the TABLE high low statement of a pin.
type Tables struct {
	High, Low string
}

// PinAntennaKind selects one of the per-layer antenna lists of a pin that
// live outside the oxide models.
type PinAntennaKind int

const (
	PinAntennaSize PinAntennaKind = iota
	PinAntennaMetalArea
	PinAntennaMetalLength
	PinAntennaPartialMetalArea
	PinAntennaPartialMetalSideArea
	PinAntennaPartialCutArea
	PinAntennaDiffArea
	numPinAntennaKinds
)

var pinAntennaNames = [numPinAntennaKinds]string{
	PinAntennaSize:                 "ANTENNASIZE",
	PinAntennaMetalArea:            "ANTENNAMETALAREA",
	PinAntennaMetalLength:          "ANTENNAMETALLENGTH",
	PinAntennaPartialMetalArea:     "ANTENNAPARTIALMETALAREA",
	PinAntennaPartialMetalSideArea: "ANTENNAPARTIALMETALSIDEAREA",
	PinAntennaPartialCutArea:       "ANTENNAPARTIALCUTAREA",
	PinAntennaDiffArea:             "ANTENNADIFFAREA",
}

func (k PinAntennaKind) String() string {
	if k < 0 || k >= numPinAntennaKinds {
		return fmt.Sprintf("PinAntennaKind(%d)", int(k))
	}
	return pinAntennaNames[k]
}

// Pin is a PIN of a macro.
type Pin struct {
	names *NameCase

	name      string
	foreigns  Seq[Foreign]
	leq       string
	direction string
	use       string
	shape     string
	mustjoin  string

	inMargin      Opt[HighLow]
	outMargin     Opt[HighLow]
	outResistance Opt[HighLow]
	power         Opt[float64]
	leakage       Opt[float64]
	maxload       Opt[float64]
	maxdelay      Opt[float64]
	capacitance   Opt[float64]
	resistance    Opt[float64]
	pulldownres   Opt[float64]
	tieoffr       Opt[float64]
	vhi           Opt[float64]
	vlo           Opt[float64]
	riseVoltage   Opt[float64]
	fallVoltage   Opt[float64]
	riseThresh    Opt[float64]
	fallThresh    Opt[float64]
	riseSatcur    Opt[float64]
	fallSatcur    Opt[float64]
	riseSlewLimit Opt[float64]
	fallSlewLimit Opt[float64]

	currentSource     string
	tables            Opt[Tables]
	taperRule         string
	netExpr           string
	supplySensitivity string
	groundSensitivity string

	antennaLists [numPinAntennaKinds]Seq[AntennaValue]
	antenna      antennaSlots[PinAntennaModel]

	ports Seq[*Geometries]
	props Properties

	limit int
}

// NewPin returns an empty pin using names for name conversion.
func NewPin(names *NameCase) *Pin {
	p := &Pin{names: names}
	p.Reset()
	return p
}

// Reset clears every field, keeping the name policy, the oxide limit and
// the list limit.
func (p *Pin) Reset() {
	names, maxOx, n := p.names, p.antenna.max, p.limit
	*p = Pin{
		names:    names,
		limit:    n,
		foreigns: limitedSeq[Foreign]("pin foreign", n),
		ports:    limitedSeq[*Geometries]("port", n),
		props:    newProperties(n),
		antenna: antennaSlots[PinAntennaModel]{
			max:   maxOx,
			fresh: func(oxide int) *PinAntennaModel { return newPinAntennaModel(oxide, n) },
		},
	}
	for k := range p.antennaLists {
		p.antennaLists[k] = limitedSeq[AntennaValue](pinAntennaNames[k], n)
	}
}

// setLimit caps every list of the pin, its ports included, at n entries
// and clears the pin.
func (p *Pin) setLimit(n int) {
	p.limit = n
	p.Reset()
}

// SetName resets the pin and names it.
func (p *Pin) SetName(name string) {
	p.Reset()
	p.name = p.names.Apply(name)
}

// SetMaxOxides sets the number of antenna oxide slots and drops any
// antenna models already opened.
func (p *Pin) SetMaxOxides(n int) { p.antenna.setMax(n) }

// AddForeign appends a FOREIGN reference. pt is the optional origin and
// orient is OrientNone when no orientation was given.
func (p *Pin) AddForeign(name string, pt Opt[Point], orient Orient) error {
	return p.foreigns.Append(Foreign{Name: p.names.Apply(name), Point: pt, Orient: orient})
}

func (p *Pin) SetLEQ(name string)         { p.leq = p.names.Apply(name) }
func (p *Pin) SetDirection(dir string)    { p.direction = p.names.Apply(dir) }
func (p *Pin) SetUse(use string)          { p.use = p.names.Apply(use) }
func (p *Pin) SetShape(shape string)      { p.shape = p.names.Apply(shape) }
func (p *Pin) SetMustjoin(name string)    { p.mustjoin = p.names.Apply(name) }
func (p *Pin) SetCurrentSource(cs string) { p.currentSource = p.names.Apply(cs) }
func (p *Pin) SetTaperRule(name string)   { p.taperRule = name }
func (p *Pin) SetNetExpr(expr string)     { p.netExpr = expr }
func (p *Pin) SetSupplySensitivity(s string) {
	p.supplySensitivity = p.names.Apply(s)
}
func (p *Pin) SetGroundSensitivity(s string) {
	p.groundSensitivity = p.names.Apply(s)
}

func (p *Pin) SetTables(high, low string) {
	p.tables.Set(Tables{High: p.names.Apply(high), Low: p.names.Apply(low)})
}

func (p *Pin) SetInMargin(high, low float64)  { p.inMargin.Set(HighLow{High: high, Low: low}) }
func (p *Pin) SetOutMargin(high, low float64) { p.outMargin.Set(HighLow{High: high, Low: low}) }
func (p *Pin) SetOutResistance(high, low float64) {
	p.outResistance.Set(HighLow{High: high, Low: low})
}

func (p *Pin) SetPower(d float64)         { p.power.Set(d) }
func (p *Pin) SetLeakage(d float64)       { p.leakage.Set(d) }
func (p *Pin) SetMaxload(d float64)       { p.maxload.Set(d) }
func (p *Pin) SetMaxdelay(d float64)      { p.maxdelay.Set(d) }
func (p *Pin) SetCapacitance(d float64)   { p.capacitance.Set(d) }
func (p *Pin) SetResistance(d float64)    { p.resistance.Set(d) }
func (p *Pin) SetPulldownres(d float64)   { p.pulldownres.Set(d) }
func (p *Pin) SetTieoffr(d float64)       { p.tieoffr.Set(d) }
func (p *Pin) SetVHI(d float64)           { p.vhi.Set(d) }
func (p *Pin) SetVLO(d float64)           { p.vlo.Set(d) }
func (p *Pin) SetRiseVoltage(d float64)   { p.riseVoltage.Set(d) }
func (p *Pin) SetFallVoltage(d float64)   { p.fallVoltage.Set(d) }
func (p *Pin) SetRiseThresh(d float64)    { p.riseThresh.Set(d) }
func (p *Pin) SetFallThresh(d float64)    { p.fallThresh.Set(d) }
func (p *Pin) SetRiseSatcur(d float64)    { p.riseSatcur.Set(d) }
func (p *Pin) SetFallSatcur(d float64)    { p.fallSatcur.Set(d) }
func (p *Pin) SetRiseSlewLimit(d float64) { p.riseSlewLimit.Set(d) }
func (p *Pin) SetFallSlewLimit(d float64) { p.fallSlewLimit.Set(d) }

// AddAntennaValue appends to one of the per-layer antenna lists.
func (p *Pin) AddAntennaValue(kind PinAntennaKind, v float64, layer string) error {
	if kind < 0 || kind >= numPinAntennaKinds {
		return fmt.Errorf("lef: pin %s: unknown antenna list %d", p.name, int(kind))
	}
	return p.antennaLists[kind].Append(AntennaValue{Value: v, Layer: p.names.Apply(layer)})
}

// NumAntennaValue returns the length of one per-layer antenna list.
func (p *Pin) NumAntennaValue(kind PinAntennaKind) int {
	if kind < 0 || kind >= numPinAntennaKinds {
		return 0
	}
	return p.antennaLists[kind].Len()
}

// AntennaValue returns the i-th entry of one per-layer antenna list.
func (p *Pin) AntennaValue(kind PinAntennaKind, i int) (AntennaValue, error) {
	if kind < 0 || kind >= numPinAntennaKinds {
		return AntennaValue{}, fmt.Errorf("lef: pin %s: unknown antenna list %d", p.name, int(kind))
	}
	return p.antennaLists[kind].At(i)
}

// AddAntennaModel opens the antenna model of oxide (1-based) and makes it
// current.
func (p *Pin) AddAntennaModel(oxide int) (*PinAntennaModel, error) {
	return p.antenna.open(oxide)
}

// The four oxide bound lists below open OXIDE1 when no model was opened,
// so antenna statements written before any ANTENNAMODEL apply to it.

func (p *Pin) AddAntennaGateArea(v float64, layer string) error {
	m, err := p.antenna.current()
	if err != nil {
		return err
	}
	return m.AddGateArea(v, p.names.Apply(layer))
}

func (p *Pin) AddAntennaMaxAreaCar(v float64, layer string) error {
	m, err := p.antenna.current()
	if err != nil {
		return err
	}
	return m.AddMaxAreaCar(v, p.names.Apply(layer))
}

func (p *Pin) AddAntennaMaxSideAreaCar(v float64, layer string) error {
	m, err := p.antenna.current()
	if err != nil {
		return err
	}
	return m.AddMaxSideAreaCar(v, p.names.Apply(layer))
}

func (p *Pin) AddAntennaMaxCutCar(v float64, layer string) error {
	m, err := p.antenna.current()
	if err != nil {
		return err
	}
	return m.AddMaxCutCar(v, p.names.Apply(layer))
}

// NumAntennaModel returns the number of populated antenna models.
func (p *Pin) NumAntennaModel() int { return p.antenna.count() }

// HasAntennaModel reports whether any antenna model was opened.
func (p *Pin) HasAntennaModel() bool { return p.antenna.count() > 0 }

// AntennaModel returns the i-th populated antenna model in oxide order.
func (p *Pin) AntennaModel(i int) (*PinAntennaModel, error) { return p.antenna.at(i) }

// AntennaModels yields (oxide, model) for each populated antenna model.
func (p *Pin) AntennaModels() iter.Seq2[int, *PinAntennaModel] { return p.antenna.all() }

// AddPort appends g as a PORT. The pin takes ownership of g.
func (p *Pin) AddPort(g *Geometries) error {
	if g == nil {
		return fmt.Errorf("lef: pin %s: nil port", p.name)
	}
	return p.ports.Append(g)
}

// NewPort appends an empty PORT and returns it for filling.
func (p *Pin) NewPort() (*Geometries, error) {
	g := newGeometries(p.names, p.limit)
	if err := p.ports.Append(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Pin) AddProp(name, value string, typ PropType) error {
	return p.props.Add(name, value, typ)
}

func (p *Pin) AddNumProp(name string, d float64, value string, typ PropType) error {
	return p.props.AddNum(name, d, value, typ)
}

func (p *Pin) Name() string                   { return p.name }
func (p *Pin) NumForeigns() int               { return p.foreigns.Len() }
func (p *Pin) Foreign(i int) (Foreign, error) { return p.foreigns.At(i) }
func (p *Pin) HasForeign() bool               { return p.foreigns.Len() > 0 }
func (p *Pin) LEQ() string                    { return p.leq }
func (p *Pin) HasLEQ() bool                   { return p.leq != "" }
func (p *Pin) Direction() string              { return p.direction }
func (p *Pin) HasDirection() bool             { return p.direction != "" }
func (p *Pin) Use() string                    { return p.use }
func (p *Pin) HasUse() bool                   { return p.use != "" }
func (p *Pin) Shape() string                  { return p.shape }
func (p *Pin) HasShape() bool                 { return p.shape != "" }
func (p *Pin) Mustjoin() string               { return p.mustjoin }
func (p *Pin) HasMustjoin() bool              { return p.mustjoin != "" }
func (p *Pin) CurrentSource() string          { return p.currentSource }
func (p *Pin) HasCurrentSource() bool         { return p.currentSource != "" }
func (p *Pin) Tables() (Tables, bool)         { return p.tables.Get() }
func (p *Pin) TaperRule() string              { return p.taperRule }
func (p *Pin) HasTaperRule() bool             { return p.taperRule != "" }
func (p *Pin) NetExpr() string                { return p.netExpr }
func (p *Pin) HasNetExpr() bool               { return p.netExpr != "" }
func (p *Pin) SupplySensitivity() string      { return p.supplySensitivity }
func (p *Pin) GroundSensitivity() string      { return p.groundSensitivity }
func (p *Pin) InMargin() (HighLow, bool)      { return p.inMargin.Get() }
func (p *Pin) OutMargin() (HighLow, bool)     { return p.outMargin.Get() }
func (p *Pin) OutResistance() (HighLow, bool) { return p.outResistance.Get() }

func (p *Pin) Power() (float64, bool)         { return p.power.Get() }
func (p *Pin) Leakage() (float64, bool)       { return p.leakage.Get() }
func (p *Pin) Maxload() (float64, bool)       { return p.maxload.Get() }
func (p *Pin) Maxdelay() (float64, bool)      { return p.maxdelay.Get() }
func (p *Pin) Capacitance() (float64, bool)   { return p.capacitance.Get() }
func (p *Pin) Resistance() (float64, bool)    { return p.resistance.Get() }
func (p *Pin) Pulldownres() (float64, bool)   { return p.pulldownres.Get() }
func (p *Pin) Tieoffr() (float64, bool)       { return p.tieoffr.Get() }
func (p *Pin) VHI() (float64, bool)           { return p.vhi.Get() }
func (p *Pin) VLO() (float64, bool)           { return p.vlo.Get() }
func (p *Pin) RiseVoltage() (float64, bool)   { return p.riseVoltage.Get() }
func (p *Pin) FallVoltage() (float64, bool)   { return p.fallVoltage.Get() }
func (p *Pin) RiseThresh() (float64, bool)    { return p.riseThresh.Get() }
func (p *Pin) FallThresh() (float64, bool)    { return p.fallThresh.Get() }
func (p *Pin) RiseSatcur() (float64, bool)    { return p.riseSatcur.Get() }
func (p *Pin) FallSatcur() (float64, bool)    { return p.fallSatcur.Get() }
func (p *Pin) RiseSlewLimit() (float64, bool) { return p.riseSlewLimit.Get() }
func (p *Pin) FallSlewLimit() (float64, bool) { return p.fallSlewLimit.Get() }

func (p *Pin) NumPorts() int                   { return p.ports.Len() }
func (p *Pin) Port(i int) (*Geometries, error) { return p.ports.At(i) }
func (p *Pin) Props() *Properties              { return &p.props }
func (p *Pin) NumProps() int                   { return p.props.Len() }

// Bounds returns the bounding box of every port shape.
func (p *Pin) Bounds() Box {
	b := NewBox()
	for _, g := range p.ports.items {
		b.ExpandBox(g.Bounds())
	}
	return b
}

// Print writes the pin as an s-expression.
func (p *Pin) Print(w io.Writer) error {
	d := newDumper(w)
	p.dump(d)
	return d.err()
}

func (p *Pin) dump(d *dumper) {
	d.open("pin", p.name)
	for _, f := range p.foreigns.items {
		dumpForeign(d, f)
	}
	d.str("leq", p.leq)
	d.str("direction", p.direction)
	d.str("use", p.use)
	d.str("shape", p.shape)
	d.str("mustjoin", p.mustjoin)
	for _, hl := range []struct {
		head string
		v    Opt[HighLow]
	}{
		{"inputnoisemargin", p.inMargin},
		{"outputnoisemargin", p.outMargin},
		{"outputresistance", p.outResistance},
	} {
		if v, ok := hl.v.Get(); ok {
			d.leaf(hl.head, v.High, v.Low)
		}
	}
	optLeaf(d, "power", p.power)
	optLeaf(d, "leakage", p.leakage)
	optLeaf(d, "maxload", p.maxload)
	optLeaf(d, "maxdelay", p.maxdelay)
	optLeaf(d, "capacitance", p.capacitance)
	optLeaf(d, "resistance", p.resistance)
	optLeaf(d, "pulldownres", p.pulldownres)
	optLeaf(d, "tieoffr", p.tieoffr)
	optLeaf(d, "vhi", p.vhi)
	optLeaf(d, "vlo", p.vlo)
	optLeaf(d, "risevoltagethreshold", p.riseVoltage)
	optLeaf(d, "fallvoltagethreshold", p.fallVoltage)
	optLeaf(d, "risethresh", p.riseThresh)
	optLeaf(d, "fallthresh", p.fallThresh)
	optLeaf(d, "risesatcur", p.riseSatcur)
	optLeaf(d, "fallsatcur", p.fallSatcur)
	optLeaf(d, "riseslewlimit", p.riseSlewLimit)
	optLeaf(d, "fallslewlimit", p.fallSlewLimit)
	d.str("currentsource", p.currentSource)
	if t, ok := p.tables.Get(); ok {
		d.leaf("tables", t.High, t.Low)
	}
	d.str("taperrule", p.taperRule)
	d.str("netexpr", p.netExpr)
	d.str("supplysensitivity", p.supplySensitivity)
	d.str("groundsensitivity", p.groundSensitivity)
	for k := range p.antennaLists {
		for _, v := range p.antennaLists[k].items {
			dumpAntennaValue(d, strings.ToLower(PinAntennaKind(k).String()), v)
		}
	}
	for _, m := range p.antenna.all() {
		d.open("antennamodel", m.Oxide)
		for _, v := range m.gateArea.items {
			dumpAntennaValue(d, "antennagatearea", v)
		}
		for _, v := range m.maxAreaCar.items {
			dumpAntennaValue(d, "antennamaxareacar", v)
		}
		for _, v := range m.maxSideAreaCar.items {
			dumpAntennaValue(d, "antennamaxsideareacar", v)
		}
		for _, v := range m.maxCutCar.items {
			dumpAntennaValue(d, "antennamaxcutcar", v)
		}
		d.close()
	}
	for _, g := range p.ports.items {
		d.geometries("port", g)
	}
	d.properties(&p.props)
	d.close()
}

func dumpAntennaValue(d *dumper, head string, v AntennaValue) {
	if v.Layer == "" {
		d.leaf(head, v.Value)
		return
	}
	d.leaf(head, v.Value, "layer", v.Layer)
}

package lef

import (
	"io"
	"iter"
)

// MinSize is one WIDTH/LENGTH pair of a MINSIZE rule.
type MinSize struct {
	Width, Length float64
}

// Layer is a LAYER definition.
type Layer struct {
	names *NameCase

	name      string
	typ       string // ROUTING, CUT, MASTERSLICE, OVERLAP, IMPLANT
	layerType string // LEF58_TYPE qualifier, e.g. POLYROUTING
	mask      Opt[int]

	pitch         Opt[float64]
	pitchXY       Opt[Point]
	offset        Opt[float64]
	offsetXY      Opt[Point]
	diagPitch     Opt[float64]
	diagPitchXY   Opt[Point]
	width         Opt[float64]
	area          Opt[float64]
	diagWidth     Opt[float64]
	diagSpacing   Opt[float64]
	wireExtension Opt[float64]
	minWidth      Opt[float64]
	maxWidth      Opt[float64]
	direction     string

	resistance    Opt[float64] // RESISTANCE RPERSQ
	capacitance   Opt[float64] // CAPACITANCE CPERSQDIST
	height        Opt[float64]
	thickness     Opt[float64]
	shrinkage     Opt[float64]
	capMultiplier Opt[float64]
	edgeCap       Opt[float64]
	antennaArea   Opt[float64]
	antennaLength Opt[float64]

	currentDensity    Opt[float64]
	currentPoints     Seq[WidthValue]
	resistancePoints  Seq[WidthValue]
	capacitancePoints Seq[WidthValue]

	resPerCut         Opt[float64]
	diagMinEdgeLength Opt[float64]
	maxFloatingArea   Opt[float64]
	protrusion        Opt[Protrusion]
	minSize           Seq[MinSize]

	slotWireWidth          Opt[float64]
	slotWireLength         Opt[float64]
	slotWidth              Opt[float64]
	slotLength             Opt[float64]
	maxAdjacentSlotSpacing Opt[float64]
	maxCoaxialSlotSpacing  Opt[float64]
	maxEdgeSlotSpacing     Opt[float64]
	splitWireWidth         Opt[float64]
	minimumDensity         Opt[float64]
	maximumDensity         Opt[float64]
	densityCheckWindow     Opt[Point] // X is the length, Y the width
	densityCheckStep       Opt[float64]
	fillActiveSpacing      Opt[float64]

	spacings         Seq[*LayerSpacing]
	spacingTables    Seq[*SpacingTable]
	ortho            Seq[OrthoEntry]
	hasOrtho         bool
	arraySpacing     *ArraySpacing
	minimumCuts      Seq[*MinimumCut]
	minSteps         Seq[*MinStep]
	minEnclosedAreas Seq[*MinEnclosedArea]
	enclosures       Seq[*Enclosure]
	preferEnclosures Seq[*Enclosure]
	acCurrents       Seq[*CurrentDensity]
	dcCurrents       Seq[*CurrentDensity]

	antenna antennaSlots[AntennaModel]
	props   Properties

	// number list consumed by the table building calls
	nums         []float64
	pendingWidth float64

	limit int
	twoWidthPRL  Opt[float64]
}

// NewLayer returns an empty layer using names for name conversion.
func NewLayer(names *NameCase) *Layer {
	l := &Layer{names: names}
	l.Reset()
	return l
}

// Reset clears every field, keeping the name policy, the oxide limit and
// the list limit.
func (l *Layer) Reset() {
	names, maxOx, n := l.names, l.antenna.max, l.limit
	*l = Layer{
		names:             names,
		limit:             n,
		currentPoints:     limitedSeq[WidthValue]("current density point", n),
		resistancePoints:  limitedSeq[WidthValue]("resistance point", n),
		capacitancePoints: limitedSeq[WidthValue]("capacitance point", n),
		minSize:           limitedSeq[MinSize]("minsize", n),
		spacings:          limitedSeq[*LayerSpacing]("spacing", n),
		spacingTables:     limitedSeq[*SpacingTable]("spacing table", n),
		ortho:             limitedSeq[OrthoEntry]("orthogonal", n),
		minimumCuts:       limitedSeq[*MinimumCut]("minimumcut", n),
		minSteps:          limitedSeq[*MinStep]("minstep", n),
		minEnclosedAreas:  limitedSeq[*MinEnclosedArea]("minenclosedarea", n),
		enclosures:        limitedSeq[*Enclosure]("enclosure", n),
		preferEnclosures:  limitedSeq[*Enclosure]("preferenclosure", n),
		acCurrents:        limitedSeq[*CurrentDensity]("accurrentdensity", n),
		dcCurrents:        limitedSeq[*CurrentDensity]("dccurrentdensity", n),
		antenna:           antennaSlots[AntennaModel]{max: maxOx, fresh: newAntennaModel},
		props:             newProperties(n),
	}
}

// setLimit caps every list of the layer at n entries and clears the layer.
func (l *Layer) setLimit(n int) {
	l.limit = n
	l.Reset()
}

// SetName resets the layer and names it.
func (l *Layer) SetName(name string) {
	l.Reset()
	l.name = l.names.Apply(name)
}

// SetMaxOxides sets the number of antenna oxide slots and drops any
// antenna models already opened.
func (l *Layer) SetMaxOxides(n int) { l.antenna.setMax(n) }

func (l *Layer) SetType(t string)        { l.typ = l.names.Apply(t) }
func (l *Layer) SetLayerType(t string)   { l.layerType = t }
func (l *Layer) SetMask(n int)           { l.mask.Set(n) }
func (l *Layer) SetPitch(d float64)      { l.pitch.Set(d) }
func (l *Layer) SetPitchXY(x, y float64) { l.pitchXY.Set(Point{X: x, Y: y}) }
func (l *Layer) SetOffset(d float64)     { l.offset.Set(d) }
func (l *Layer) SetOffsetXY(x, y float64) {
	l.offsetXY.Set(Point{X: x, Y: y})
}
func (l *Layer) SetDiagPitch(d float64) { l.diagPitch.Set(d) }
func (l *Layer) SetDiagPitchXY(x, y float64) {
	l.diagPitchXY.Set(Point{X: x, Y: y})
}
func (l *Layer) SetWidth(d float64)         { l.width.Set(d) }
func (l *Layer) SetArea(d float64)          { l.area.Set(d) }
func (l *Layer) SetDiagWidth(d float64)     { l.diagWidth.Set(d) }
func (l *Layer) SetDiagSpacing(d float64)   { l.diagSpacing.Set(d) }
func (l *Layer) SetWireExtension(d float64) { l.wireExtension.Set(d) }
func (l *Layer) SetMinWidth(d float64)      { l.minWidth.Set(d) }
func (l *Layer) SetMaxWidth(d float64)      { l.maxWidth.Set(d) }
func (l *Layer) SetDirection(dir string)    { l.direction = dir }
func (l *Layer) SetResistance(d float64)    { l.resistance.Set(d) }
func (l *Layer) SetCapacitance(d float64)   { l.capacitance.Set(d) }
func (l *Layer) SetHeight(d float64)        { l.height.Set(d) }
func (l *Layer) SetThickness(d float64)     { l.thickness.Set(d) }
func (l *Layer) SetShrinkage(d float64)     { l.shrinkage.Set(d) }
func (l *Layer) SetCapMultiplier(d float64) { l.capMultiplier.Set(d) }
func (l *Layer) SetEdgeCap(d float64)       { l.edgeCap.Set(d) }
func (l *Layer) SetAntennaArea(d float64)   { l.antennaArea.Set(d) }
func (l *Layer) SetAntennaLength(d float64) { l.antennaLength.Set(d) }
func (l *Layer) SetCurrentDensity(d float64) {
	l.currentDensity.Set(d)
}
func (l *Layer) SetResPerCut(d float64)         { l.resPerCut.Set(d) }
func (l *Layer) SetDiagMinEdgeLength(d float64) { l.diagMinEdgeLength.Set(d) }
func (l *Layer) SetMaxFloatingArea(d float64)   { l.maxFloatingArea.Set(d) }
func (l *Layer) SetProtrusion(width1, length, width2 float64) {
	l.protrusion.Set(Protrusion{Width1: width1, Length: length, Width2: width2})
}

func (l *Layer) SetSlotWireWidth(d float64)          { l.slotWireWidth.Set(d) }
func (l *Layer) SetSlotWireLength(d float64)         { l.slotWireLength.Set(d) }
func (l *Layer) SetSlotWidth(d float64)              { l.slotWidth.Set(d) }
func (l *Layer) SetSlotLength(d float64)             { l.slotLength.Set(d) }
func (l *Layer) SetMaxAdjacentSlotSpacing(d float64) { l.maxAdjacentSlotSpacing.Set(d) }
func (l *Layer) SetMaxCoaxialSlotSpacing(d float64)  { l.maxCoaxialSlotSpacing.Set(d) }
func (l *Layer) SetMaxEdgeSlotSpacing(d float64)     { l.maxEdgeSlotSpacing.Set(d) }
func (l *Layer) SetSplitWireWidth(d float64)         { l.splitWireWidth.Set(d) }
func (l *Layer) SetMinimumDensity(d float64)         { l.minimumDensity.Set(d) }
func (l *Layer) SetMaximumDensity(d float64)         { l.maximumDensity.Set(d) }
func (l *Layer) SetDensityCheckStep(d float64)       { l.densityCheckStep.Set(d) }
func (l *Layer) SetFillActiveSpacing(d float64)      { l.fillActiveSpacing.Set(d) }
func (l *Layer) SetDensityCheckWindow(length, width float64) {
	l.densityCheckWindow.Set(Point{X: length, Y: width})
}

// SetCurrentPoint appends a (width, current) pair of the CURRENTDEN table.
func (l *Layer) SetCurrentPoint(width, current float64) error {
	return l.currentPoints.Append(WidthValue{Width: width, Value: current})
}

// SetResistancePoint appends a (width, resistance) pair.
func (l *Layer) SetResistancePoint(width, res float64) error {
	return l.resistancePoints.Append(WidthValue{Width: width, Value: res})
}

// SetCapacitancePoint appends a (width, capacitance) pair.
func (l *Layer) SetCapacitancePoint(width, cap float64) error {
	return l.capacitancePoints.Append(WidthValue{Width: width, Value: cap})
}

// AddMinSize appends a MINSIZE pair.
func (l *Layer) AddMinSize(width, length float64) error {
	return l.minSize.Append(MinSize{Width: width, Length: length})
}

// AddProp appends a string property.
func (l *Layer) AddProp(name, value string, typ PropType) error {
	return l.props.Add(name, value, typ)
}

// AddNumProp appends a numeric property.
func (l *Layer) AddNumProp(name string, d float64, value string, typ PropType) error {
	return l.props.AddNum(name, d, value, typ)
}

func (l *Layer) Name() string      { return l.name }
func (l *Layer) Type() string      { return l.typ }
func (l *Layer) LayerType() string { return l.layerType }
func (l *Layer) HasType() bool     { return l.typ != "" }
func (l *Layer) Mask() (int, bool) { return l.mask.Get() }

func (l *Layer) Pitch() (float64, bool)         { return l.pitch.Get() }
func (l *Layer) PitchXY() (Point, bool)         { return l.pitchXY.Get() }
func (l *Layer) Offset() (float64, bool)        { return l.offset.Get() }
func (l *Layer) OffsetXY() (Point, bool)        { return l.offsetXY.Get() }
func (l *Layer) DiagPitch() (float64, bool)     { return l.diagPitch.Get() }
func (l *Layer) DiagPitchXY() (Point, bool)     { return l.diagPitchXY.Get() }
func (l *Layer) Width() (float64, bool)         { return l.width.Get() }
func (l *Layer) Area() (float64, bool)          { return l.area.Get() }
func (l *Layer) DiagWidth() (float64, bool)     { return l.diagWidth.Get() }
func (l *Layer) DiagSpacing() (float64, bool)   { return l.diagSpacing.Get() }
func (l *Layer) WireExtension() (float64, bool) { return l.wireExtension.Get() }
func (l *Layer) MinWidth() (float64, bool)      { return l.minWidth.Get() }
func (l *Layer) MaxWidth() (float64, bool)      { return l.maxWidth.Get() }
func (l *Layer) Direction() string              { return l.direction }
func (l *Layer) HasDirection() bool             { return l.direction != "" }
func (l *Layer) Resistance() (float64, bool)    { return l.resistance.Get() }
func (l *Layer) Capacitance() (float64, bool)   { return l.capacitance.Get() }
func (l *Layer) Height() (float64, bool)        { return l.height.Get() }
func (l *Layer) Thickness() (float64, bool)     { return l.thickness.Get() }
func (l *Layer) Shrinkage() (float64, bool)     { return l.shrinkage.Get() }
func (l *Layer) CapMultiplier() (float64, bool) { return l.capMultiplier.Get() }
func (l *Layer) EdgeCap() (float64, bool)       { return l.edgeCap.Get() }
func (l *Layer) AntennaArea() (float64, bool)   { return l.antennaArea.Get() }
func (l *Layer) AntennaLength() (float64, bool) { return l.antennaLength.Get() }
func (l *Layer) CurrentDensity() (float64, bool) {
	return l.currentDensity.Get()
}
func (l *Layer) ResPerCut() (float64, bool)         { return l.resPerCut.Get() }
func (l *Layer) DiagMinEdgeLength() (float64, bool) { return l.diagMinEdgeLength.Get() }
func (l *Layer) MaxFloatingArea() (float64, bool)   { return l.maxFloatingArea.Get() }
func (l *Layer) Protrusion() (Protrusion, bool)     { return l.protrusion.Get() }

func (l *Layer) SlotWireWidth() (float64, bool)  { return l.slotWireWidth.Get() }
func (l *Layer) SlotWireLength() (float64, bool) { return l.slotWireLength.Get() }
func (l *Layer) SlotWidth() (float64, bool)      { return l.slotWidth.Get() }
func (l *Layer) SlotLength() (float64, bool)     { return l.slotLength.Get() }
func (l *Layer) MaxAdjacentSlotSpacing() (float64, bool) {
	return l.maxAdjacentSlotSpacing.Get()
}
func (l *Layer) MaxCoaxialSlotSpacing() (float64, bool) { return l.maxCoaxialSlotSpacing.Get() }
func (l *Layer) MaxEdgeSlotSpacing() (float64, bool)    { return l.maxEdgeSlotSpacing.Get() }
func (l *Layer) SplitWireWidth() (float64, bool)        { return l.splitWireWidth.Get() }
func (l *Layer) MinimumDensity() (float64, bool)        { return l.minimumDensity.Get() }
func (l *Layer) MaximumDensity() (float64, bool)        { return l.maximumDensity.Get() }
func (l *Layer) DensityCheckStep() (float64, bool)      { return l.densityCheckStep.Get() }
func (l *Layer) FillActiveSpacing() (float64, bool)     { return l.fillActiveSpacing.Get() }

// DensityCheckWindow returns the window length and width.
func (l *Layer) DensityCheckWindow() (length, width float64, ok bool) {
	p, ok := l.densityCheckWindow.Get()
	return p.X, p.Y, ok
}

func (l *Layer) NumCurrentPoints() int { return l.currentPoints.Len() }
func (l *Layer) CurrentPoint(i int) (WidthValue, error) {
	return l.currentPoints.At(i)
}
func (l *Layer) NumResistancePoints() int { return l.resistancePoints.Len() }
func (l *Layer) ResistancePoint(i int) (WidthValue, error) {
	return l.resistancePoints.At(i)
}
func (l *Layer) NumCapacitancePoints() int { return l.capacitancePoints.Len() }
func (l *Layer) CapacitancePoint(i int) (WidthValue, error) {
	return l.capacitancePoints.At(i)
}
func (l *Layer) NumMinSize() int                { return l.minSize.Len() }
func (l *Layer) MinSize(i int) (MinSize, error) { return l.minSize.At(i) }

// Props returns the property list.
func (l *Layer) Props() *Properties { return &l.props }

// NumProps returns the number of properties.
func (l *Layer) NumProps() int { return l.props.Len() }

// AddAntennaModel opens the antenna model of oxide (1-based) and makes it
// current.
func (l *Layer) AddAntennaModel(oxide int) (*AntennaModel, error) {
	return l.antenna.open(oxide)
}

// CurrentAntennaModel returns the model opened last. When none was opened
// it opens OXIDE1 first, so 5.4 style antenna statements without an OXIDE
// land there.
func (l *Layer) CurrentAntennaModel() (*AntennaModel, error) {
	return l.antenna.current()
}

// SetAntennaValue sets a scalar antenna rule on the current model.
func (l *Layer) SetAntennaValue(kind AntennaKind, v float64) error {
	m, err := l.antenna.current()
	if err != nil {
		return err
	}
	return m.SetValue(kind, v)
}

// SetAntennaDUO marks an area factor of the current model DIFFUSEONLY.
func (l *Layer) SetAntennaDUO(kind AntennaKind) error {
	m, err := l.antenna.current()
	if err != nil {
		return err
	}
	return m.SetDUO(kind)
}

// SetAntennaPWL attaches a PWL table to the current model.
func (l *Layer) SetAntennaPWL(kind AntennaKind, pwl *AntennaPWL) error {
	m, err := l.antenna.current()
	if err != nil {
		return err
	}
	return m.SetPWL(kind, pwl)
}

func (l *Layer) SetAntennaCumRoutingPlusCut() error {
	m, err := l.antenna.current()
	if err != nil {
		return err
	}
	m.CumRoutingPlusCut = true
	return nil
}

func (l *Layer) SetAntennaGatePlusDiff(v float64) error {
	m, err := l.antenna.current()
	if err != nil {
		return err
	}
	m.GatePlusDiff.Set(v)
	return nil
}

func (l *Layer) SetAntennaAreaMinusDiff(v float64) error {
	m, err := l.antenna.current()
	if err != nil {
		return err
	}
	m.AreaMinusDiff.Set(v)
	return nil
}

// NumAntennaModel returns the number of populated antenna models.
func (l *Layer) NumAntennaModel() int { return l.antenna.count() }

// AntennaModel returns the i-th populated antenna model in oxide order.
func (l *Layer) AntennaModel(i int) (*AntennaModel, error) { return l.antenna.at(i) }

// AntennaModels yields (oxide, model) for each populated antenna model.
func (l *Layer) AntennaModels() iter.Seq2[int, *AntennaModel] { return l.antenna.all() }

// Print writes the layer as an s-expression.
func (l *Layer) Print(w io.Writer) error {
	d := newDumper(w)
	l.dump(d)
	return d.err()
}

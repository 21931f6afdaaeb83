package lef

// LayerSpacing is one SPACING statement of a layer. Its optional parts are
// filled by the Set methods, which always target the entry opened last by
// Layer.AddSpacing.
type LayerSpacing struct {
	Distance float64

	Name                 string // SAMENET or LAYER name
	LayerStack           bool
	Adjacent             Opt[AdjacentCuts]
	CenterToCenter       bool
	ParallelOverlap      bool
	Area                 Opt[float64] // AREA cutArea
	Range                Opt[SpacingRange]
	LengthThreshold      Opt[float64]
	LengthThresholdRange Opt[MinMax]
	EndOfLine            Opt[EndOfLine]
	ParallelEdge         Opt[ParallelEdge]
	AdjacentExcept       bool
	SameNet              bool
	SameNetPGOnly        bool
	NotchLength          Opt[float64]
	EndOfNotch           Opt[EndOfNotch]
}

// MinMax is an inclusive numeric range.
type MinMax struct {
	Min, Max float64
}

// AdjacentCuts is ADJACENTCUTS n WITHIN distance.
type AdjacentCuts struct {
	Cuts   int
	Within float64
}

// SpacingRange is RANGE min max with its optional qualifiers. Influence
// is unset when no INFLUENCE was given.
type SpacingRange struct {
	MinMax
	UseLengthThreshold bool
	Influence          Opt[float64]
	InfluenceRange     Opt[MinMax]
	RangeRange         Opt[MinMax]
}

// EndOfLine is ENDOFLINE width WITHIN within.
type EndOfLine struct {
	Width, Within float64
}

// ParallelEdge is PARALLELEDGE space WITHIN within [TWOEDGES].
type ParallelEdge struct {
	Space, Within float64
	TwoEdges      bool
}

// EndOfNotch is ENDOFNOTCHWIDTH width NOTCHSPACING spacing NOTCHLENGTH length.
type EndOfNotch struct {
	Width, Spacing, Length float64
}

// SetRange records RANGE min max.
func (s *LayerSpacing) SetRange(min, max float64) {
	s.Range.Set(SpacingRange{MinMax: MinMax{Min: min, Max: max}})
}

func (s *LayerSpacing) rangePtr() (*SpacingRange, error) {
	if !s.Range.ok {
		return nil, misordered("spacing range qualifier", "SetRange")
	}
	return &s.Range.v, nil
}

// SetRangeUseLength marks the range USELENGTHTHRESHOLD.
func (s *LayerSpacing) SetRangeUseLength() error {
	r, err := s.rangePtr()
	if err != nil {
		return err
	}
	r.UseLengthThreshold = true
	return nil
}

// SetRangeInfluence records INFLUENCE value.
func (s *LayerSpacing) SetRangeInfluence(v float64) error {
	r, err := s.rangePtr()
	if err != nil {
		return err
	}
	r.Influence.Set(v)
	return nil
}

// SetRangeInfluenceRange records the RANGE of an INFLUENCE.
func (s *LayerSpacing) SetRangeInfluenceRange(min, max float64) error {
	r, err := s.rangePtr()
	if err != nil {
		return err
	}
	r.InfluenceRange.Set(MinMax{Min: min, Max: max})
	return nil
}

// SetRangeRange records the second RANGE of a range spacing.
func (s *LayerSpacing) SetRangeRange(min, max float64) error {
	r, err := s.rangePtr()
	if err != nil {
		return err
	}
	r.RangeRange.Set(MinMax{Min: min, Max: max})
	return nil
}

// SetParTwoEdges marks the PARALLELEDGE rule TWOEDGES.
func (s *LayerSpacing) SetParTwoEdges() error {
	if !s.ParallelEdge.ok {
		return misordered("SetParTwoEdges", "PARALLELEDGE")
	}
	s.ParallelEdge.v.TwoEdges = true
	return nil
}

// ParallelRow is one WIDTH row of a PARALLELRUNLENGTH table.
type ParallelRow struct {
	Width    float64
	Spacings []float64
}

// ParallelTable is SPACINGTABLE PARALLELRUNLENGTH.
type ParallelTable struct {
	Lengths []float64
	Rows    []ParallelRow
}

// InfluenceEntry is one WIDTH row of an INFLUENCE table.
type InfluenceEntry struct {
	Width, Distance, Spacing float64
}

// TwoWidthsRow is one WIDTH row of a TWOWIDTHS table.
type TwoWidthsRow struct {
	Width    float64
	PRL      Opt[float64]
	Spacings []float64
}

// SpacingTable is a SPACINGTABLE of a layer. Exactly one of Parallel,
// Influence and TwoWidths is filled once the table has content.
type SpacingTable struct {
	Parallel  *ParallelTable
	Influence []InfluenceEntry
	TwoWidths []TwoWidthsRow

	influence bool
	limit     int
}

// IsParallel reports whether the table is PARALLELRUNLENGTH.
func (t *SpacingTable) IsParallel() bool { return t.Parallel != nil }

// IsInfluence reports whether the table is INFLUENCE.
func (t *SpacingTable) IsInfluence() bool { return t.influence }

// IsTwoWidths reports whether the table is TWOWIDTHS.
func (t *SpacingTable) IsTwoWidths() bool { return len(t.TwoWidths) > 0 }

// SetParallelLengths starts a PARALLELRUNLENGTH table with its length
// header.
func (t *SpacingTable) SetParallelLengths(lengths []float64) {
	t.Parallel = &ParallelTable{Lengths: cloneFloats(lengths)}
}

// AddParallelWidth appends a WIDTH row. The row's spacings are padded or
// cut to the number of lengths.
func (t *SpacingTable) AddParallelWidth(width float64, spacings []float64) error {
	if t.Parallel == nil {
		return misordered("AddParallelWidth", "SetParallelLengths")
	}
	if err := room("parallel width row", len(t.Parallel.Rows), 1, t.limit); err != nil {
		return err
	}
	row := make([]float64, len(t.Parallel.Lengths))
	copy(row, spacings)
	t.Parallel.Rows = append(t.Parallel.Rows, ParallelRow{Width: width, Spacings: row})
	return nil
}

// SetInfluence marks the table INFLUENCE.
func (t *SpacingTable) SetInfluence() { t.influence = true }

// AddInfluence appends an INFLUENCE row.
func (t *SpacingTable) AddInfluence(width, distance, spacing float64) error {
	if err := room("influence row", len(t.Influence), 1, t.limit); err != nil {
		return err
	}
	t.influence = true
	t.Influence = append(t.Influence, InfluenceEntry{Width: width, Distance: distance, Spacing: spacing})
	return nil
}

// AddTwoWidths appends a TWOWIDTHS row. prl is the optional PRL value.
func (t *SpacingTable) AddTwoWidths(width float64, prl Opt[float64], spacings []float64) error {
	if err := room("twowidths row", len(t.TwoWidths), 1, t.limit); err != nil {
		return err
	}
	t.TwoWidths = append(t.TwoWidths, TwoWidthsRow{Width: width, PRL: prl, Spacings: cloneFloats(spacings)})
	return nil
}

// OrthoEntry is one WITHIN row of SPACINGTABLE ORTHOGONAL.
type OrthoEntry struct {
	CutWithin float64
	Spacing   float64
}

// ArrayCut is one ARRAYCUTS entry of ARRAYSPACING.
type ArrayCut struct {
	Cuts    int
	Spacing float64
}

// ArraySpacing is the ARRAYSPACING rule of a cut layer.
type ArraySpacing struct {
	LongArray  bool
	ViaWidth   Opt[float64]
	CutSpacing float64
	Arrays     []ArrayCut
}

// MinimumCut is one MINIMUMCUT rule.
type MinimumCut struct {
	Cuts       int
	Width      float64
	Within     Opt[float64]
	Connection string // FROMABOVE or FROMBELOW
	Length     Opt[LengthWithin]
}

// LengthWithin is LENGTH length WITHIN distance.
type LengthWithin struct {
	Length, Within float64
}

// MinStep is one MINSTEP rule.
type MinStep struct {
	Distance     float64
	Type         string // INSIDECORNER, OUTSIDECORNER or STEP
	LengthSum    Opt[float64]
	MaxEdges     Opt[int]
	MinAdjLength Opt[float64]
	MinBetLength Opt[float64]
	XSameCorners bool
}

// MinEnclosedArea is one MINENCLOSEDAREA rule.
type MinEnclosedArea struct {
	Area  float64
	Width Opt[float64]
}

// Enclosure is one ENCLOSURE or PREFERENCLOSURE rule. Rule is ABOVE,
// BELOW or empty.
type Enclosure struct {
	Rule           string
	Overhang1      float64
	Overhang2      float64
	MinWidth       Opt[float64]
	ExceptExtraCut Opt[float64]
	MinLength      Opt[float64]
}

// Protrusion is PROTRUSIONWIDTH width1 LENGTH length WIDTH width2.
type Protrusion struct {
	Width1, Length, Width2 float64
}

// WidthValue is one (width, value) pair of a width indexed table.
type WidthValue struct {
	Width float64
	Value float64
}

// CurrentDensity is an ACCURRENTDENSITY or DCCURRENTDENSITY table. Type is
// PEAK, AVERAGE or RMS for AC and AVERAGE for DC.
type CurrentDensity struct {
	Type         string
	OneEntry     Opt[float64]
	Frequencies  []float64
	Widths       []float64
	CutAreas     []float64
	TableEntries []float64

	limit int
}

// SetOneEntry records the single value form.
func (c *CurrentDensity) SetOneEntry(v float64) { c.OneEntry.Set(v) }

func (c *CurrentDensity) extend(dst *[]float64, what string, v []float64) error {
	if err := room(what, len(*dst), len(v), c.limit); err != nil {
		return err
	}
	*dst = append(*dst, v...)
	return nil
}

// AddFrequencies appends FREQUENCY values.
func (c *CurrentDensity) AddFrequencies(v []float64) error {
	return c.extend(&c.Frequencies, "frequency", v)
}

// AddWidths appends WIDTH values.
func (c *CurrentDensity) AddWidths(v []float64) error { return c.extend(&c.Widths, "width", v) }

// AddCutAreas appends CUTAREA values.
func (c *CurrentDensity) AddCutAreas(v []float64) error {
	return c.extend(&c.CutAreas, "cutarea", v)
}

// AddTableEntries appends TABLEENTRIES values.
func (c *CurrentDensity) AddTableEntries(v []float64) error {
	return c.extend(&c.TableEntries, "tableentries", v)
}

func cloneFloats(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

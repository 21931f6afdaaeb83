package lef

func lastEntry[T any](s *Seq[*T], call, needs string) (*T, error) {
	p, ok := s.Last()
	if !ok {
		return nil, misordered(call, needs)
	}
	return *p, nil
}

func appendEntry[T any](s *Seq[*T], v *T) (*T, error) {
	if err := s.Append(v); err != nil {
		return nil, err
	}
	return v, nil
}

// AddSpacing opens a SPACING entry with minimum distance d.
func (l *Layer) AddSpacing(d float64) (*LayerSpacing, error) {
	return appendEntry(&l.spacings, &LayerSpacing{Distance: d})
}

// CurrentSpacing returns the SPACING entry opened last.
func (l *Layer) CurrentSpacing() (*LayerSpacing, error) {
	return lastEntry(&l.spacings, "spacing qualifier", "AddSpacing")
}

// SetSpacingName records the LAYER or SAMENET name of the current entry.
func (l *Layer) SetSpacingName(name string) error {
	s, err := l.CurrentSpacing()
	if err != nil {
		return err
	}
	s.Name = l.names.Apply(name)
	return nil
}

func (l *Layer) NumSpacing() int { return l.spacings.Len() }

func (l *Layer) Spacing(i int) (*LayerSpacing, error) { return l.spacings.At(i) }

// AddSpacingTable opens a SPACINGTABLE.
func (l *Layer) AddSpacingTable() (*SpacingTable, error) {
	l.nums = l.nums[:0]
	return appendEntry(&l.spacingTables, &SpacingTable{limit: l.limit})
}

// CurrentSpacingTable returns the table opened last.
func (l *Layer) CurrentSpacingTable() (*SpacingTable, error) {
	return lastEntry(&l.spacingTables, "spacing table row", "AddSpacingTable")
}

func (l *Layer) NumSpacingTable() int { return l.spacingTables.Len() }

func (l *Layer) SpacingTable(i int) (*SpacingTable, error) { return l.spacingTables.At(i) }

// AddNumber appends to the number list consumed by the next table call.
func (l *Layer) AddNumber(v float64) error {
	if err := room("table number", len(l.nums), 1, l.limit); err != nil {
		return err
	}
	l.nums = append(l.nums, v)
	return nil
}

func (l *Layer) takeNumbers() []float64 {
	v := cloneFloats(l.nums)
	l.nums = l.nums[:0]
	return v
}

// AddSpParallelLength turns the number list into the PARALLELRUNLENGTH
// header of the current table.
func (l *Layer) AddSpParallelLength() error {
	t, err := l.CurrentSpacingTable()
	if err != nil {
		return err
	}
	t.SetParallelLengths(l.takeNumbers())
	return nil
}

// AddSpParallelWidth starts a WIDTH row of the current table.
func (l *Layer) AddSpParallelWidth(width float64) error {
	if _, err := l.CurrentSpacingTable(); err != nil {
		return err
	}
	l.pendingWidth = width
	return nil
}

// AddSpParallelWidthSpacing closes the WIDTH row with the number list.
func (l *Layer) AddSpParallelWidthSpacing() error {
	t, err := l.CurrentSpacingTable()
	if err != nil {
		return err
	}
	return t.AddParallelWidth(l.pendingWidth, l.takeNumbers())
}

// SetSpTwoWidthsHasPRL records the PRL value of the next TWOWIDTHS row.
func (l *Layer) SetSpTwoWidthsHasPRL(prl float64) { l.twoWidthPRL.Set(prl) }

// AddSpTwoWidths closes a TWOWIDTHS row with the number list.
func (l *Layer) AddSpTwoWidths(width float64) error {
	t, err := l.CurrentSpacingTable()
	if err != nil {
		return err
	}
	err = t.AddTwoWidths(width, l.twoWidthPRL, l.takeNumbers())
	l.twoWidthPRL.Clear()
	return err
}

// SetInfluence marks the current table INFLUENCE.
func (l *Layer) SetInfluence() error {
	t, err := l.CurrentSpacingTable()
	if err != nil {
		return err
	}
	t.SetInfluence()
	return nil
}

// AddSpInfluence appends an INFLUENCE row to the current table.
func (l *Layer) AddSpInfluence(width, distance, spacing float64) error {
	t, err := l.CurrentSpacingTable()
	if err != nil {
		return err
	}
	return t.AddInfluence(width, distance, spacing)
}

// SetSpacingTableOrtho starts an empty SPACINGTABLE ORTHOGONAL.
func (l *Layer) SetSpacingTableOrtho() {
	l.ortho.Reset()
	l.hasOrtho = true
}

// AddSpacingTableOrthoWithin appends a WITHIN row to the ORTHOGONAL table,
// starting the table if SetSpacingTableOrtho was not called.
func (l *Layer) AddSpacingTableOrthoWithin(cutWithin, spacing float64) error {
	l.hasOrtho = true
	return l.ortho.Append(OrthoEntry{CutWithin: cutWithin, Spacing: spacing})
}

// HasSpacingTableOrtho reports whether the layer has an ORTHOGONAL table.
func (l *Layer) HasSpacingTableOrtho() bool { return l.hasOrtho }

// NumOrthogonal returns the number of WITHIN rows of the ORTHOGONAL table.
func (l *Layer) NumOrthogonal() int { return l.ortho.Len() }

// Orthogonal returns WITHIN row i of the ORTHOGONAL table.
func (l *Layer) Orthogonal(i int) (OrthoEntry, error) { return l.ortho.At(i) }

func (l *Layer) arraySpacingPtr() *ArraySpacing {
	if l.arraySpacing == nil {
		l.arraySpacing = &ArraySpacing{}
	}
	return l.arraySpacing
}

func (l *Layer) SetArraySpacingLongArray()          { l.arraySpacingPtr().LongArray = true }
func (l *Layer) SetArraySpacingWidth(w float64)     { l.arraySpacingPtr().ViaWidth.Set(w) }
func (l *Layer) SetArraySpacingCut(spacing float64) { l.arraySpacingPtr().CutSpacing = spacing }

// AddArraySpacingArray appends an ARRAYCUTS entry.
func (l *Layer) AddArraySpacingArray(cuts int, spacing float64) error {
	a := l.arraySpacingPtr()
	if err := room("arraycuts", len(a.Arrays), 1, l.limit); err != nil {
		return err
	}
	a.Arrays = append(a.Arrays, ArrayCut{Cuts: cuts, Spacing: spacing})
	return nil
}

// ArraySpacing returns the ARRAYSPACING rule, nil when absent.
func (l *Layer) ArraySpacing() *ArraySpacing { return l.arraySpacing }

// AddMinimumCut opens a MINIMUMCUT rule.
func (l *Layer) AddMinimumCut(cuts int, width float64) (*MinimumCut, error) {
	return appendEntry(&l.minimumCuts, &MinimumCut{Cuts: cuts, Width: width})
}

// CurrentMinimumCut returns the MINIMUMCUT rule opened last.
func (l *Layer) CurrentMinimumCut() (*MinimumCut, error) {
	return lastEntry(&l.minimumCuts, "minimumcut qualifier", "AddMinimumCut")
}

func (l *Layer) NumMinimumCut() int { return l.minimumCuts.Len() }

func (l *Layer) MinimumCut(i int) (*MinimumCut, error) { return l.minimumCuts.At(i) }

// AddMinStep opens a MINSTEP rule.
func (l *Layer) AddMinStep(distance float64) (*MinStep, error) {
	return appendEntry(&l.minSteps, &MinStep{Distance: distance})
}

// CurrentMinStep returns the MINSTEP rule opened last.
func (l *Layer) CurrentMinStep() (*MinStep, error) {
	return lastEntry(&l.minSteps, "minstep qualifier", "AddMinStep")
}

func (l *Layer) NumMinStep() int { return l.minSteps.Len() }

func (l *Layer) MinStep(i int) (*MinStep, error) { return l.minSteps.At(i) }

// AddMinEnclosedArea opens a MINENCLOSEDAREA rule.
func (l *Layer) AddMinEnclosedArea(area float64) (*MinEnclosedArea, error) {
	return appendEntry(&l.minEnclosedAreas, &MinEnclosedArea{Area: area})
}

// AddMinEnclosedAreaWidth sets the WIDTH of the rule opened last.
func (l *Layer) AddMinEnclosedAreaWidth(width float64) error {
	m, err := lastEntry(&l.minEnclosedAreas, "AddMinEnclosedAreaWidth", "AddMinEnclosedArea")
	if err != nil {
		return err
	}
	m.Width.Set(width)
	return nil
}

func (l *Layer) NumMinEnclosedArea() int { return l.minEnclosedAreas.Len() }

func (l *Layer) MinEnclosedArea(i int) (*MinEnclosedArea, error) {
	return l.minEnclosedAreas.At(i)
}

// AddEnclosure opens an ENCLOSURE rule. rule is ABOVE, BELOW or "".
func (l *Layer) AddEnclosure(rule string, overhang1, overhang2 float64) (*Enclosure, error) {
	return appendEntry(&l.enclosures, &Enclosure{Rule: rule, Overhang1: overhang1, Overhang2: overhang2})
}

// CurrentEnclosure returns the ENCLOSURE rule opened last.
func (l *Layer) CurrentEnclosure() (*Enclosure, error) {
	return lastEntry(&l.enclosures, "enclosure qualifier", "AddEnclosure")
}

func (l *Layer) NumEnclosure() int { return l.enclosures.Len() }

func (l *Layer) Enclosure(i int) (*Enclosure, error) { return l.enclosures.At(i) }

// AddPreferEnclosure opens a PREFERENCLOSURE rule.
func (l *Layer) AddPreferEnclosure(rule string, overhang1, overhang2 float64) (*Enclosure, error) {
	return appendEntry(&l.preferEnclosures, &Enclosure{Rule: rule, Overhang1: overhang1, Overhang2: overhang2})
}

// CurrentPreferEnclosure returns the PREFERENCLOSURE rule opened last.
func (l *Layer) CurrentPreferEnclosure() (*Enclosure, error) {
	return lastEntry(&l.preferEnclosures, "preferenclosure qualifier", "AddPreferEnclosure")
}

func (l *Layer) NumPreferEnclosure() int { return l.preferEnclosures.Len() }

func (l *Layer) PreferEnclosure(i int) (*Enclosure, error) { return l.preferEnclosures.At(i) }

// AddAcCurrentDensity opens an ACCURRENTDENSITY table of the given type.
func (l *Layer) AddAcCurrentDensity(typ string) (*CurrentDensity, error) {
	l.nums = l.nums[:0]
	return appendEntry(&l.acCurrents, &CurrentDensity{Type: typ, limit: l.limit})
}

// AddDcCurrentDensity opens a DCCURRENTDENSITY table.
func (l *Layer) AddDcCurrentDensity(typ string) (*CurrentDensity, error) {
	l.nums = l.nums[:0]
	return appendEntry(&l.dcCurrents, &CurrentDensity{Type: typ, limit: l.limit})
}

// CurrentAcCurrentDensity returns the AC table opened last.
func (l *Layer) CurrentAcCurrentDensity() (*CurrentDensity, error) {
	return lastEntry(&l.acCurrents, "accurrentdensity row", "AddAcCurrentDensity")
}

// CurrentDcCurrentDensity returns the DC table opened last.
func (l *Layer) CurrentDcCurrentDensity() (*CurrentDensity, error) {
	return lastEntry(&l.dcCurrents, "dccurrentdensity row", "AddDcCurrentDensity")
}

// densityRow hands the number list to one row kind of the current table.
func (l *Layer) densityRow(ac bool, add func(*CurrentDensity, []float64) error) error {
	cur := l.CurrentDcCurrentDensity
	if ac {
		cur = l.CurrentAcCurrentDensity
	}
	c, err := cur()
	if err != nil {
		return err
	}
	return add(c, l.takeNumbers())
}

func (l *Layer) AddAcFrequency() error {
	return l.densityRow(true, (*CurrentDensity).AddFrequencies)
}
func (l *Layer) AddAcWidth() error {
	return l.densityRow(true, (*CurrentDensity).AddWidths)
}
func (l *Layer) AddAcCutArea() error {
	return l.densityRow(true, (*CurrentDensity).AddCutAreas)
}
func (l *Layer) AddAcTableEntry() error {
	return l.densityRow(true, (*CurrentDensity).AddTableEntries)
}
func (l *Layer) AddDcWidth() error {
	return l.densityRow(false, (*CurrentDensity).AddWidths)
}
func (l *Layer) AddDcCutArea() error {
	return l.densityRow(false, (*CurrentDensity).AddCutAreas)
}
func (l *Layer) AddDcTableEntry() error {
	return l.densityRow(false, (*CurrentDensity).AddTableEntries)
}

func (l *Layer) NumAcCurrentDensity() int { return l.acCurrents.Len() }
func (l *Layer) NumDcCurrentDensity() int { return l.dcCurrents.Len() }

func (l *Layer) AcCurrentDensity(i int) (*CurrentDensity, error) { return l.acCurrents.At(i) }
func (l *Layer) DcCurrentDensity(i int) (*CurrentDensity, error) { return l.dcCurrents.At(i) }

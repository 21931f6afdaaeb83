package lef

func (l *Layer) dump(d *dumper) {
	d.open("layer", l.name)
	d.str("type", l.typ)
	d.str("layertype", l.layerType)
	optLeaf(d, "mask", l.mask)
	optLeaf(d, "pitch", l.pitch)
	if p, ok := l.pitchXY.Get(); ok {
		d.leaf("pitch", p.X, p.Y)
	}
	optLeaf(d, "offset", l.offset)
	if p, ok := l.offsetXY.Get(); ok {
		d.leaf("offset", p.X, p.Y)
	}
	optLeaf(d, "diagpitch", l.diagPitch)
	if p, ok := l.diagPitchXY.Get(); ok {
		d.leaf("diagpitch", p.X, p.Y)
	}
	optLeaf(d, "width", l.width)
	optLeaf(d, "area", l.area)
	optLeaf(d, "diagwidth", l.diagWidth)
	optLeaf(d, "diagspacing", l.diagSpacing)
	optLeaf(d, "wireextension", l.wireExtension)
	optLeaf(d, "minwidth", l.minWidth)
	optLeaf(d, "maxwidth", l.maxWidth)
	d.str("direction", l.direction)
	optLeaf(d, "resistance", l.resistance)
	optLeaf(d, "capacitance", l.capacitance)
	optLeaf(d, "height", l.height)
	optLeaf(d, "thickness", l.thickness)
	optLeaf(d, "shrinkage", l.shrinkage)
	optLeaf(d, "capmultiplier", l.capMultiplier)
	optLeaf(d, "edgecapacitance", l.edgeCap)
	optLeaf(d, "antennaarea", l.antennaArea)
	optLeaf(d, "antennalength", l.antennaLength)
	optLeaf(d, "currentden", l.currentDensity)
	dumpWidthValues(d, "currentden_points", &l.currentPoints)
	dumpWidthValues(d, "resistance_points", &l.resistancePoints)
	dumpWidthValues(d, "capacitance_points", &l.capacitancePoints)
	optLeaf(d, "resistance_percut", l.resPerCut)
	optLeaf(d, "diagminedgelength", l.diagMinEdgeLength)
	optLeaf(d, "maxfloatingarea", l.maxFloatingArea)
	if p, ok := l.protrusion.Get(); ok {
		d.leaf("protrusionwidth", p.Width1, p.Length, p.Width2)
	}
	for _, m := range l.minSize.items {
		d.leaf("minsize", m.Width, m.Length)
	}
	optLeaf(d, "slotwirewidth", l.slotWireWidth)
	optLeaf(d, "slotwirelength", l.slotWireLength)
	optLeaf(d, "slotwidth", l.slotWidth)
	optLeaf(d, "slotlength", l.slotLength)
	optLeaf(d, "maxadjacentslotspacing", l.maxAdjacentSlotSpacing)
	optLeaf(d, "maxcoaxialslotspacing", l.maxCoaxialSlotSpacing)
	optLeaf(d, "maxedgeslotspacing", l.maxEdgeSlotSpacing)
	optLeaf(d, "splitwirewidth", l.splitWireWidth)
	optLeaf(d, "minimumdensity", l.minimumDensity)
	optLeaf(d, "maximumdensity", l.maximumDensity)
	if p, ok := l.densityCheckWindow.Get(); ok {
		d.leaf("densitycheckwindow", p.X, p.Y)
	}
	optLeaf(d, "densitycheckstep", l.densityCheckStep)
	optLeaf(d, "fillactivespacing", l.fillActiveSpacing)

	for _, s := range l.spacings.items {
		dumpLayerSpacing(d, s)
	}
	for _, t := range l.spacingTables.items {
		dumpSpacingTable(d, t)
	}
	if l.hasOrtho {
		d.open("spacingtable_orthogonal")
		for _, o := range l.ortho.items {
			d.leaf("within", o.CutWithin, o.Spacing)
		}
		d.close()
	}
	if a := l.arraySpacing; a != nil {
		d.open("arrayspacing")
		d.flag("longarray", a.LongArray)
		optLeaf(d, "width", a.ViaWidth)
		d.leaf("cutspacing", a.CutSpacing)
		for _, c := range a.Arrays {
			d.leaf("arraycuts", c.Cuts, c.Spacing)
		}
		d.close()
	}
	for _, m := range l.minimumCuts.items {
		d.open("minimumcut", m.Cuts, m.Width)
		optLeaf(d, "within", m.Within)
		d.str("connection", m.Connection)
		if lw, ok := m.Length.Get(); ok {
			d.leaf("length", lw.Length, lw.Within)
		}
		d.close()
	}
	for _, m := range l.minSteps.items {
		d.open("minstep", m.Distance)
		d.str("type", m.Type)
		optLeaf(d, "lengthsum", m.LengthSum)
		optLeaf(d, "maxedges", m.MaxEdges)
		optLeaf(d, "minadjacentlength", m.MinAdjLength)
		optLeaf(d, "minbetweenlength", m.MinBetLength)
		d.flag("exceptsamecorners", m.XSameCorners)
		d.close()
	}
	for _, m := range l.minEnclosedAreas.items {
		d.open("minenclosedarea", m.Area)
		optLeaf(d, "width", m.Width)
		d.close()
	}
	for _, e := range l.enclosures.items {
		dumpEnclosure(d, "enclosure", e)
	}
	for _, e := range l.preferEnclosures.items {
		dumpEnclosure(d, "preferenclosure", e)
	}
	for _, c := range l.acCurrents.items {
		dumpCurrentDensity(d, "accurrentdensity", c)
	}
	for _, c := range l.dcCurrents.items {
		dumpCurrentDensity(d, "dccurrentdensity", c)
	}
	for _, m := range l.antenna.all() {
		dumpAntennaModel(d, m)
	}
	d.properties(&l.props)
	d.close()
}

func dumpWidthValues(d *dumper, head string, s *Seq[WidthValue]) {
	if s.Len() == 0 {
		return
	}
	args := make([]any, 0, 2*s.Len())
	for _, p := range s.items {
		args = append(args, p.Width, p.Value)
	}
	d.leaf(head, args...)
}

func floatArgs(v []float64) []any {
	args := make([]any, len(v))
	for i, f := range v {
		args[i] = f
	}
	return args
}

func dumpLayerSpacing(d *dumper, s *LayerSpacing) {
	d.open("spacing", s.Distance)
	d.str("name", s.Name)
	d.flag("stack", s.LayerStack)
	if a, ok := s.Adjacent.Get(); ok {
		d.leaf("adjacentcuts", a.Cuts, a.Within)
	}
	d.flag("centertocenter", s.CenterToCenter)
	d.flag("paralleloverlap", s.ParallelOverlap)
	optLeaf(d, "area", s.Area)
	if r, ok := s.Range.Get(); ok {
		d.open("range", r.Min, r.Max)
		d.flag("uselengththreshold", r.UseLengthThreshold)
		optLeaf(d, "influence", r.Influence)
		if m, ok := r.InfluenceRange.Get(); ok {
			d.leaf("influence_range", m.Min, m.Max)
		}
		if m, ok := r.RangeRange.Get(); ok {
			d.leaf("range", m.Min, m.Max)
		}
		d.close()
	}
	optLeaf(d, "lengththreshold", s.LengthThreshold)
	if m, ok := s.LengthThresholdRange.Get(); ok {
		d.leaf("lengththreshold_range", m.Min, m.Max)
	}
	if e, ok := s.EndOfLine.Get(); ok {
		d.leaf("endofline", e.Width, e.Within)
	}
	if p, ok := s.ParallelEdge.Get(); ok {
		d.leaf("paralleledge", p.Space, p.Within, p.TwoEdges)
	}
	d.flag("adjacentexcept", s.AdjacentExcept)
	d.flag("samenet", s.SameNet)
	d.flag("pgonly", s.SameNetPGOnly)
	optLeaf(d, "notchlength", s.NotchLength)
	if e, ok := s.EndOfNotch.Get(); ok {
		d.leaf("endofnotchwidth", e.Width, e.Spacing, e.Length)
	}
	d.close()
}

func dumpSpacingTable(d *dumper, t *SpacingTable) {
	d.open("spacingtable")
	if p := t.Parallel; p != nil {
		d.open("parallelrunlength", floatArgs(p.Lengths)...)
		for _, r := range p.Rows {
			d.leaf("width", append([]any{r.Width}, floatArgs(r.Spacings)...)...)
		}
		d.close()
	}
	if t.influence {
		d.open("influence")
		for _, e := range t.Influence {
			d.leaf("width", e.Width, e.Distance, e.Spacing)
		}
		d.close()
	}
	if len(t.TwoWidths) > 0 {
		d.open("twowidths")
		for _, r := range t.TwoWidths {
			args := []any{r.Width}
			if prl, ok := r.PRL.Get(); ok {
				args = append(args, "PRL", prl)
			}
			d.leaf("width", append(args, floatArgs(r.Spacings)...)...)
		}
		d.close()
	}
	d.close()
}

func dumpEnclosure(d *dumper, head string, e *Enclosure) {
	d.open(head, e.Overhang1, e.Overhang2)
	d.str("rule", e.Rule)
	optLeaf(d, "width", e.MinWidth)
	optLeaf(d, "exceptextracut", e.ExceptExtraCut)
	optLeaf(d, "length", e.MinLength)
	d.close()
}

func dumpCurrentDensity(d *dumper, head string, c *CurrentDensity) {
	d.open(head, c.Type)
	optLeaf(d, "value", c.OneEntry)
	if len(c.Frequencies) > 0 {
		d.leaf("frequency", floatArgs(c.Frequencies)...)
	}
	if len(c.Widths) > 0 {
		d.leaf("width", floatArgs(c.Widths)...)
	}
	if len(c.CutAreas) > 0 {
		d.leaf("cutarea", floatArgs(c.CutAreas)...)
	}
	if len(c.TableEntries) > 0 {
		d.leaf("tableentries", floatArgs(c.TableEntries)...)
	}
	d.close()
}

func dumpPWL(d *dumper, head string, p *AntennaPWL) {
	if p == nil {
		return
	}
	args := make([]any, 0, 2*p.NumPWL())
	for _, pt := range p.points.items {
		args = append(args, pt.Diffusion, pt.Ratio)
	}
	d.leaf(head, args...)
}

func dumpAntennaModel(d *dumper, m *AntennaModel) {
	d.open("antennamodel", m.Oxide)
	optLeaf(d, "antennaarearatio", m.AreaRatio)
	optLeaf(d, "antennadiffarearatio", m.DiffAreaRatio)
	dumpPWL(d, "antennadiffarearatio_pwl", m.DiffAreaRatioPWL)
	optLeaf(d, "antennacumarearatio", m.CumAreaRatio)
	optLeaf(d, "antennacumdiffarearatio", m.CumDiffAreaRatio)
	dumpPWL(d, "antennacumdiffarearatio_pwl", m.CumDiffAreaRatioPWL)
	optLeaf(d, "antennaareafactor", m.AreaFactor)
	d.flag("antennaareafactor_diffuseonly", m.AreaFactorDUO)
	optLeaf(d, "antennasidearearatio", m.SideAreaRatio)
	optLeaf(d, "antennadiffsidearearatio", m.DiffSideAreaRatio)
	dumpPWL(d, "antennadiffsidearearatio_pwl", m.DiffSideAreaRatioPWL)
	optLeaf(d, "antennacumsidearearatio", m.CumSideAreaRatio)
	optLeaf(d, "antennacumdiffsidearearatio", m.CumDiffSideAreaRatio)
	dumpPWL(d, "antennacumdiffsidearearatio_pwl", m.CumDiffSideAreaRatioPWL)
	optLeaf(d, "antennasideareafactor", m.SideAreaFactor)
	d.flag("antennasideareafactor_diffuseonly", m.SideAreaFactorDUO)
	d.flag("antennacumroutingpluscut", m.CumRoutingPlusCut)
	optLeaf(d, "antennagateplusdiff", m.GatePlusDiff)
	optLeaf(d, "antennaareaminusdiff", m.AreaMinusDiff)
	dumpPWL(d, "antennaareadiffreducepwl", m.AreaDiffReducePWL)
	d.close()
}

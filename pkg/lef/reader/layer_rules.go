package reader

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// tableNumbers feeds the numbers at the cursor to the layer's number list.
func (st *state) tableNumbers(pos lexer.Position, l *lef.Layer) error {
	for _, v := range st.s.numbers() {
		if err := st.check(pos, l.AddNumber(v)); err != nil {
			return err
		}
	}
	return nil
}

// layerSpacing reads SPACING d followed by any of its qualifiers.
func (st *state) layerSpacing(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	d, err := s.number()
	if err != nil {
		return err
	}
	sp, err := l.AddSpacing(d)
	if err != nil {
		return st.check(pos, err)
	}
	for !s.atEnd() {
		if s.eof() {
			return s.end()
		}
		qpos := s.pos()
		kw := s.peekKeyword()
		s.next()
		switch kw {
		case "LAYER":
			name, err := s.word()
			if err != nil {
				return err
			}
			if err := st.check(qpos, l.SetSpacingName(name)); err != nil {
				return err
			}
			sp.LayerStack = s.accept("STACK")
		case "ADJACENTCUTS":
			n, err := s.integer()
			if err != nil {
				return err
			}
			if err := s.expect("WITHIN"); err != nil {
				return err
			}
			w, err := s.number()
			if err != nil {
				return err
			}
			sp.Adjacent.Set(lef.AdjacentCuts{Cuts: n, Within: w})
			sp.AdjacentExcept = s.accept("EXCEPTSAMEPGNET")
		case "CENTERTOCENTER":
			sp.CenterToCenter = true
		case "SAMENET":
			sp.SameNet = true
			sp.SameNetPGOnly = s.accept("PGONLY")
		case "PARALLELOVERLAP":
			sp.ParallelOverlap = true
		case "AREA":
			v, err := s.number()
			if err != nil {
				return err
			}
			sp.Area.Set(v)
		case "RANGE":
			if err := st.spacingRange(sp); err != nil {
				return err
			}
		case "LENGTHTHRESHOLD":
			v, err := s.number()
			if err != nil {
				return err
			}
			sp.LengthThreshold.Set(v)
			if s.accept("RANGE") {
				lo, hi, err := s.point()
				if err != nil {
					return err
				}
				sp.LengthThresholdRange.Set(lef.MinMax{Min: lo, Max: hi})
			}
		case "ENDOFLINE":
			w, err := s.number()
			if err != nil {
				return err
			}
			if err := s.expect("WITHIN"); err != nil {
				return err
			}
			within, err := s.number()
			if err != nil {
				return err
			}
			sp.EndOfLine.Set(lef.EndOfLine{Width: w, Within: within})
			if s.accept("PARALLELEDGE") {
				space, err := s.number()
				if err != nil {
					return err
				}
				if err := s.expect("WITHIN"); err != nil {
					return err
				}
				pw, err := s.number()
				if err != nil {
					return err
				}
				sp.ParallelEdge.Set(lef.ParallelEdge{Space: space, Within: pw})
				if s.accept("TWOEDGES") {
					if err := st.check(qpos, sp.SetParTwoEdges()); err != nil {
						return err
					}
				}
			}
		case "NOTCHLENGTH":
			v, err := s.number()
			if err != nil {
				return err
			}
			sp.NotchLength.Set(v)
		case "ENDOFNOTCHWIDTH":
			var n lef.EndOfNotch
			if n.Width, err = s.number(); err != nil {
				return err
			}
			if err := s.expect("NOTCHSPACING"); err != nil {
				return err
			}
			if n.Spacing, err = s.number(); err != nil {
				return err
			}
			if err := s.expect("NOTCHLENGTH"); err != nil {
				return err
			}
			if n.Length, err = s.number(); err != nil {
				return err
			}
			sp.EndOfNotch.Set(n)
		default:
			return errorAt(qpos, "unexpected SPACING qualifier %s", describe(st.s.toks[st.s.i-1]))
		}
	}
	return s.end()
}

func (st *state) spacingRange(sp *lef.LayerSpacing) error {
	s := st.s
	pos := s.pos()
	lo, hi, err := s.point()
	if err != nil {
		return err
	}
	sp.SetRange(lo, hi)
	switch {
	case s.accept("USELENGTHTHRESHOLD"):
		return st.check(pos, sp.SetRangeUseLength())
	case s.accept("INFLUENCE"):
		v, err := s.number()
		if err != nil {
			return err
		}
		if err := st.check(pos, sp.SetRangeInfluence(v)); err != nil {
			return err
		}
		if s.accept("RANGE") {
			a, b, err := s.point()
			if err != nil {
				return err
			}
			return st.check(pos, sp.SetRangeInfluenceRange(a, b))
		}
	case s.accept("RANGE"):
		a, b, err := s.point()
		if err != nil {
			return err
		}
		return st.check(pos, sp.SetRangeRange(a, b))
	}
	return nil
}

// spacingTable reads one of the SPACINGTABLE forms. Rows feed the layer's
// number list the same way a callback parser does.
func (st *state) spacingTable(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	if s.accept("ORTHOGONAL") {
		l.SetSpacingTableOrtho()
		for s.accept("WITHIN") {
			within, err := s.number()
			if err != nil {
				return err
			}
			if err := s.expect("SPACING"); err != nil {
				return err
			}
			sp, err := s.number()
			if err != nil {
				return err
			}
			if err := st.check(pos, l.AddSpacingTableOrthoWithin(within, sp)); err != nil {
				return err
			}
		}
		return s.end()
	}
	if _, err := l.AddSpacingTable(); err != nil {
		return st.check(pos, err)
	}
	switch kw := s.peekKeyword(); kw {
	case "PARALLELRUNLENGTH":
		s.next()
		if err := st.tableNumbers(pos, l); err != nil {
			return err
		}
		if err := st.check(pos, l.AddSpParallelLength()); err != nil {
			return err
		}
		for s.accept("WIDTH") {
			w, err := s.number()
			if err != nil {
				return err
			}
			if err := st.check(pos, l.AddSpParallelWidth(w)); err != nil {
				return err
			}
			if err := st.tableNumbers(pos, l); err != nil {
				return err
			}
			if err := st.check(pos, l.AddSpParallelWidthSpacing()); err != nil {
				return err
			}
		}
	case "TWOWIDTHS":
		s.next()
		for s.accept("WIDTH") {
			w, err := s.number()
			if err != nil {
				return err
			}
			if s.accept("PRL") {
				prl, err := s.number()
				if err != nil {
					return err
				}
				l.SetSpTwoWidthsHasPRL(prl)
			}
			if err := st.tableNumbers(pos, l); err != nil {
				return err
			}
			if err := st.check(pos, l.AddSpTwoWidths(w)); err != nil {
				return err
			}
		}
	case "INFLUENCE":
		s.next()
		if err := st.check(pos, l.SetInfluence()); err != nil {
			return err
		}
		for s.accept("WIDTH") {
			w, err := s.number()
			if err != nil {
				return err
			}
			if err := s.expect("WITHIN"); err != nil {
				return err
			}
			d, err := s.number()
			if err != nil {
				return err
			}
			if err := s.expect("SPACING"); err != nil {
				return err
			}
			sp, err := s.number()
			if err != nil {
				return err
			}
			if err := st.check(pos, l.AddSpInfluence(w, d, sp)); err != nil {
				return err
			}
		}
	default:
		return errorAt(s.pos(), "unknown SPACINGTABLE kind %s", describe(s.peek()))
	}
	return s.end()
}

// arraySpacing reads
//
//	ARRAYSPACING [LONGARRAY] [WIDTH w] CUTSPACING s {ARRAYCUTS n SPACING s} ;
func (st *state) arraySpacing(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	if s.accept("LONGARRAY") {
		l.SetArraySpacingLongArray()
	}
	if s.accept("WIDTH") {
		w, err := s.number()
		if err != nil {
			return err
		}
		l.SetArraySpacingWidth(w)
	}
	if err := s.expect("CUTSPACING"); err != nil {
		return err
	}
	cut, err := s.number()
	if err != nil {
		return err
	}
	l.SetArraySpacingCut(cut)
	for s.accept("ARRAYCUTS") {
		n, err := s.integer()
		if err != nil {
			return err
		}
		if err := s.expect("SPACING"); err != nil {
			return err
		}
		sp, err := s.number()
		if err != nil {
			return err
		}
		if err := st.check(pos, l.AddArraySpacingArray(n, sp)); err != nil {
			return err
		}
	}
	return s.end()
}

func (st *state) minimumCut(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	n, err := s.integer()
	if err != nil {
		return err
	}
	if err := s.expect("WIDTH"); err != nil {
		return err
	}
	w, err := s.number()
	if err != nil {
		return err
	}
	mc, err := l.AddMinimumCut(n, w)
	if err != nil {
		return st.check(pos, err)
	}
	if s.accept("WITHIN") {
		v, err := s.number()
		if err != nil {
			return err
		}
		mc.Within.Set(v)
	}
	if kw := s.peekKeyword(); kw == "FROMABOVE" || kw == "FROMBELOW" {
		s.next()
		mc.Connection = kw
	}
	if s.accept("LENGTH") {
		length, err := s.number()
		if err != nil {
			return err
		}
		if err := s.expect("WITHIN"); err != nil {
			return err
		}
		within, err := s.number()
		if err != nil {
			return err
		}
		mc.Length.Set(lef.LengthWithin{Length: length, Within: within})
	}
	return s.end()
}

func (st *state) minStep(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	d, err := s.number()
	if err != nil {
		return err
	}
	ms, err := l.AddMinStep(d)
	if err != nil {
		return st.check(pos, err)
	}
	for !s.atEnd() && !s.eof() {
		qpos := s.pos()
		switch kw := s.peekKeyword(); kw {
		case "INSIDECORNER", "OUTSIDECORNER", "STEP":
			s.next()
			ms.Type = kw
		case "LENGTHSUM":
			s.next()
			v, err := s.number()
			if err != nil {
				return err
			}
			ms.LengthSum.Set(v)
		case "MAXEDGES":
			s.next()
			n, err := s.integer()
			if err != nil {
				return err
			}
			ms.MaxEdges.Set(n)
		case "MINADJACENTLENGTH":
			s.next()
			v, err := s.number()
			if err != nil {
				return err
			}
			ms.MinAdjLength.Set(v)
		case "MINBETWEENLENGTH":
			s.next()
			v, err := s.number()
			if err != nil {
				return err
			}
			ms.MinBetLength.Set(v)
		case "EXCEPTSAMECORNERS":
			s.next()
			ms.XSameCorners = true
		default:
			return errorAt(qpos, "unexpected MINSTEP qualifier %s", describe(s.peek()))
		}
	}
	return s.end()
}

func (st *state) minEnclosedArea(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	a, err := s.number()
	if err != nil {
		return err
	}
	if _, err := l.AddMinEnclosedArea(a); err != nil {
		return st.check(pos, err)
	}
	if s.accept("WIDTH") {
		w, err := s.number()
		if err != nil {
			return err
		}
		if err := st.check(pos, l.AddMinEnclosedAreaWidth(w)); err != nil {
			return err
		}
	}
	return s.end()
}

// enclosure reads [ABOVE|BELOW] o1 o2 [WIDTH w [EXCEPTEXTRACUT c] | LENGTH l].
func (st *state) enclosure(l *lef.Layer, prefer bool) error {
	s := st.s
	pos := s.pos()
	var rule string
	if kw := s.peekKeyword(); kw == "ABOVE" || kw == "BELOW" {
		s.next()
		rule = kw
	}
	o1, o2, err := s.point()
	if err != nil {
		return err
	}
	add := l.AddEnclosure
	if prefer {
		add = l.AddPreferEnclosure
	}
	enc, err := add(rule, o1, o2)
	if err != nil {
		return st.check(pos, err)
	}
	switch {
	case s.accept("WIDTH"):
		w, err := s.number()
		if err != nil {
			return err
		}
		enc.MinWidth.Set(w)
		if !prefer && s.accept("EXCEPTEXTRACUT") {
			c, err := s.number()
			if err != nil {
				return err
			}
			enc.ExceptExtraCut.Set(c)
		}
	case !prefer && s.accept("LENGTH"):
		v, err := s.number()
		if err != nil {
			return err
		}
		enc.MinLength.Set(v)
	}
	return s.end()
}

// currentDensity reads an ACCURRENTDENSITY or DCCURRENTDENSITY statement:
// either a single value or a block of FREQUENCY, WIDTH, CUTAREA and
// TABLEENTRIES rows.
func (st *state) currentDensity(l *lef.Layer, ac bool) error {
	s := st.s
	pos := s.pos()
	typ, err := s.word()
	if err != nil {
		return err
	}
	open := l.AddDcCurrentDensity
	if ac {
		open = l.AddAcCurrentDensity
	}
	cd, err := open(typ)
	if err != nil {
		return st.check(pos, err)
	}
	if s.isNumber() {
		v, _ := s.number()
		cd.SetOneEntry(v)
		return s.end()
	}
	rows := map[string]func() error{
		"WIDTH":        l.AddDcWidth,
		"CUTAREA":      l.AddDcCutArea,
		"TABLEENTRIES": l.AddDcTableEntry,
	}
	if ac {
		rows = map[string]func() error{
			"FREQUENCY":    l.AddAcFrequency,
			"WIDTH":        l.AddAcWidth,
			"CUTAREA":      l.AddAcCutArea,
			"TABLEENTRIES": l.AddAcTableEntry,
		}
	}
	for {
		rpos := s.pos()
		add, ok := rows[s.peekKeyword()]
		if !ok {
			return nil
		}
		s.next()
		if err := st.tableNumbers(rpos, l); err != nil {
			return err
		}
		if err := st.check(rpos, add()); err != nil {
			return err
		}
		if err := s.end(); err != nil {
			return err
		}
	}
}

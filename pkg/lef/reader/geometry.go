package reader

import (
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// geometries reads the body of a PORT or OBS block through its END.
// CLASS is only accepted in a PORT.
func (st *state) geometries(g *lef.Geometries, where string, port bool) error {
	s := st.s
	for !s.accept("END") {
		if s.eof() {
			return errorAt(s.pos(), "%s is not closed", where)
		}
		pos := s.pos()
		kw := s.peekKeyword()
		var err error
		switch {
		case kw == "CLASS" && port:
			s.next()
			var class string
			if class, err = s.word(); err == nil {
				err = st.check(pos, g.AddClass(class))
			}
		case kw == "LAYER":
			s.next()
			err = st.geomLayer(g)
		case kw == "WIDTH":
			s.next()
			var w float64
			if w, err = s.number(); err == nil {
				err = st.check(pos, g.AddWidth(w))
			}
		case kw == "PATH" || kw == "POLYGON":
			s.next()
			err = st.geomPoints(g, kw)
		case kw == "RECT":
			s.next()
			err = st.geomRect(g)
		case kw == "VIA":
			s.next()
			err = st.geomVia(g)
		default:
			if err := st.unknown(where); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	return nil
}

// geomLayer reads name [EXCEPTPGNET] [SPACING s | DESIGNRULEWIDTH w] [MASK n].
func (st *state) geomLayer(g *lef.Geometries) error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	if err := st.check(pos, g.AddLayer(name)); err != nil {
		return err
	}
	for !s.atEnd() && !s.eof() {
		qpos := s.pos()
		switch s.peekKeyword() {
		case "EXCEPTPGNET":
			s.next()
			err = g.AddLayerExceptPgNet()
		case "SPACING":
			s.next()
			var v float64
			if v, err = s.number(); err == nil {
				err = g.AddLayerMinSpacing(v)
			}
		case "DESIGNRULEWIDTH":
			s.next()
			var v float64
			if v, err = s.number(); err == nil {
				err = g.AddLayerRuleWidth(v)
			}
		case "MASK":
			s.next()
			var n int
			if n, err = s.integer(); err == nil {
				err = g.AddLayerMask(n)
			}
		default:
			return errorAt(qpos, "unexpected LAYER qualifier %s", describe(s.peek()))
		}
		if err != nil {
			return st.check(qpos, err)
		}
	}
	return nil
}

// shapePrefix reads the [MASK n] [ITERATE] prefix of a shape in either
// order.
func (st *state) shapePrefix() (mask int, iterate bool, err error) {
	s := st.s
	for {
		switch {
		case s.accept("ITERATE"):
			iterate = true
		case s.accept("MASK"):
			if mask, err = s.integer(); err != nil {
				return
			}
		default:
			return
		}
	}
}

// iterStep reads the step pattern of an ITERATE shape and installs it.
func (st *state) iterStep(g *lef.Geometries) error {
	sp, err := st.stepPattern()
	if err != nil {
		return err
	}
	g.AddStepPattern(sp.NumX, sp.NumY, sp.StepX, sp.StepY)
	return nil
}

func (st *state) geomPoints(g *lef.Geometries, kw string) error {
	s := st.s
	pos := s.pos()
	mask, iterate, err := st.shapePrefix()
	if err != nil {
		return err
	}
	nums := s.numbers()
	minPts := 1
	if kw == "POLYGON" {
		minPts = 3
	}
	if len(nums)%2 != 0 || len(nums) < 2*minPts {
		return errorAt(pos, "%s needs at least %d points", kw, minPts)
	}
	g.StartList(nums[0], nums[1])
	for i := 2; i < len(nums); i += 2 {
		g.AddToList(nums[i], nums[i+1])
	}
	if iterate {
		if err := st.iterStep(g); err != nil {
			return err
		}
	}
	switch {
	case kw == "PATH" && iterate:
		err = g.AddPathIter(mask)
	case kw == "PATH":
		err = g.AddPath(mask)
	case iterate:
		err = g.AddPolygonIter(mask)
	default:
		err = g.AddPolygon(mask)
	}
	return st.check(pos, err)
}

func (st *state) geomRect(g *lef.Geometries) error {
	pos := st.s.pos()
	mask, iterate, err := st.shapePrefix()
	if err != nil {
		return err
	}
	r, err := st.rect()
	if err != nil {
		return err
	}
	if !iterate {
		return st.check(pos, g.AddRect(mask, r[0], r[1], r[2], r[3]))
	}
	if err := st.iterStep(g); err != nil {
		return err
	}
	return st.check(pos, g.AddRectIter(mask, r[0], r[1], r[2], r[3]))
}

// geomVia reads [ITERATE] [MASK n] x y name [DO ...]. The mask packs the
// top, cut and bottom mask digits.
func (st *state) geomVia(g *lef.Geometries) error {
	s := st.s
	pos := s.pos()
	mask, iterate, err := st.shapePrefix()
	if err != nil {
		return err
	}
	x, y, err := s.point()
	if err != nil {
		return err
	}
	name, err := s.word()
	if err != nil {
		return err
	}
	if !iterate {
		return st.check(pos, g.AddVia(mask, x, y, name))
	}
	if err := st.iterStep(g); err != nil {
		return err
	}
	return st.check(pos, g.AddViaIter(mask, x, y, name))
}

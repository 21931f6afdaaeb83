package reader

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

func (st *state) site() error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	site := st.ctx.NewSite()
	site.SetName(name)

	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "SITE %s is not closed", name)
		}
		spos := s.pos()
		switch s.peekKeyword() {
		case "CLASS":
			s.next()
			class, err := s.word()
			if err != nil {
				return err
			}
			site.SetClass(class)
		case "SYMMETRY":
			s.next()
			if err := st.symmetry(site.SetXSymmetry, site.SetYSymmetry, site.Set90Symmetry); err != nil {
				return err
			}
		case "ROWPATTERN":
			s.next()
			for !s.atEnd() {
				sname, err := s.word()
				if err != nil {
					return err
				}
				o, err := st.orient()
				if err != nil {
					return err
				}
				if err := st.check(spos, site.AddRowPattern(sname, o)); err != nil {
					return err
				}
			}
		case "SIZE":
			s.next()
			w, h, err := st.size()
			if err != nil {
				return err
			}
			site.SetSize(w, h)
		default:
			if err := st.unknown("SITE " + name); err != nil {
				return err
			}
			continue
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	if err := st.endName(name); err != nil {
		return err
	}
	return st.check(pos, st.lib.AddSite(site))
}

// symmetry reads the X, Y and R90 flags of a SYMMETRY statement.
func (st *state) symmetry(x, y, r90 func()) error {
	s := st.s
	for !s.atEnd() {
		pos := s.pos()
		switch s.peekKeyword() {
		case "X":
			x()
		case "Y":
			y()
		case "R90":
			r90()
		default:
			return errorAt(pos, "bad SYMMETRY %s", describe(s.peek()))
		}
		s.next()
	}
	return nil
}

// size reads w BY h.
func (st *state) size() (w, h float64, err error) {
	if w, err = st.s.number(); err != nil {
		return
	}
	if err = st.s.expect("BY"); err != nil {
		return
	}
	h, err = st.s.number()
	return
}

func (st *state) orient() (lef.Orient, error) {
	pos := st.s.pos()
	word, err := st.s.word()
	if err != nil {
		return lef.OrientNone, err
	}
	o, err := lef.ParseOrient(word)
	if err != nil {
		return lef.OrientNone, wrapAt(pos, err, "")
	}
	return o, nil
}

// sitePattern reads name x y orient [DO numX BY numY STEP stepX stepY].
func (st *state) sitePattern() (lef.SitePattern, error) {
	s := st.s
	var p lef.SitePattern
	var err error
	if p.Name, err = s.word(); err != nil {
		return p, err
	}
	if p.X, p.Y, err = s.point(); err != nil {
		return p, err
	}
	if p.Orient, err = st.orient(); err != nil {
		return p, err
	}
	if s.peekKeyword() == "DO" {
		step, err := st.stepPattern()
		if err != nil {
			return p, err
		}
		p.Step.Set(step)
	}
	return p, nil
}

// stepPattern reads DO numX BY numY STEP stepX stepY.
func (st *state) stepPattern() (lef.StepPattern, error) {
	s := st.s
	var sp lef.StepPattern
	var err error
	if err = s.expect("DO"); err != nil {
		return sp, err
	}
	if sp.NumX, err = s.number(); err != nil {
		return sp, err
	}
	if err = s.expect("BY"); err != nil {
		return sp, err
	}
	if sp.NumY, err = s.number(); err != nil {
		return sp, err
	}
	if err = s.expect("STEP"); err != nil {
		return sp, err
	}
	sp.StepX, sp.StepY, err = s.point()
	return sp, err
}

func (st *state) array() error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	a := st.ctx.NewArray()
	a.SetName(name)

	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "ARRAY %s is not closed", name)
		}
		spos := s.pos()
		kw := s.peekKeyword()
		switch kw {
		case "SITE", "CANPLACE", "CANNOTOCCUPY":
			s.next()
			p, err := st.sitePattern()
			if err != nil {
				return err
			}
			add := a.AddSitePattern
			switch kw {
			case "CANPLACE":
				add = a.AddCanPlace
			case "CANNOTOCCUPY":
				add = a.AddCannotOccupy
			}
			if err := st.check(spos, add(p)); err != nil {
				return err
			}
		case "TRACKS":
			s.next()
			t, err := st.tracks()
			if err != nil {
				return err
			}
			if err := st.check(spos, a.AddTrack(t)); err != nil {
				return err
			}
		case "GCELLGRID":
			s.next()
			var g lef.GcellPattern
			if g.Name, err = s.word(); err != nil {
				return err
			}
			if g.Start, err = s.number(); err != nil {
				return err
			}
			if err := s.expect("DO"); err != nil {
				return err
			}
			if g.NumCRs, err = s.integer(); err != nil {
				return err
			}
			if err := s.expect("STEP"); err != nil {
				return err
			}
			if g.Space, err = s.number(); err != nil {
				return err
			}
			if err := st.check(spos, a.AddGcell(g)); err != nil {
				return err
			}
		case "FLOORPLAN":
			s.next()
			if err := st.floorPlan(a); err != nil {
				return err
			}
			continue
		case "DEFAULTCAP":
			s.next()
			if err := st.defaultCap(spos, a); err != nil {
				return err
			}
			continue
		case "PROPERTY":
			s.next()
			if err := st.property("ARRAY", a); err != nil {
				return err
			}
			continue
		default:
			if err := st.unknown("ARRAY " + name); err != nil {
				return err
			}
			continue
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	if err := st.endName(name); err != nil {
		return err
	}
	return st.check(pos, st.lib.AddArray(a))
}

// tracks reads X|Y start DO num STEP space [LAYER name ...].
func (st *state) tracks() (lef.TrackPattern, error) {
	s := st.s
	var t lef.TrackPattern
	var err error
	if t.Name, err = s.word(); err != nil {
		return t, err
	}
	if t.Start, err = s.number(); err != nil {
		return t, err
	}
	if err = s.expect("DO"); err != nil {
		return t, err
	}
	if t.NumTracks, err = s.integer(); err != nil {
		return t, err
	}
	if err = s.expect("STEP"); err != nil {
		return t, err
	}
	if t.Space, err = s.number(); err != nil {
		return t, err
	}
	if s.accept("LAYER") {
		for !s.atEnd() && !s.eof() {
			l, err := s.word()
			if err != nil {
				return t, err
			}
			t.Layers = append(t.Layers, l)
		}
	}
	return t, nil
}

func (st *state) floorPlan(a *lef.Array) error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	if _, err := a.AddFloorPlan(name); err != nil {
		return st.check(pos, err)
	}
	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "FLOORPLAN %s is not closed", name)
		}
		spos := s.pos()
		kw := s.peekKeyword()
		if kw != "CANPLACE" && kw != "CANNOTOCCUPY" {
			if err := st.unknown("FLOORPLAN " + name); err != nil {
				return err
			}
			continue
		}
		s.next()
		p, err := st.sitePattern()
		if err != nil {
			return err
		}
		if err := st.check(spos, a.AddSiteToFloorPlan(kw, p)); err != nil {
			return err
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	return st.endName(name)
}

// defaultCap reads n followed by MINPINS m WIRECAP c ; rows and END DEFAULTCAP.
func (st *state) defaultCap(pos lexer.Position, a *lef.Array) error {
	s := st.s
	n, err := s.integer()
	if err != nil {
		return err
	}
	a.SetTableSize(n)
	for s.accept("MINPINS") {
		pins, err := s.number()
		if err != nil {
			return err
		}
		if err := s.expect("WIRECAP"); err != nil {
			return err
		}
		c, err := s.number()
		if err != nil {
			return err
		}
		if err := st.check(pos, a.AddDefaultCap(pins, c)); err != nil {
			return err
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	if got := a.NumDefaultCaps(); got != n {
		st.warnf(pos, "DEFAULTCAP declares %d rows, found %d", n, got)
	}
	return st.endName("DEFAULTCAP")
}

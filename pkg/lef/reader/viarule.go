package reader

import (
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

func (st *state) viaRule() error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	r := st.ctx.NewViaRule()
	r.SetName(name)
	if s.accept("GENERATE") {
		r.SetGenerate()
		if s.accept("DEFAULT") {
			r.SetDefault()
		}
	}

	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "VIARULE %s is not closed", name)
		}
		spos := s.pos()
		kw := s.peekKeyword()
		s.next()
		switch kw {
		case "LAYER":
			lname, err := s.word()
			if err != nil {
				return err
			}
			if _, err := r.AddLayer(lname); err != nil {
				return st.check(spos, err)
			}
		case "VIA":
			vname, err := s.word()
			if err != nil {
				return err
			}
			if err := st.check(spos, r.AddViaName(vname)); err != nil {
				return err
			}
		case "PROPERTY":
			if err := st.property("VIARULE", r); err != nil {
				return err
			}
			continue
		case "DIRECTION", "ENCLOSURE", "WIDTH", "OVERHANG", "METALOVERHANG", "RECT", "SPACING", "RESISTANCE":
			vl, err := r.CurrentLayer()
			if err != nil {
				return st.check(spos, err)
			}
			if err := st.viaRuleLayerStatement(kw, vl); err != nil {
				return err
			}
		default:
			s.i--
			if err := st.unknown("VIARULE " + name); err != nil {
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
	return st.check(pos, st.lib.AddViaRule(r))
}

func (st *state) viaRuleLayerStatement(kw string, vl *lef.ViaRuleLayer) error {
	s := st.s
	switch kw {
	case "DIRECTION":
		dir, err := s.word()
		if err != nil {
			return err
		}
		vl.SetDirection(dir)
	case "ENCLOSURE":
		a, b, err := s.point()
		if err != nil {
			return err
		}
		vl.SetEnclosure(a, b)
	case "WIDTH":
		lo, err := s.number()
		if err != nil {
			return err
		}
		if err := s.expect("TO"); err != nil {
			return err
		}
		hi, err := s.number()
		if err != nil {
			return err
		}
		vl.SetWidth(lo, hi)
	case "OVERHANG", "METALOVERHANG", "RESISTANCE":
		v, err := s.number()
		if err != nil {
			return err
		}
		switch kw {
		case "OVERHANG":
			vl.SetOverhang(v)
		case "METALOVERHANG":
			vl.SetMetalOverhang(v)
		default:
			vl.SetResistance(v)
		}
	case "RECT":
		r, err := st.rect()
		if err != nil {
			return err
		}
		vl.SetRect(r[0], r[1], r[2], r[3])
	case "SPACING":
		x, err := s.number()
		if err != nil {
			return err
		}
		if err := s.expect("BY"); err != nil {
			return err
		}
		y, err := s.number()
		if err != nil {
			return err
		}
		vl.SetSpacing(x, y)
	}
	return nil
}

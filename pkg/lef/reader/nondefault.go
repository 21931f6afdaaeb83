package reader

import (
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

var nonDefaultLayerValues = map[string]func(*lef.NonDefaultRule, float64) error{
	"WIDTH":           (*lef.NonDefaultRule).AddWidth,
	"DIAGWIDTH":       (*lef.NonDefaultRule).AddDiagWidth,
	"SPACING":         (*lef.NonDefaultRule).AddSpacing,
	"WIREEXTENSION":   (*lef.NonDefaultRule).AddWireExtension,
	"EDGECAPACITANCE": (*lef.NonDefaultRule).AddEdgeCap,
}

func (st *state) nonDefaultRule() error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	r := st.ctx.NewNonDefaultRule()
	r.SetName(name)

	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "NONDEFAULTRULE %s is not closed", name)
		}
		spos := s.pos()
		kw := s.peekKeyword()
		s.next()
		switch kw {
		case "HARDSPACING":
			r.SetHardSpacing()
			if err := s.end(); err != nil {
				return err
			}
		case "LAYER":
			if err := st.nonDefaultLayer(r); err != nil {
				return err
			}
		case "VIA":
			v, err := st.via()
			if err != nil {
				return err
			}
			if err := st.check(spos, r.AddVia(v)); err != nil {
				return err
			}
		case "SPACING":
			sp, err := st.sameNetBlock()
			if err != nil {
				return err
			}
			for _, e := range sp {
				if err := st.check(spos, r.AddSpacingRule(e)); err != nil {
					return err
				}
			}
		case "USEVIA", "USEVIARULE":
			ref, err := s.word()
			if err != nil {
				return err
			}
			add := r.AddUseVia
			if kw == "USEVIARULE" {
				add = r.AddUseViaRule
			}
			if err := st.check(spos, add(ref)); err != nil {
				return err
			}
			if err := s.end(); err != nil {
				return err
			}
		case "MINCUTS":
			cut, err := s.word()
			if err != nil {
				return err
			}
			n, err := s.integer()
			if err != nil {
				return err
			}
			if err := st.check(spos, r.AddMinCuts(cut, n)); err != nil {
				return err
			}
			if err := s.end(); err != nil {
				return err
			}
		case "PROPERTY":
			if err := st.property("NONDEFAULTRULE", r); err != nil {
				return err
			}
		default:
			s.i--
			if err := st.unknown("NONDEFAULTRULE " + name); err != nil {
				return err
			}
		}
	}
	if err := st.endName(name); err != nil {
		return err
	}
	return st.check(pos, st.lib.AddNonDefaultRule(r))
}

func (st *state) nonDefaultLayer(r *lef.NonDefaultRule) error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	if _, err := r.AddLayer(name); err != nil {
		return st.check(pos, err)
	}
	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "LAYER %s is not closed", name)
		}
		spos := s.pos()
		kw := s.peekKeyword()
		var set func(*lef.NonDefaultRule, float64) error
		switch kw {
		case "RESISTANCE":
			s.next()
			if err := s.expect("RPERSQ"); err != nil {
				return err
			}
			set = (*lef.NonDefaultRule).AddResistance
		case "CAPACITANCE":
			s.next()
			if err := s.expect("CPERSQDIST"); err != nil {
				return err
			}
			set = (*lef.NonDefaultRule).AddCapacitance
		default:
			var ok bool
			if set, ok = nonDefaultLayerValues[kw]; !ok {
				if err := st.unknown("NONDEFAULTRULE LAYER " + name); err != nil {
					return err
				}
				continue
			}
			s.next()
		}
		v, err := s.number()
		if err != nil {
			return err
		}
		if err := st.check(spos, set(r, v)); err != nil {
			return err
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	return st.endName(name)
}

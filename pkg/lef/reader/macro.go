package reader

import (
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// macroNames maps single name MACRO statements to their setters.
var macroNames = map[string]func(*lef.Macro, string){
	"SOURCE":    (*lef.Macro).SetSource,
	"EEQ":       (*lef.Macro).SetEEQ,
	"LEQ":       (*lef.Macro).SetLEQ,
	"GENERATOR": (*lef.Macro).SetGenerator,
	"CLOCKTYPE": (*lef.Macro).SetClockType,
}

func (st *state) macro() error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	m := st.ctx.NewMacro()
	m.SetName(name)

	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "MACRO %s is not closed", name)
		}
		if err := st.macroStatement(m); err != nil {
			return err
		}
	}
	if err := st.endName(name); err != nil {
		return err
	}
	if !st.cfg.KeepMacro(m.Name()) {
		return nil
	}
	return st.check(pos, st.lib.AddMacro(m))
}

func (st *state) macroStatement(m *lef.Macro) error {
	s := st.s
	pos := s.pos()
	kw := s.peekKeyword()

	if set, ok := macroNames[kw]; ok {
		s.next()
		v, err := s.word()
		if err != nil {
			return err
		}
		set(m, v)
		return s.end()
	}

	switch kw {
	case "CLASS":
		s.next()
		class := s.rest()
		if class == "" {
			return errorAt(pos, "CLASS needs a value")
		}
		m.SetClass(class)
		return nil
	case "FIXEDMASK":
		s.next()
		m.SetFixedMask()
		return s.end()
	case "FOREIGN":
		s.next()
		f, err := st.foreign()
		if err != nil {
			return err
		}
		return st.check(pos, m.AddForeign(f.Name, f.Point, f.Orient))
	case "ORIGIN":
		s.next()
		x, y, err := s.point()
		if err != nil {
			return err
		}
		m.SetOrigin(x, y)
		return s.end()
	case "SIZE":
		s.next()
		w, h, err := st.size()
		if err != nil {
			return err
		}
		m.SetSize(w, h)
		return s.end()
	case "SYMMETRY":
		s.next()
		if err := st.symmetry(m.SetXSymmetry, m.SetYSymmetry, m.Set90Symmetry); err != nil {
			return err
		}
		return s.end()
	case "SITE":
		s.next()
		return st.macroSite(m)
	case "POWER":
		s.next()
		v, err := s.number()
		if err != nil {
			return err
		}
		m.SetPower(v)
		return s.end()
	case "GENERATE":
		s.next()
		a, err := s.word()
		if err != nil {
			return err
		}
		b, err := s.word()
		if err != nil {
			return err
		}
		m.SetGenerate(a, b)
		return s.end()
	case "FUNCTION":
		s.next()
		switch s.peekKeyword() {
		case "BUFFER":
			m.SetBuffer()
		case "INVERTER":
			m.SetInverter()
		default:
			return errorAt(s.pos(), "FUNCTION must be BUFFER or INVERTER, found %s", describe(s.peek()))
		}
		s.next()
		return s.end()
	case "PIN":
		s.next()
		p, err := st.pin()
		if err != nil {
			return err
		}
		return st.check(pos, m.AddPin(p))
	case "OBS":
		s.next()
		g := st.ctx.NewGeometries()
		if err := st.geometries(g, "OBS of "+m.Name(), false); err != nil {
			return err
		}
		return st.check(pos, m.AddObstruction(lef.NewObstruction(g)))
	case "DENSITY":
		s.next()
		dn, err := st.density()
		if err != nil {
			return err
		}
		m.SetDensity(dn)
		return nil
	case "TIMING":
		st.warnf(pos, "skipping TIMING in macro %s", m.Name())
		s.next()
		s.skipBlock("TIMING")
		return nil
	case "PROPERTY":
		s.next()
		return st.property("MACRO", m)
	}
	return st.unknown("MACRO " + m.Name())
}

// macroSite reads SITE name ; or SITE name x y orient [DO ...] ;.
func (st *state) macroSite(m *lef.Macro) error {
	s := st.s
	pos := s.pos()
	if s.peekAt(1).Type == tokSemicolon {
		name, err := s.word()
		if err != nil {
			return err
		}
		m.SetSiteName(name)
		return s.end()
	}
	p, err := st.sitePattern()
	if err != nil {
		return err
	}
	if err := st.check(pos, m.AddSitePattern(p)); err != nil {
		return err
	}
	return s.end()
}

// density reads LAYER name ; RECT x1 y1 x2 y2 value ; ... END.
func (st *state) density() (*lef.Density, error) {
	s := st.s
	dn := st.ctx.NewDensity()
	for !s.accept("END") {
		if s.eof() {
			return nil, errorAt(s.pos(), "DENSITY is not closed")
		}
		pos := s.pos()
		switch s.peekKeyword() {
		case "LAYER":
			s.next()
			name, err := s.word()
			if err != nil {
				return nil, err
			}
			if _, err := dn.AddLayer(name); err != nil {
				return nil, st.check(pos, err)
			}
		case "RECT":
			s.next()
			r, err := st.rect()
			if err != nil {
				return nil, err
			}
			v, err := s.number()
			if err != nil {
				return nil, err
			}
			if err := st.check(pos, dn.AddRect(r[0], r[1], r[2], r[3], v)); err != nil {
				return nil, err
			}
		default:
			if err := st.unknown("DENSITY"); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.end(); err != nil {
			return nil, err
		}
	}
	return dn, nil
}

// pinScalars maps single value PIN statements to their setters.
var pinScalars = map[string]func(*lef.Pin, float64){
	"POWER":                (*lef.Pin).SetPower,
	"LEAKAGE":              (*lef.Pin).SetLeakage,
	"MAXLOAD":              (*lef.Pin).SetMaxload,
	"MAXDELAY":             (*lef.Pin).SetMaxdelay,
	"CAPACITANCE":          (*lef.Pin).SetCapacitance,
	"RESISTANCE":           (*lef.Pin).SetResistance,
	"PULLDOWNRES":          (*lef.Pin).SetPulldownres,
	"TIEOFFR":              (*lef.Pin).SetTieoffr,
	"VHI":                  (*lef.Pin).SetVHI,
	"VLO":                  (*lef.Pin).SetVLO,
	"RISEVOLTAGETHRESHOLD": (*lef.Pin).SetRiseVoltage,
	"FALLVOLTAGETHRESHOLD": (*lef.Pin).SetFallVoltage,
	"RISETHRESH":           (*lef.Pin).SetRiseThresh,
	"FALLTHRESH":           (*lef.Pin).SetFallThresh,
	"RISESATCUR":           (*lef.Pin).SetRiseSatcur,
	"FALLSATCUR":           (*lef.Pin).SetFallSatcur,
	"RISESLEWLIMIT":        (*lef.Pin).SetRiseSlewLimit,
	"FALLSLEWLIMIT":        (*lef.Pin).SetFallSlewLimit,
}

// pinWords maps single name PIN statements to their setters.
var pinWords = map[string]func(*lef.Pin, string){
	"LEQ":               (*lef.Pin).SetLEQ,
	"USE":               (*lef.Pin).SetUse,
	"SHAPE":             (*lef.Pin).SetShape,
	"MUSTJOIN":          (*lef.Pin).SetMustjoin,
	"CURRENTSOURCE":     (*lef.Pin).SetCurrentSource,
	"TAPERRULE":         (*lef.Pin).SetTaperRule,
	"NETEXPR":           (*lef.Pin).SetNetExpr,
	"SUPPLYSENSITIVITY": (*lef.Pin).SetSupplySensitivity,
	"GROUNDSENSITIVITY": (*lef.Pin).SetGroundSensitivity,
}

// pinHighLow maps the two value PIN statements.
var pinHighLow = map[string]func(*lef.Pin, float64, float64){
	"INPUTNOISEMARGIN":  (*lef.Pin).SetInMargin,
	"OUTPUTNOISEMARGIN": (*lef.Pin).SetOutMargin,
	"OUTPUTRESISTANCE":  (*lef.Pin).SetOutResistance,
}

var pinAntennaLists = map[string]lef.PinAntennaKind{
	"ANTENNASIZE":                 lef.PinAntennaSize,
	"ANTENNAMETALAREA":            lef.PinAntennaMetalArea,
	"ANTENNAMETALLENGTH":          lef.PinAntennaMetalLength,
	"ANTENNAPARTIALMETALAREA":     lef.PinAntennaPartialMetalArea,
	"ANTENNAPARTIALMETALSIDEAREA": lef.PinAntennaPartialMetalSideArea,
	"ANTENNAPARTIALCUTAREA":       lef.PinAntennaPartialCutArea,
	"ANTENNADIFFAREA":             lef.PinAntennaDiffArea,
}

var pinAntennaModelLists = map[string]func(*lef.Pin, float64, string) error{
	"ANTENNAGATEAREA":       (*lef.Pin).AddAntennaGateArea,
	"ANTENNAMAXAREACAR":     (*lef.Pin).AddAntennaMaxAreaCar,
	"ANTENNAMAXSIDEAREACAR": (*lef.Pin).AddAntennaMaxSideAreaCar,
	"ANTENNAMAXCUTCAR":      (*lef.Pin).AddAntennaMaxCutCar,
}

func (st *state) pin() (*lef.Pin, error) {
	s := st.s
	name, err := s.word()
	if err != nil {
		return nil, err
	}
	p := st.ctx.NewPin()
	p.SetName(name)

	for s.peekKeyword() != "END" {
		if s.eof() {
			return nil, errorAt(s.pos(), "PIN %s is not closed", name)
		}
		if err := st.pinStatement(p); err != nil {
			return nil, err
		}
	}
	if err := st.endName(name); err != nil {
		return nil, err
	}
	return p, nil
}

func (st *state) pinStatement(p *lef.Pin) error {
	s := st.s
	pos := s.pos()
	kw := s.peekKeyword()

	if set, ok := pinScalars[kw]; ok {
		s.next()
		v, err := s.number()
		if err != nil {
			return err
		}
		set(p, v)
		return s.end()
	}
	if set, ok := pinWords[kw]; ok {
		s.next()
		v, err := s.word()
		if err != nil {
			return err
		}
		set(p, v)
		return s.end()
	}
	if set, ok := pinHighLow[kw]; ok {
		s.next()
		hi, lo, err := s.point()
		if err != nil {
			return err
		}
		set(p, hi, lo)
		return s.end()
	}
	if kind, ok := pinAntennaLists[kw]; ok {
		s.next()
		v, layer, err := st.antennaValue()
		if err != nil {
			return err
		}
		if err := st.check(pos, p.AddAntennaValue(kind, v, layer)); err != nil {
			return err
		}
		return s.end()
	}
	if add, ok := pinAntennaModelLists[kw]; ok {
		s.next()
		v, layer, err := st.antennaValue()
		if err != nil {
			return err
		}
		if err := st.check(pos, add(p, v, layer)); err != nil {
			return err
		}
		return s.end()
	}

	switch kw {
	case "DIRECTION":
		s.next()
		dir := s.rest()
		if dir == "" {
			return errorAt(pos, "DIRECTION needs a value")
		}
		p.SetDirection(dir)
		return nil
	case "FOREIGN":
		s.next()
		f, err := st.foreign()
		if err != nil {
			return err
		}
		return st.check(pos, p.AddForeign(f.Name, f.Point, f.Orient))
	case "IV_TABLES":
		s.next()
		hi, err := s.word()
		if err != nil {
			return err
		}
		lo, err := s.word()
		if err != nil {
			return err
		}
		p.SetTables(hi, lo)
		return s.end()
	case "ANTENNAMODEL":
		s.next()
		return st.antennaModel(pos, func(n int) error {
			_, err := p.AddAntennaModel(n)
			return err
		})
	case "PORT":
		s.next()
		g := st.ctx.NewGeometries()
		if err := st.geometries(g, "PORT of pin "+p.Name(), true); err != nil {
			return err
		}
		return st.check(pos, p.AddPort(g))
	case "PROPERTY":
		s.next()
		return st.property("PIN", p)
	}
	return st.unknown("PIN " + p.Name())
}

// antennaValue reads value [LAYER name].
func (st *state) antennaValue() (float64, string, error) {
	v, err := st.s.number()
	if err != nil {
		return 0, "", err
	}
	if !st.s.accept("LAYER") {
		return v, "", nil
	}
	layer, err := st.s.word()
	return v, layer, err
}

package reader

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// layerScalars maps single value LAYER statements to their setters.
var layerScalars = map[string]func(*lef.Layer, float64){
	"WIDTH":                  (*lef.Layer).SetWidth,
	"AREA":                   (*lef.Layer).SetArea,
	"DIAGWIDTH":              (*lef.Layer).SetDiagWidth,
	"DIAGSPACING":            (*lef.Layer).SetDiagSpacing,
	"WIREEXTENSION":          (*lef.Layer).SetWireExtension,
	"MINWIDTH":               (*lef.Layer).SetMinWidth,
	"MAXWIDTH":               (*lef.Layer).SetMaxWidth,
	"HEIGHT":                 (*lef.Layer).SetHeight,
	"THICKNESS":              (*lef.Layer).SetThickness,
	"SHRINKAGE":              (*lef.Layer).SetShrinkage,
	"CAPMULTIPLIER":          (*lef.Layer).SetCapMultiplier,
	"EDGECAPACITANCE":        (*lef.Layer).SetEdgeCap,
	"ANTENNAAREA":            (*lef.Layer).SetAntennaArea,
	"ANTENNALENGTH":          (*lef.Layer).SetAntennaLength,
	"DIAGMINEDGELENGTH":      (*lef.Layer).SetDiagMinEdgeLength,
	"MAXFLOATINGAREA":        (*lef.Layer).SetMaxFloatingArea,
	"SLOTWIREWIDTH":          (*lef.Layer).SetSlotWireWidth,
	"SLOTWIRELENGTH":         (*lef.Layer).SetSlotWireLength,
	"SLOTWIDTH":              (*lef.Layer).SetSlotWidth,
	"SLOTLENGTH":             (*lef.Layer).SetSlotLength,
	"MAXADJACENTSLOTSPACING": (*lef.Layer).SetMaxAdjacentSlotSpacing,
	"MAXCOAXIALSLOTSPACING":  (*lef.Layer).SetMaxCoaxialSlotSpacing,
	"MAXEDGESLOTSPACING":     (*lef.Layer).SetMaxEdgeSlotSpacing,
	"SPLITWIREWIDTH":         (*lef.Layer).SetSplitWireWidth,
	"MINIMUMDENSITY":         (*lef.Layer).SetMinimumDensity,
	"MAXIMUMDENSITY":         (*lef.Layer).SetMaximumDensity,
	"DENSITYCHECKSTEP":       (*lef.Layer).SetDensityCheckStep,
	"FILLACTIVESPACING":      (*lef.Layer).SetFillActiveSpacing,
}

// layerPairs maps statements taking one or two values.
var layerPairs = map[string]struct {
	one func(*lef.Layer, float64)
	two func(*lef.Layer, float64, float64)
}{
	"PITCH":     {(*lef.Layer).SetPitch, (*lef.Layer).SetPitchXY},
	"OFFSET":    {(*lef.Layer).SetOffset, (*lef.Layer).SetOffsetXY},
	"DIAGPITCH": {(*lef.Layer).SetDiagPitch, (*lef.Layer).SetDiagPitchXY},
}

var antennaKeywords = map[string]lef.AntennaKind{
	"ANTENNAAREARATIO":            lef.AntennaAR,
	"ANTENNADIFFAREARATIO":        lef.AntennaDAR,
	"ANTENNACUMAREARATIO":         lef.AntennaCAR,
	"ANTENNACUMDIFFAREARATIO":     lef.AntennaCDAR,
	"ANTENNAAREAFACTOR":           lef.AntennaAF,
	"ANTENNASIDEAREARATIO":        lef.AntennaSAR,
	"ANTENNADIFFSIDEAREARATIO":    lef.AntennaDSAR,
	"ANTENNACUMSIDEAREARATIO":     lef.AntennaCSAR,
	"ANTENNACUMDIFFSIDEAREARATIO": lef.AntennaCDSAR,
	"ANTENNASIDEAREAFACTOR":       lef.AntennaSAF,
	"ANTENNAAREADIFFREDUCEPWL":    lef.AntennaADR,
}

func (st *state) layer() error {
	s := st.s
	pos := s.pos()
	name, err := s.word()
	if err != nil {
		return err
	}
	l := st.ctx.NewLayer()
	l.SetName(name)

	for s.peekKeyword() != "END" {
		if s.eof() {
			return errorAt(s.pos(), "LAYER %s is not closed", name)
		}
		if err := st.layerStatement(l); err != nil {
			return err
		}
	}
	if err := st.endName(name); err != nil {
		return err
	}
	if p, ok := l.Props().Lookup("LEF58_TYPE"); ok {
		// value is "TYPE <type> ;"
		if f := strings.Fields(p.Value); len(f) >= 2 && strings.EqualFold(f[0], "TYPE") {
			l.SetLayerType(strings.TrimSuffix(f[1], ";"))
		}
	}
	return st.check(pos, st.lib.AddLayer(l))
}

func (st *state) layerStatement(l *lef.Layer) error {
	s := st.s
	pos := s.pos()
	kw := s.peekKeyword()

	if set, ok := layerScalars[kw]; ok {
		s.next()
		v, err := s.number()
		if err != nil {
			return err
		}
		set(l, v)
		return s.end()
	}
	if set, ok := layerPairs[kw]; ok {
		s.next()
		v, err := s.number()
		if err != nil {
			return err
		}
		if s.isNumber() {
			v2, _ := s.number()
			set.two(l, v, v2)
		} else {
			set.one(l, v)
		}
		return s.end()
	}
	if kind, ok := antennaKeywords[kw]; ok {
		s.next()
		return st.layerAntenna(l, kind)
	}

	switch kw {
	case "TYPE":
		s.next()
		t, err := s.word()
		if err != nil {
			return err
		}
		if l.HasType() {
			st.warnf(pos, "TYPE of layer %s redefined", l.Name())
		}
		l.SetType(t)
		return s.end()
	case "MASK":
		s.next()
		n, err := s.integer()
		if err != nil {
			return err
		}
		l.SetMask(n)
		return s.end()
	case "DIRECTION":
		s.next()
		dir, err := s.word()
		if err != nil {
			return err
		}
		l.SetDirection(dir)
		return s.end()
	case "RESISTANCE":
		s.next()
		return st.layerResistance(l)
	case "CAPACITANCE":
		s.next()
		if err := s.expect("CPERSQDIST"); err != nil {
			return err
		}
		return st.widthTable(l.SetCapacitance, l.SetCapacitancePoint)
	case "CURRENTDEN":
		s.next()
		return st.widthTable(l.SetCurrentDensity, l.SetCurrentPoint)
	case "PROTRUSIONWIDTH":
		s.next()
		w1, err := s.number()
		if err != nil {
			return err
		}
		if err := s.expect("LENGTH"); err != nil {
			return err
		}
		length, err := s.number()
		if err != nil {
			return err
		}
		if err := s.expect("WIDTH"); err != nil {
			return err
		}
		w2, err := s.number()
		if err != nil {
			return err
		}
		l.SetProtrusion(w1, length, w2)
		return s.end()
	case "MINSIZE":
		s.next()
		nums := s.numbers()
		if len(nums) == 0 || len(nums)%2 != 0 {
			return errorAt(pos, "MINSIZE needs width length pairs")
		}
		for i := 0; i < len(nums); i += 2 {
			if err := st.check(pos, l.AddMinSize(nums[i], nums[i+1])); err != nil {
				return err
			}
		}
		return s.end()
	case "DENSITYCHECKWINDOW":
		s.next()
		length, width, err := s.point()
		if err != nil {
			return err
		}
		l.SetDensityCheckWindow(length, width)
		return s.end()
	case "SPACING":
		s.next()
		return st.layerSpacing(l)
	case "SPACINGTABLE":
		s.next()
		return st.spacingTable(l)
	case "ARRAYSPACING":
		s.next()
		return st.arraySpacing(l)
	case "MINIMUMCUT":
		s.next()
		return st.minimumCut(l)
	case "MINSTEP":
		s.next()
		return st.minStep(l)
	case "MINENCLOSEDAREA":
		s.next()
		return st.minEnclosedArea(l)
	case "ENCLOSURE", "PREFERENCLOSURE":
		s.next()
		return st.enclosure(l, kw == "PREFERENCLOSURE")
	case "ACCURRENTDENSITY", "DCCURRENTDENSITY":
		s.next()
		return st.currentDensity(l, kw == "ACCURRENTDENSITY")
	case "ANTENNAMODEL":
		s.next()
		return st.antennaModel(pos, func(n int) error {
			_, err := l.AddAntennaModel(n)
			return err
		})
	case "ANTENNACUMROUTINGPLUSCUT":
		s.next()
		if err := st.check(pos, l.SetAntennaCumRoutingPlusCut()); err != nil {
			return err
		}
		return s.end()
	case "ANTENNAGATEPLUSDIFF", "ANTENNAAREAMINUSDIFF":
		s.next()
		v, err := s.number()
		if err != nil {
			return err
		}
		set := l.SetAntennaGatePlusDiff
		if kw == "ANTENNAAREAMINUSDIFF" {
			set = l.SetAntennaAreaMinusDiff
		}
		if err := st.check(pos, set(v)); err != nil {
			return err
		}
		return s.end()
	case "PROPERTY":
		s.next()
		return st.property("LAYER", l)
	}
	return st.unknown("LAYER " + l.Name())
}

// layerResistance handles RESISTANCE RPERSQ value, RESISTANCE RPERSQ PWL
// and the cut layer form RESISTANCE value.
func (st *state) layerResistance(l *lef.Layer) error {
	s := st.s
	if !s.accept("RPERSQ") {
		v, err := s.number()
		if err != nil {
			return err
		}
		l.SetResPerCut(v)
		return s.end()
	}
	return st.widthTable(l.SetResistance, l.SetResistancePoint)
}

// widthTable reads either a single value or PWL ( ( width value ) ... ).
func (st *state) widthTable(one func(float64), point func(w, v float64) error) error {
	s := st.s
	pos := s.pos()
	if s.accept("PWL") || s.peek().Type == tokParen {
		pairs, err := s.pairs()
		if err != nil {
			return err
		}
		for _, p := range pairs {
			if err := st.check(pos, point(p[0], p[1])); err != nil {
				return err
			}
		}
		return s.end()
	}
	v, err := s.number()
	if err != nil {
		return err
	}
	one(v)
	return s.end()
}

func (st *state) antennaModel(pos lexer.Position, open func(int) error) error {
	s := st.s
	ox, err := s.word()
	if err != nil {
		return err
	}
	n, ok := oxideNumber(ox)
	if !ok {
		return errorAt(pos, "bad antenna model %q", ox)
	}
	if err := st.check(pos, open(n)); err != nil {
		return err
	}
	return s.end()
}

func (st *state) layerAntenna(l *lef.Layer, kind lef.AntennaKind) error {
	s := st.s
	pos := s.pos()
	if kind == lef.AntennaADR || s.accept("PWL") {
		pwl, err := st.pwl()
		if err != nil {
			return err
		}
		if err := st.check(pos, l.SetAntennaPWL(kind, pwl)); err != nil {
			return err
		}
		return s.end()
	}
	v, err := s.number()
	if err != nil {
		return err
	}
	if err := st.check(pos, l.SetAntennaValue(kind, v)); err != nil {
		return err
	}
	if s.accept("DIFFUSEONLY") {
		if err := st.check(pos, l.SetAntennaDUO(kind)); err != nil {
			return err
		}
	}
	return s.end()
}

func (st *state) pwl() (*lef.AntennaPWL, error) {
	pos := st.s.pos()
	pairs, err := st.s.pairs()
	if err != nil {
		return nil, err
	}
	pwl := st.ctx.NewAntennaPWL()
	for _, p := range pairs {
		if err := st.check(pos, pwl.Add(p[0], p[1])); err != nil {
			return nil, err
		}
	}
	return pwl, nil
}

// oxideNumber parses OXIDEn.
func oxideNumber(word string) (int, bool) {
	up := strings.ToUpper(word)
	if !strings.HasPrefix(up, "OXIDE") {
		return 0, false
	}
	n, err := strconv.Atoi(up[len("OXIDE"):])
	return n, err == nil
}

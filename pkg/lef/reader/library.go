package reader

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// blocks that are recognized but not modeled; they are skipped whole.
var skippedBlocks = map[string]bool{
	"NOISETABLE":      true,
	"CORRECTIONTABLE": true,
}

func (st *state) library() error {
	s := st.s
	for !s.eof() {
		pos := s.pos()
		kw := s.peekKeyword()
		var err error
		switch kw {
		case "VERSION":
			s.next()
			st.lib.Version, err = s.word()
			if err == nil {
				err = s.end()
			}
		case "NAMESCASESENSITIVE":
			s.next()
			var on bool
			if on, err = st.onOff(); err == nil {
				st.ctx.SetCaseSensitive(on)
				err = s.end()
			}
		case "BUSBITCHARS":
			s.next()
			st.lib.BusBitChars, err = s.word()
			if err == nil {
				err = s.end()
			}
		case "DIVIDERCHAR":
			s.next()
			st.lib.DividerChar, err = s.word()
			if err == nil {
				err = s.end()
			}
		case "UNITS":
			s.next()
			err = st.units()
		case "MANUFACTURINGGRID":
			s.next()
			var v float64
			if v, err = s.number(); err == nil {
				st.lib.ManufacturingGrid.Set(v)
				err = s.end()
			}
		case "USEMINSPACING":
			s.next()
			err = st.useMinSpacing()
		case "CLEARANCEMEASURE":
			s.next()
			st.lib.ClearanceMeasure, err = s.word()
			if err == nil {
				err = s.end()
			}
		case "MAXVIASTACK":
			s.next()
			err = st.maxViaStack()
		case "MINFEATURE":
			s.next()
			var x, y float64
			if x, y, err = s.point(); err == nil {
				st.lib.MinFeature.Set(lef.MinFeature{X: x, Y: y})
				err = s.end()
			}
		case "FIXEDMASK":
			s.next()
			st.lib.FixedMask = true
			err = s.end()
		case "PROPERTYDEFINITIONS":
			s.next()
			err = st.propertyDefinitions()
		case "SPACING":
			s.next()
			var sp []lef.Spacing
			if sp, err = st.sameNetBlock(); err == nil {
				err = st.check(pos, st.lib.AddSpacings(sp...))
			}
		case "IRDROP":
			s.next()
			err = st.irDrop()
		case "BEGINEXT":
			s.next()
			err = st.extension()
		case "LAYER":
			s.next()
			err = st.layer()
		case "VIA":
			s.next()
			var v *lef.Via
			if v, err = st.via(); err == nil {
				err = st.check(pos, st.lib.AddVia(v))
			}
		case "VIARULE":
			s.next()
			err = st.viaRule()
		case "NONDEFAULTRULE":
			s.next()
			err = st.nonDefaultRule()
		case "SITE":
			s.next()
			err = st.site()
		case "MACRO":
			s.next()
			err = st.macro()
		case "ARRAY":
			s.next()
			err = st.array()
		case "END":
			s.next()
			if err := s.expect("LIBRARY"); err != nil {
				return err
			}
			if !s.eof() {
				st.warnf(s.pos(), "text after END LIBRARY ignored")
			}
			return nil
		default:
			if skippedBlocks[kw] {
				st.warnf(pos, "skipping %s block", kw)
				s.next()
				s.skipBlock(kw)
				continue
			}
			err = st.unknown("LIBRARY")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

var unitKeywords = map[string]string{
	"TIME":        "NANOSECONDS",
	"CAPACITANCE": "PICOFARADS",
	"RESISTANCE":  "OHMS",
	"POWER":       "MILLIWATTS",
	"CURRENT":     "MILLIAMPS",
	"VOLTAGE":     "VOLTS",
	"FREQUENCY":   "MEGAHERTZ",
}

func (st *state) units() error {
	s := st.s
	var u lef.Units
	for !s.accept("END") {
		if s.eof() {
			return errorAt(s.pos(), "UNITS is not closed")
		}
		kw := s.peekKeyword()
		if kw == "DATABASE" {
			s.next()
			name, err := s.word()
			if err != nil {
				return err
			}
			v, err := s.number()
			if err != nil {
				return err
			}
			u.SetDatabase(name, v)
			if err := s.end(); err != nil {
				return err
			}
			continue
		}
		unit, ok := unitKeywords[kw]
		if !ok {
			if err := st.unknown("UNITS"); err != nil {
				return err
			}
			continue
		}
		s.next()
		if err := s.expect(unit); err != nil {
			return err
		}
		v, err := s.number()
		if err != nil {
			return err
		}
		switch kw {
		case "TIME":
			u.Time.Set(v)
		case "CAPACITANCE":
			u.Capacitance.Set(v)
		case "RESISTANCE":
			u.Resistance.Set(v)
		case "POWER":
			u.Power.Set(v)
		case "CURRENT":
			u.Current.Set(v)
		case "VOLTAGE":
			u.Voltage.Set(v)
		case "FREQUENCY":
			u.Frequency.Set(v)
		}
		if err := s.end(); err != nil {
			return err
		}
	}
	if err := s.expect("UNITS"); err != nil {
		return err
	}
	st.lib.Units.Set(u)
	return nil
}

func (st *state) useMinSpacing() error {
	name, err := st.s.word()
	if err != nil {
		return err
	}
	on, err := st.onOff()
	if err != nil {
		return err
	}
	u := lef.UseMinSpacing{Name: strings.ToUpper(name), Value: on}
	if err := st.check(st.s.pos(), st.lib.AddUseMinSpacing(u)); err != nil {
		return err
	}
	return st.s.end()
}

func (st *state) maxViaStack() error {
	s := st.s
	n, err := s.integer()
	if err != nil {
		return err
	}
	m := lef.MaxStackVia{Value: n}
	if s.accept("RANGE") {
		if m.BottomLayer, err = s.word(); err != nil {
			return err
		}
		if m.TopLayer, err = s.word(); err != nil {
			return err
		}
		m.BottomLayer = st.ctx.Names().Apply(m.BottomLayer)
		m.TopLayer = st.ctx.Names().Apply(m.TopLayer)
	}
	st.lib.MaxViaStack.Set(m)
	return s.end()
}

// propertyDefinitions reads
//
//	objectType name type [RANGE min max] [value] ;
//
// entries up to END PROPERTYDEFINITIONS.
func (st *state) propertyDefinitions() error {
	s := st.s
	for !s.accept("END") {
		if s.eof() {
			return errorAt(s.pos(), "PROPERTYDEFINITIONS is not closed")
		}
		obj, err := s.word()
		if err != nil {
			return err
		}
		name, err := s.word()
		if err != nil {
			return err
		}
		typ, err := s.word()
		if err != nil {
			return err
		}
		def := lef.PropDef{Object: strings.ToUpper(obj), Name: name, Type: strings.ToUpper(typ)}
		if s.accept("RANGE") {
			lo, hi, err := s.point()
			if err != nil {
				return err
			}
			def.Range.Set(lef.MinMax{Min: lo, Max: hi})
		}
		if !s.atEnd() {
			if def.Value, err = s.word(); err != nil {
				return err
			}
		}
		if err := s.end(); err != nil {
			return err
		}
		if err := st.check(s.pos(), st.lib.AddPropDef(def)); err != nil {
			return err
		}
	}
	return s.expect("PROPERTYDEFINITIONS")
}

// sameNetBlock reads SAMENET entries up to END SPACING.
func (st *state) sameNetBlock() ([]lef.Spacing, error) {
	s := st.s
	var out []lef.Spacing
	for !s.accept("END") {
		if s.eof() {
			return nil, errorAt(s.pos(), "SPACING is not closed")
		}
		if s.peekKeyword() != "SAMENET" {
			if err := st.unknown("SPACING"); err != nil {
				return nil, err
			}
			continue
		}
		s.next()
		n1, err := s.word()
		if err != nil {
			return nil, err
		}
		n2, err := s.word()
		if err != nil {
			return nil, err
		}
		d, err := s.number()
		if err != nil {
			return nil, err
		}
		sp := lef.Spacing{
			Name1:    st.ctx.Names().Apply(n1),
			Name2:    st.ctx.Names().Apply(n2),
			Distance: d,
			Stack:    s.accept("STACK"),
		}
		if err := s.end(); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, s.expect("SPACING")
}

func (st *state) irDrop() error {
	s := st.s
	for !s.accept("END") {
		if s.eof() {
			return errorAt(s.pos(), "IRDROP is not closed")
		}
		if err := s.expect("TABLE"); err != nil {
			return err
		}
		name, err := s.word()
		if err != nil {
			return err
		}
		nums := s.numbers()
		if len(nums)%2 != 0 {
			return errorAt(s.pos(), "IRDROP table %s has an odd number of values", name)
		}
		tbl := lef.IRDrop{Name: name}
		for i := 0; i < len(nums); i += 2 {
			tbl.Values = append(tbl.Values, lef.IRDropPoint{Value1: nums[i], Value2: nums[i+1]})
		}
		if err := s.end(); err != nil {
			return err
		}
		if err := st.check(s.pos(), st.lib.AddIRDrop(tbl)); err != nil {
			return err
		}
	}
	return s.expect("IRDROP")
}

// extension keeps a BEGINEXT "tag" ... ENDEXT block as raw text.
func (st *state) extension() error {
	s := st.s
	tag, err := s.word()
	if err != nil {
		return err
	}
	var body []string
	for !s.accept("ENDEXT") {
		if s.eof() {
			return errorAt(s.pos(), "BEGINEXT %s is not closed", tag)
		}
		body = append(body, s.next().Value)
	}
	return st.check(s.pos(), st.lib.AddExtension(lef.Extension{Tag: tag, Body: strings.Join(body, " ")}))
}

// propHolder is implemented by every record that carries PROPERTY
// statements.
type propHolder interface {
	AddProp(name, value string, typ lef.PropType) error
	AddNumProp(name string, d float64, value string, typ lef.PropType) error
}

func (st *state) propDef(object, name string) (lef.PropDef, bool) {
	for _, d := range st.lib.PropDefs {
		if d.Object == object && d.Name == name {
			return d, true
		}
	}
	return lef.PropDef{}, false
}

// property reads PROPERTY name value [name value ...] ; for an object of
// the given PROPERTYDEFINITIONS type.
func (st *state) property(object string, h propHolder) error {
	s := st.s
	for !s.atEnd() {
		pos := s.pos()
		name, err := s.word()
		if err != nil {
			return err
		}
		quoted := s.peek().Type == tokString
		isNum := s.isNumber()
		value, err := s.word()
		if err != nil {
			return err
		}
		typ := lef.PropString
		def, ok := st.propDef(object, name)
		switch {
		case ok && def.Type == "INTEGER":
			typ = lef.PropInteger
		case ok && def.Type == "REAL":
			typ = lef.PropReal
		case ok && quoted:
			typ = lef.PropQuoted
		case !ok:
			st.warnf(pos, "property %s of %s is not defined", name, object)
			if isNum {
				typ = lef.PropReal
			} else if quoted {
				typ = lef.PropQuoted
			}
		}
		if typ == lef.PropInteger || typ == lef.PropReal {
			d, perr := parseFloat(value)
			if perr != nil {
				return errorAt(pos, "property %s: %q is not a number", name, value)
			}
			err = h.AddNumProp(name, d, value, typ)
		} else {
			err = h.AddProp(name, value, typ)
		}
		if err := st.check(pos, err); err != nil {
			return err
		}
	}
	return s.end()
}

package reader

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// via reads a VIA definition after the VIA keyword. The caller decides
// where the finished via goes.
func (st *state) via() (*lef.Via, error) {
	s := st.s
	name, err := s.word()
	if err != nil {
		return nil, err
	}
	kind := lef.ViaPlain
	switch {
	case s.accept("DEFAULT"):
		kind = lef.ViaDefault
	case s.accept("GENERATED"):
		kind = lef.ViaGenerated
	}
	v := st.ctx.NewVia()
	v.SetName(name, kind)

	var (
		rule    lef.ViaRuleParams
		hasRule bool
	)
	for s.peekKeyword() != "END" {
		if s.eof() {
			return nil, errorAt(s.pos(), "VIA %s is not closed", name)
		}
		pos := s.pos()
		kw := s.peekKeyword()
		s.next()
		switch kw {
		case "TOPOFSTACKONLY":
			v.SetTopOfStack()
		case "RESISTANCE":
			r, err := s.number()
			if err != nil {
				return nil, err
			}
			v.SetResistance(r)
		case "FOREIGN":
			f, err := st.foreign()
			if err != nil {
				return nil, err
			}
			v.SetForeign(f.Name, f.Point, f.Orient)
			continue
		case "LAYER":
			lname, err := s.word()
			if err != nil {
				return nil, err
			}
			if _, err := v.AddLayer(lname); err != nil {
				return nil, st.check(pos, err)
			}
		case "RECT":
			mask, err := st.maskOpt()
			if err != nil {
				return nil, err
			}
			r, err := st.rect()
			if err != nil {
				return nil, err
			}
			if err := st.check(pos, v.AddRectToLayer(mask, r[0], r[1], r[2], r[3])); err != nil {
				return nil, err
			}
		case "POLYGON":
			mask, err := st.maskOpt()
			if err != nil {
				return nil, err
			}
			x, y, err := st.polygon(pos)
			if err != nil {
				return nil, err
			}
			if err := st.check(pos, v.AddPolyToLayer(mask, x, y)); err != nil {
				return nil, err
			}
		case "VIARULE":
			if rule.RuleName, err = s.word(); err != nil {
				return nil, err
			}
			hasRule = true
		case "CUTSIZE":
			if rule.CutSize.X, rule.CutSize.Y, err = s.point(); err != nil {
				return nil, err
			}
		case "LAYERS":
			for _, dst := range []*string{&rule.BotLayer, &rule.CutLayer, &rule.TopLayer} {
				if *dst, err = s.word(); err != nil {
					return nil, err
				}
			}
		case "CUTSPACING":
			if rule.CutSpacing.X, rule.CutSpacing.Y, err = s.point(); err != nil {
				return nil, err
			}
		case "ENCLOSURE":
			if rule.BotEnc.X, rule.BotEnc.Y, err = s.point(); err != nil {
				return nil, err
			}
			if rule.TopEnc.X, rule.TopEnc.Y, err = s.point(); err != nil {
				return nil, err
			}
		case "ROWCOL":
			rows, err := s.integer()
			if err != nil {
				return nil, err
			}
			cols, err := s.integer()
			if err != nil {
				return nil, err
			}
			v.SetRowCol(rows, cols)
		case "ORIGIN":
			x, y, err := s.point()
			if err != nil {
				return nil, err
			}
			v.SetOrigin(x, y)
		case "OFFSET":
			nums := s.numbers()
			if len(nums) != 4 {
				return nil, errorAt(pos, "OFFSET needs 4 values, got %d", len(nums))
			}
			v.SetOffset(nums[0], nums[1], nums[2], nums[3])
		case "PATTERN":
			p, err := s.word()
			if err != nil {
				return nil, err
			}
			v.SetPattern(p)
		case "PROPERTY":
			if err := st.property("VIA", v); err != nil {
				return nil, err
			}
			continue
		default:
			s.i--
			if err := st.unknown("VIA " + name); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.end(); err != nil {
			return nil, err
		}
	}
	if hasRule {
		v.SetViaRule(rule)
	}
	if err := st.endName(name); err != nil {
		return nil, err
	}
	return v, nil
}

// foreign reads name [x y [orient]] ; after FOREIGN.
func (st *state) foreign() (lef.Foreign, error) {
	s := st.s
	var f lef.Foreign
	name, err := s.word()
	if err != nil {
		return f, err
	}
	f.Name = name
	s.accept("STRUCTURE") // 5.3 syntax
	if s.isNumber() {
		x, y, err := s.point()
		if err != nil {
			return f, err
		}
		f.Point.Set(lef.Point{X: x, Y: y})
		if !s.atEnd() {
			pos := s.pos()
			o, err := s.word()
			if err != nil {
				return f, err
			}
			if f.Orient, err = lef.ParseOrient(o); err != nil {
				return f, wrapAt(pos, err, "FOREIGN %s", name)
			}
		}
	}
	return f, s.end()
}

// maskOpt reads an optional MASK n.
func (st *state) maskOpt() (int, error) {
	if !st.s.accept("MASK") {
		return 0, nil
	}
	return st.s.integer()
}

func (st *state) rect() ([4]float64, error) {
	var r [4]float64
	var err error
	if r[0], r[1], err = st.s.point(); err != nil {
		return r, err
	}
	r[2], r[3], err = st.s.point()
	return r, err
}

// polygon reads at least three vertices.
func (st *state) polygon(pos lexer.Position) (x, y []float64, err error) {
	nums := st.s.numbers()
	if len(nums) < 6 || len(nums)%2 != 0 {
		return nil, nil, errorAt(pos, "POLYGON needs at least 3 points")
	}
	for i := 0; i < len(nums); i += 2 {
		x = append(x, nums[i])
		y = append(y, nums[i+1])
	}
	return x, y, nil
}

package lef

import "fmt"

// PropType is the single-character property type discriminant.
type PropType byte

const (
	PropReal    PropType = 'R'
	PropInteger PropType = 'I'
	PropString  PropType = 'S'
	PropQuoted  PropType = 'Q'
)

func (t PropType) String() string {
	if t == 0 {
		return ""
	}
	return string(rune(t))
}

// Valid reports whether t is one of R, I, S or Q.
func (t PropType) Valid() bool {
	switch t {
	case PropReal, PropInteger, PropString, PropQuoted:
		return true
	}
	return false
}

// Property is a (name, value, type) triple. Numeric properties also carry
// the parsed number.
type Property struct {
	Name   string
	Value  string
	Number Opt[float64]
	Type   PropType
}

// IsNumber reports whether the property holds a parsed number.
func (p Property) IsNumber() bool { return p.Number.IsSet() }

// IsString reports whether the property holds a string value.
func (p Property) IsString() bool { return !p.Number.IsSet() }

// Properties is an ordered property list attached to a record.
type Properties struct {
	seq Seq[Property]
}

func newProperties(limit int) Properties {
	return Properties{seq: limitedSeq[Property]("property", limit)}
}

func (ps *Properties) append(p Property) error {
	if !p.Type.Valid() {
		return fmt.Errorf("lef: property %s has unknown type %q", p.Name, rune(p.Type))
	}
	if ps.seq.what == "" {
		ps.seq.what = "property"
	}
	return ps.seq.Append(p)
}

// Add appends a string valued property. typ must be one of R, I, S or Q.
func (ps *Properties) Add(name, value string, typ PropType) error {
	return ps.append(Property{Name: name, Value: value, Type: typ})
}

// AddNum appends a numeric property; value is its source text.
func (ps *Properties) AddNum(name string, d float64, value string, typ PropType) error {
	return ps.append(Property{Name: name, Value: value, Number: Some(d), Type: typ})
}

// Len returns the number of properties.
func (ps *Properties) Len() int { return ps.seq.Len() }

// At returns property i.
func (ps *Properties) At(i int) (Property, error) {
	if i < 0 || i >= ps.seq.Len() {
		return Property{}, indexErr("property", i, ps.seq.Len())
	}
	return ps.seq.items[i], nil
}

// Name returns the name of property i.
func (ps *Properties) Name(i int) (string, error) {
	p, err := ps.At(i)
	return p.Name, err
}

// Value returns the value text of property i.
func (ps *Properties) Value(i int) (string, error) {
	p, err := ps.At(i)
	return p.Value, err
}

// Number returns the parsed number of property i. A string property
// returns 0 and no error; use IsNumber to tell them apart.
func (ps *Properties) Number(i int) (float64, error) {
	p, err := ps.At(i)
	return p.Number.Or(0), err
}

// Type returns the type of property i.
func (ps *Properties) Type(i int) (PropType, error) {
	p, err := ps.At(i)
	return p.Type, err
}

// IsNumber reports whether property i is numeric.
func (ps *Properties) IsNumber(i int) (bool, error) {
	p, err := ps.At(i)
	return p.IsNumber(), err
}

// IsString reports whether property i is a string.
func (ps *Properties) IsString(i int) (bool, error) {
	p, err := ps.At(i)
	if err != nil {
		return false, err
	}
	return p.IsString(), nil
}

// Lookup returns the first property named name.
func (ps *Properties) Lookup(name string) (Property, bool) {
	for _, p := range ps.seq.items {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// All returns a copy of the properties in order.
func (ps *Properties) All() []Property { return ps.seq.Values() }

// Reset removes every property.
func (ps *Properties) Reset() { ps.seq.Reset() }

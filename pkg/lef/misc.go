package lef

import (
	"fmt"
	"io"
)

// Units is the UNITS block of a library.
type Units struct {
	Database     Opt[float64] // DATABASE MICRONS
	Capacitance  Opt[float64] // picofarads
	Resistance   Opt[float64] // ohms
	Time         Opt[float64] // nanoseconds
	Power        Opt[float64] // milliwatts
	Current      Opt[float64] // milliamps
	Voltage      Opt[float64] // volts
	Frequency    Opt[float64] // megahertz
	DatabaseName string       // usually MICRONS
}

// SetDatabase records DATABASE name number.
func (u *Units) SetDatabase(name string, v float64) {
	u.DatabaseName = name
	u.Database.Set(v)
}

// Print writes the block.
func (u *Units) Print(w io.Writer) error {
	d := newDumper(w)
	u.dump(d)
	return d.err()
}

func (u *Units) dump(d *dumper) {
	d.open("units")
	if v, ok := u.Database.Get(); ok {
		d.leaf("database", u.DatabaseName, v)
	}
	optLeaf(d, "capacitance", u.Capacitance)
	optLeaf(d, "resistance", u.Resistance)
	optLeaf(d, "time", u.Time)
	optLeaf(d, "power", u.Power)
	optLeaf(d, "current", u.Current)
	optLeaf(d, "voltage", u.Voltage)
	optLeaf(d, "frequency", u.Frequency)
	d.close()
}

// Foreign is a FOREIGN reference of a macro, pin or via.
type Foreign struct {
	Name   string
	Point  Opt[Point]
	Orient Orient
}

// HasOrient reports whether an orientation was given.
func (f Foreign) HasOrient() bool { return f.Orient != OrientNone }

// SitePattern is a SITE reference with an optional DO/BY/STEP repetition,
// used by macros and arrays.
type SitePattern struct {
	Name   string
	X, Y   float64
	Orient Orient
	Step   Opt[StepPattern]
}

// TrackPattern is a TRACKS X|Y statement of an array.
type TrackPattern struct {
	Name      string // X or Y
	Start     float64
	NumTracks int
	Space     float64
	Layers    []string
}

// GcellPattern is a GCELLGRID statement of an array.
type GcellPattern struct {
	Name   string // X or Y
	Start  float64
	NumCRs int
	Space  float64
}

// Spacing is an entry of the library level SPACING block.
type Spacing struct {
	Name1, Name2 string
	Distance     float64
	Stack        bool
}

// IRDropPoint is one (current, voltage) pair of an IRDROP table.
type IRDropPoint struct {
	Value1, Value2 float64
}

// IRDrop is a named IRDROP table.
type IRDrop struct {
	Name   string
	Values []IRDropPoint
}

// MinFeature is the MINFEATURE statement.
type MinFeature struct {
	X, Y float64
}

// UseMinSpacing is a USEMINSPACING statement, e.g. OBS ON.
type UseMinSpacing struct {
	Name  string
	Value bool
}

// MaxStackVia is the MAXVIASTACK statement.
type MaxStackVia struct {
	Value       int
	BottomLayer string
	TopLayer    string
}

// HasRange reports whether a RANGE was given.
func (m MaxStackVia) HasRange() bool { return m.BottomLayer != "" || m.TopLayer != "" }

// Site is a SITE definition.
type Site struct {
	name   string
	names  *NameCase
	class  string
	size   Opt[Point]
	symX   bool
	symY   bool
	sym90  bool
	rowPat Seq[SitePattern]
	limit  int
}

// NewSite returns an empty site using names for name conversion.
func NewSite(names *NameCase) *Site {
	s := &Site{names: names}
	s.Reset()
	return s
}

// Reset clears every field but the name policy and the list limit.
func (s *Site) Reset() {
	names, n := s.names, s.limit
	*s = Site{names: names, limit: n, rowPat: limitedSeq[SitePattern]("site row pattern", n)}
}

// setLimit caps the row pattern at n entries and clears the site.
func (s *Site) setLimit(n int) {
	s.limit = n
	s.Reset()
}

// SetName resets the site and names it.
func (s *Site) SetName(name string) {
	s.Reset()
	s.name = s.names.Apply(name)
}

func (s *Site) SetClass(class string) { s.class = class }
func (s *Site) SetSize(x, y float64)  { s.size.Set(Point{X: x, Y: y}) }
func (s *Site) SetXSymmetry()         { s.symX = true }
func (s *Site) SetYSymmetry()         { s.symY = true }
func (s *Site) Set90Symmetry()        { s.sym90 = true }

// AddRowPattern appends a ROWPATTERN entry.
func (s *Site) AddRowPattern(site string, orient Orient) error {
	return s.rowPat.Append(SitePattern{Name: s.names.Apply(site), Orient: orient})
}

func (s *Site) Name() string                          { return s.name }
func (s *Site) Class() string                         { return s.class }
func (s *Site) HasClass() bool                        { return s.class != "" }
func (s *Site) Size() (Point, bool)                   { return s.size.Get() }
func (s *Site) HasXSymmetry() bool                    { return s.symX }
func (s *Site) HasYSymmetry() bool                    { return s.symY }
func (s *Site) Has90Symmetry() bool                   { return s.sym90 }
func (s *Site) HasRowPattern() bool                   { return s.rowPat.Len() > 0 }
func (s *Site) NumSites() int                         { return s.rowPat.Len() }
func (s *Site) RowPattern(i int) (SitePattern, error) { return s.rowPat.At(i) }

// Print writes the site.
func (s *Site) Print(w io.Writer) error {
	d := newDumper(w)
	s.dump(d)
	return d.err()
}

func (s *Site) dump(d *dumper) {
	d.open("site", s.name)
	d.str("class", s.class)
	if p, ok := s.size.Get(); ok {
		d.leaf("size", p.X, p.Y)
	}
	d.flag("symmetry_x", s.symX)
	d.flag("symmetry_y", s.symY)
	d.flag("symmetry_r90", s.sym90)
	for _, rp := range s.rowPat.items {
		d.leaf("rowpattern", rp.Name, rp.Orient)
	}
	d.close()
}

// String implements fmt.Stringer for diagnostics.
func (s *Site) String() string {
	if p, ok := s.size.Get(); ok {
		return fmt.Sprintf("SITE %s %gx%g", s.name, p.X, p.Y)
	}
	return "SITE " + s.name
}

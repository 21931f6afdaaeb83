package lef

import (
	"fmt"
	"iter"
	"strconv"
)

// DefaultMaxOxides is the number of antenna model slots of a record whose
// limit was never set (OXIDE1 through OXIDE4).
const DefaultMaxOxides = 4

// OxideName returns the LEF keyword of antenna oxide n, e.g. "OXIDE2".
func OxideName(n int) string { return "OXIDE" + strconv.Itoa(n) }

// AntennaKind names an antenna rule of a layer.
type AntennaKind int

const (
	AntennaAR    AntennaKind = iota + 1 // ANTENNAAREARATIO
	AntennaDAR                          // ANTENNADIFFAREARATIO
	AntennaCAR                          // ANTENNACUMAREARATIO
	AntennaCDAR                         // ANTENNACUMDIFFAREARATIO
	AntennaAF                           // ANTENNAAREAFACTOR
	AntennaSAR                          // ANTENNASIDEAREARATIO
	AntennaDSAR                         // ANTENNADIFFSIDEAREARATIO
	AntennaCSAR                         // ANTENNACUMSIDEAREARATIO
	AntennaCDSAR                        // ANTENNACUMDIFFSIDEAREARATIO
	AntennaSAF                          // ANTENNASIDEAREAFACTOR
	AntennaO                            // oxide marker
	AntennaADR                          // ANTENNAAREADIFFREDUCEPWL
)

var antennaKindNames = map[AntennaKind]string{
	AntennaAR:    "ANTENNAAREARATIO",
	AntennaDAR:   "ANTENNADIFFAREARATIO",
	AntennaCAR:   "ANTENNACUMAREARATIO",
	AntennaCDAR:  "ANTENNACUMDIFFAREARATIO",
	AntennaAF:    "ANTENNAAREAFACTOR",
	AntennaSAR:   "ANTENNASIDEAREARATIO",
	AntennaDSAR:  "ANTENNADIFFSIDEAREARATIO",
	AntennaCSAR:  "ANTENNACUMSIDEAREARATIO",
	AntennaCDSAR: "ANTENNACUMDIFFSIDEAREARATIO",
	AntennaSAF:   "ANTENNASIDEAREAFACTOR",
	AntennaO:     "OXIDE",
	AntennaADR:   "ANTENNAAREADIFFREDUCEPWL",
}

func (k AntennaKind) String() string {
	if s, ok := antennaKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AntennaKind(%d)", int(k))
}

// PWLPoint is one (diffusion, ratio) pair of a piecewise linear table.
type PWLPoint struct {
	Diffusion float64
	Ratio     float64
}

// AntennaPWL is a piecewise linear antenna ratio table.
type AntennaPWL struct {
	points Seq[PWLPoint]
}

// NewAntennaPWL returns an empty table.
func NewAntennaPWL() *AntennaPWL { return newAntennaPWL(0) }

func newAntennaPWL(limit int) *AntennaPWL {
	return &AntennaPWL{points: limitedSeq[PWLPoint]("antenna PWL", limit)}
}

// Add appends a point.
func (p *AntennaPWL) Add(diffusion, ratio float64) error {
	return p.points.Append(PWLPoint{Diffusion: diffusion, Ratio: ratio})
}

// NumPWL returns the number of points.
func (p *AntennaPWL) NumPWL() int { return p.points.Len() }

// Point returns point i.
func (p *AntennaPWL) Point(i int) (PWLPoint, error) { return p.points.At(i) }

// Points returns a copy of the points.
func (p *AntennaPWL) Points() []PWLPoint { return p.points.Values() }

// AntennaModel holds the antenna rules of one oxide of a layer.
type AntennaModel struct {
	Oxide string

	AreaRatio            Opt[float64]
	DiffAreaRatio        Opt[float64]
	CumAreaRatio         Opt[float64]
	CumDiffAreaRatio     Opt[float64]
	AreaFactor           Opt[float64]
	SideAreaRatio        Opt[float64]
	DiffSideAreaRatio    Opt[float64]
	CumSideAreaRatio     Opt[float64]
	CumDiffSideAreaRatio Opt[float64]
	SideAreaFactor       Opt[float64]

	AreaFactorDUO     bool // DIFFUSEONLY
	SideAreaFactorDUO bool

	DiffAreaRatioPWL        *AntennaPWL
	CumDiffAreaRatioPWL     *AntennaPWL
	DiffSideAreaRatioPWL    *AntennaPWL
	CumDiffSideAreaRatioPWL *AntennaPWL
	AreaDiffReducePWL       *AntennaPWL

	CumRoutingPlusCut bool
	GatePlusDiff      Opt[float64]
	AreaMinusDiff     Opt[float64]
}

func newAntennaModel(oxide int) *AntennaModel {
	return &AntennaModel{Oxide: OxideName(oxide)}
}

// SetValue sets the scalar rule named by kind. ADR and O carry no scalar.
func (m *AntennaModel) SetValue(kind AntennaKind, v float64) error {
	switch kind {
	case AntennaAR:
		m.AreaRatio.Set(v)
	case AntennaDAR:
		m.DiffAreaRatio.Set(v)
	case AntennaCAR:
		m.CumAreaRatio.Set(v)
	case AntennaCDAR:
		m.CumDiffAreaRatio.Set(v)
	case AntennaAF:
		m.AreaFactor.Set(v)
	case AntennaSAR:
		m.SideAreaRatio.Set(v)
	case AntennaDSAR:
		m.DiffSideAreaRatio.Set(v)
	case AntennaCSAR:
		m.CumSideAreaRatio.Set(v)
	case AntennaCDSAR:
		m.CumDiffSideAreaRatio.Set(v)
	case AntennaSAF:
		m.SideAreaFactor.Set(v)
	default:
		return fmt.Errorf("lef: %s has no scalar value", kind)
	}
	return nil
}

// SetDUO marks an area factor DIFFUSEONLY. Only AF and SAF accept it.
func (m *AntennaModel) SetDUO(kind AntennaKind) error {
	switch kind {
	case AntennaAF:
		m.AreaFactorDUO = true
	case AntennaSAF:
		m.SideAreaFactorDUO = true
	default:
		return fmt.Errorf("lef: %s cannot be DIFFUSEONLY", kind)
	}
	return nil
}

// SetPWL attaches a piecewise linear table, replacing any earlier one of the
// same kind. Only DAR, CDAR, DSAR, CDSAR and ADR accept one.
func (m *AntennaModel) SetPWL(kind AntennaKind, pwl *AntennaPWL) error {
	switch kind {
	case AntennaDAR:
		m.DiffAreaRatioPWL = pwl
	case AntennaCDAR:
		m.CumDiffAreaRatioPWL = pwl
	case AntennaDSAR:
		m.DiffSideAreaRatioPWL = pwl
	case AntennaCDSAR:
		m.CumDiffSideAreaRatioPWL = pwl
	case AntennaADR:
		m.AreaDiffReducePWL = pwl
	default:
		return fmt.Errorf("lef: %s takes no PWL table", kind)
	}
	return nil
}

// AntennaValue is a value with the optional LAYER it applies to.
type AntennaValue struct {
	Value float64
	Layer string
}

// PinAntennaModel holds the antenna values of one oxide of a pin.
type PinAntennaModel struct {
	Oxide string

	gateArea       Seq[AntennaValue]
	maxAreaCar     Seq[AntennaValue]
	maxSideAreaCar Seq[AntennaValue]
	maxCutCar      Seq[AntennaValue]
}

func newPinAntennaModel(oxide, limit int) *PinAntennaModel {
	return &PinAntennaModel{
		Oxide:          OxideName(oxide),
		gateArea:       limitedSeq[AntennaValue]("antenna gate area", limit),
		maxAreaCar:     limitedSeq[AntennaValue]("antenna max area car", limit),
		maxSideAreaCar: limitedSeq[AntennaValue]("antenna max side area car", limit),
		maxCutCar:      limitedSeq[AntennaValue]("antenna max cut car", limit),
	}
}

func (m *PinAntennaModel) AddGateArea(v float64, layer string) error {
	return m.gateArea.Append(AntennaValue{Value: v, Layer: layer})
}

func (m *PinAntennaModel) AddMaxAreaCar(v float64, layer string) error {
	return m.maxAreaCar.Append(AntennaValue{Value: v, Layer: layer})
}

func (m *PinAntennaModel) AddMaxSideAreaCar(v float64, layer string) error {
	return m.maxSideAreaCar.Append(AntennaValue{Value: v, Layer: layer})
}

func (m *PinAntennaModel) AddMaxCutCar(v float64, layer string) error {
	return m.maxCutCar.Append(AntennaValue{Value: v, Layer: layer})
}

func (m *PinAntennaModel) NumGateArea() int                       { return m.gateArea.Len() }
func (m *PinAntennaModel) GateArea(i int) (AntennaValue, error)   { return m.gateArea.At(i) }
func (m *PinAntennaModel) NumMaxAreaCar() int                     { return m.maxAreaCar.Len() }
func (m *PinAntennaModel) MaxAreaCar(i int) (AntennaValue, error) { return m.maxAreaCar.At(i) }
func (m *PinAntennaModel) NumMaxSideAreaCar() int                 { return m.maxSideAreaCar.Len() }
func (m *PinAntennaModel) MaxSideAreaCar(i int) (AntennaValue, error) {
	return m.maxSideAreaCar.At(i)
}
func (m *PinAntennaModel) NumMaxCutCar() int                     { return m.maxCutCar.Len() }
func (m *PinAntennaModel) MaxCutCar(i int) (AntennaValue, error) { return m.maxCutCar.At(i) }

// antennaSlots is a fixed set of oxide slots addressed 1..max. Opening a
// slot initializes every lower slot that was never touched, but only slots
// opened explicitly count as populated.
type antennaSlots[T any] struct {
	max       int
	slots     []*T
	populated []bool
	cur       *T
	fresh     func(oxide int) *T
}

func (s *antennaSlots[T]) limit() int {
	if s.max <= 0 {
		return DefaultMaxOxides
	}
	return s.max
}

func (s *antennaSlots[T]) setMax(n int) {
	s.max = n
	s.reset()
}

func (s *antennaSlots[T]) reset() {
	s.slots = nil
	s.populated = nil
	s.cur = nil
}

func (s *antennaSlots[T]) open(oxide int) (*T, error) {
	n := s.limit()
	if oxide < 1 || oxide > n {
		return nil, fmt.Errorf("%w: antenna oxide %d is outside 1..%d", ErrInvalidIndex, oxide, n)
	}
	if s.slots == nil {
		s.slots = make([]*T, n)
		s.populated = make([]bool, n)
	}
	for i := 0; i < oxide-1; i++ {
		if s.slots[i] == nil {
			s.slots[i] = s.fresh(i + 1)
		}
	}
	s.slots[oxide-1] = s.fresh(oxide)
	s.populated[oxide-1] = true
	s.cur = s.slots[oxide-1]
	return s.cur, nil
}

// current returns the slot opened last, opening oxide 1 if none was.
func (s *antennaSlots[T]) current() (*T, error) {
	if s.cur == nil {
		return s.open(1)
	}
	return s.cur, nil
}

func (s *antennaSlots[T]) count() int {
	n := 0
	for _, p := range s.populated {
		if p {
			n++
		}
	}
	return n
}

func (s *antennaSlots[T]) at(i int) (*T, error) {
	k := 0
	for j, p := range s.populated {
		if !p {
			continue
		}
		if k == i {
			return s.slots[j], nil
		}
		k++
	}
	return nil, indexErr("antenna model", i, s.count())
}

// all yields (oxide number, model) for each populated slot in oxide order.
func (s *antennaSlots[T]) all() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for j, p := range s.populated {
			if p && !yield(j+1, s.slots[j]) {
				return
			}
		}
	}
}

package lef

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildInverter assembles a two pin standard cell the way a reader would.
func buildInverter(t *testing.T) *Macro {
	t.Helper()
	m := NewMacro(nil)
	m.SetName("INV")
	m.SetClass("CORE")
	m.SetOrigin(0, 0)
	m.SetSize(1, 2)
	m.SetXSymmetry()
	m.SetYSymmetry()
	m.SetSiteName("core")

	for _, pin := range []struct {
		name, dir string
		rect      [4]float64
	}{
		{"A", "INPUT", [4]float64{0.1, 0.5, 0.3, 0.7}},
		{"Y", "OUTPUT", [4]float64{0.7, 0.5, 0.9, 1.5}},
	} {
		p := NewPin(nil)
		p.SetName(pin.name)
		p.SetDirection(pin.dir)
		p.SetUse("SIGNAL")
		port, err := p.NewPort()
		require.NoError(t, err)
		require.NoError(t, port.AddLayer("metal1"))
		r := pin.rect
		require.NoError(t, port.AddRect(0, r[0], r[1], r[2], r[3]))
		require.NoError(t, m.AddPin(p))
	}

	obs := NewGeometries(nil)
	require.NoError(t, obs.AddLayer("metal1"))
	require.NoError(t, obs.AddRect(0, 0, 0, 1, 0.1))
	require.NoError(t, m.AddObstruction(NewObstruction(obs)))
	return m
}

func TestMacroInverter(t *testing.T) {
	m := buildInverter(t)

	require.Equal(t, "INV", m.Name())
	require.Equal(t, "CORE", m.Class())
	require.Equal(t, 0, m.NumForeigns())
	size, ok := m.Size()
	require.True(t, ok)
	require.Equal(t, Point{X: 1, Y: 2}, size)
	require.True(t, m.HasXSymmetry())
	require.True(t, m.HasYSymmetry())
	require.False(t, m.Has90Symmetry())
	require.Equal(t, "core", m.SiteName())

	require.Equal(t, 2, m.NumPins())
	for i, name := range []string{"A", "Y"} {
		p, err := m.Pin(i)
		require.NoError(t, err)
		require.Equal(t, name, p.Name())
		require.Equal(t, 1, p.NumPorts())
		port, err := p.Port(0)
		require.NoError(t, err)
		require.Equal(t, 1, port.CountType(ItemRect))
	}

	y, ok := m.LookupPin("Y")
	require.True(t, ok)
	require.Equal(t, "OUTPUT", y.Direction())
	b := y.Bounds()
	require.Equal(t, Box{Min: Point{0.7, 0.5}, Max: Point{0.9, 1.5}}, b)

	_, ok = m.LookupPin("Z")
	require.False(t, ok)
	require.Equal(t, 1, m.NumObstructions())
}

func TestMacroResetIsIdempotent(t *testing.T) {
	m := buildInverter(t)
	require.NoError(t, m.AddProp("LEF58_EDGETYPE", "x", PropString))
	require.NoError(t, m.AddForeign("INV", Some(Point{}), OrientN))

	for i := 0; i < 2; i++ {
		m.Reset()
		require.Empty(t, m.Name())
		require.Zero(t, m.NumPins())
		require.Zero(t, m.NumProps())
		require.Zero(t, m.NumForeigns())
		require.Zero(t, m.NumObstructions())
		require.False(t, m.HasClass())
		_, ok := m.Size()
		require.False(t, ok)
		require.Nil(t, m.Density())
	}
}

func TestPinResetIsIdempotent(t *testing.T) {
	p := NewPin(nil)
	p.SetMaxOxides(6)
	p.SetName("A")
	_, err := p.NewPort()
	require.NoError(t, err)
	require.NoError(t, p.AddNumProp("cap", 1, "1", PropReal))
	require.NoError(t, p.AddAntennaGateArea(1, ""))
	p.SetCapacitance(0.01)

	for i := 0; i < 2; i++ {
		p.Reset()
		require.Zero(t, p.NumPorts())
		require.Zero(t, p.NumProps())
		require.Zero(t, p.NumAntennaModel())
		_, ok := p.Capacitance()
		require.False(t, ok)
	}

	_, err = p.AddAntennaModel(6)
	require.NoError(t, err)
}

func TestMacroRejectsNil(t *testing.T) {
	m := NewMacro(nil)
	m.SetName("X")
	require.Error(t, m.AddPin(nil))
	require.Error(t, m.AddObstruction(nil))
	require.Error(t, NewPin(nil).AddPort(nil))
}

func TestMacroIndexErrors(t *testing.T) {
	m := buildInverter(t)
	tests := []struct {
		name string
		call func() error
	}{
		{"pin", func() error { _, err := m.Pin(2); return err }},
		{"obstruction", func() error { _, err := m.Obstruction(-1); return err }},
		{"foreign", func() error { _, err := m.Foreign(0); return err }},
		{"site pattern", func() error { _, err := m.SitePattern(0); return err }},
		{"property", func() error { _, err := m.Props().Name(0); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.True(t, errors.Is(err, ErrInvalidIndex), "got %v", err)
		})
	}
}

func TestPropertiesAccessors(t *testing.T) {
	var ps Properties
	require.NoError(t, ps.Add("name", "value", PropString))
	require.NoError(t, ps.AddNum("width", 0.5, "0.5", PropReal))
	require.Error(t, ps.Add("bad", "x", PropType('Z')))
	require.Error(t, ps.Add("untyped", "x", 0))
	require.Error(t, ps.AddNum("untyped", 1, "1", 0))

	require.Equal(t, 2, ps.Len())
	isNum, err := ps.IsNumber(1)
	require.NoError(t, err)
	require.True(t, isNum)
	n, err := ps.Number(1)
	require.NoError(t, err)
	require.Equal(t, 0.5, n)

	isStr, err := ps.IsString(0)
	require.NoError(t, err)
	require.True(t, isStr)
	typ, err := ps.Type(0)
	require.NoError(t, err)
	require.Equal(t, PropString, typ)

	_, err = ps.Value(2)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, "property", ie.What)

	p, ok := ps.Lookup("width")
	require.True(t, ok)
	require.Equal(t, "0.5", p.Value)
}

func TestEmptyRecordReadsDoNotWrite(t *testing.T) {
	var ps Properties
	g := &Geometries{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ps.At(0)
			var ie *IndexError
			if !errors.As(err, &ie) || ie.What != "property" {
				t.Errorf("At(0) = %v", err)
			}
			if _, err := g.Item(0); !errors.Is(err, ErrInvalidIndex) {
				t.Errorf("Item(0) = %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestMacroNameCase(t *testing.T) {
	m := NewMacro(NewNameCase(false))
	m.SetName("inv_x1")
	m.SetClass("core")
	p := NewPin(NewNameCase(false))
	p.SetName("a")
	require.NoError(t, m.AddPin(p))

	require.Equal(t, "INV_X1", m.Name())
	require.Equal(t, "CORE", m.Class())
	_, ok := m.LookupPin("A")
	require.True(t, ok)
	_, ok = m.LookupPin("a")
	require.True(t, ok)
}

func TestDensity(t *testing.T) {
	dn := NewDensity(nil)
	require.ErrorIs(t, dn.AddRect(0, 0, 1, 1, 50), ErrMisorderedCall)
	_, err := dn.AddLayer("metal1")
	require.NoError(t, err)
	require.NoError(t, dn.AddRect(0, 0, 1, 1, 50))
	require.NoError(t, dn.AddRect(1, 0, 2, 1, 20))

	require.Equal(t, 1, dn.NumLayers())
	l, err := dn.Layer(0)
	require.NoError(t, err)
	require.Len(t, l.Rects, 2)
	require.Equal(t, 20.0, l.Rects[1].Value)
}

func TestSiteRowPattern(t *testing.T) {
	s := NewSite(nil)
	s.SetName("core")
	s.SetClass("CORE")
	s.SetSize(0.2, 1.4)
	s.SetYSymmetry()
	require.NoError(t, s.AddRowPattern("left", OrientN))
	require.NoError(t, s.AddRowPattern("right", OrientFS))

	require.True(t, s.HasRowPattern())
	require.Equal(t, 2, s.NumSites())
	p, err := s.RowPattern(1)
	require.NoError(t, err)
	require.Equal(t, "right", p.Name)
	require.Equal(t, OrientFS, p.Orient)
	require.Equal(t, "SITE core 0.2x1.4", s.String())
}

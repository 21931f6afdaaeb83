package lef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPinAntennaModelsSkipUnopenedOxides(t *testing.T) {
	p := NewPin(nil)
	p.SetName("A")

	m2, err := p.AddAntennaModel(2)
	require.NoError(t, err)
	require.Equal(t, "OXIDE2", m2.Oxide)
	require.NoError(t, p.AddAntennaGateArea(1.5, "metal1"))

	m4, err := p.AddAntennaModel(4)
	require.NoError(t, err)
	require.NoError(t, p.AddAntennaMaxAreaCar(30, ""))

	require.Equal(t, 2, p.NumAntennaModel())
	require.True(t, p.HasAntennaModel())

	var visited []int
	for oxide := range p.AntennaModels() {
		visited = append(visited, oxide)
	}
	require.Equal(t, []int{2, 4}, visited)

	got, err := p.AntennaModel(0)
	require.NoError(t, err)
	require.Same(t, m2, got)
	require.Equal(t, 1, got.NumGateArea())
	ga, err := got.GateArea(0)
	require.NoError(t, err)
	require.Equal(t, AntennaValue{Value: 1.5, Layer: "metal1"}, ga)

	got, err = p.AntennaModel(1)
	require.NoError(t, err)
	require.Same(t, m4, got)
	require.Equal(t, 0, got.NumGateArea())
	require.Equal(t, 1, got.NumMaxAreaCar())

	_, err = p.AntennaModel(2)
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestPinAntennaWithoutModelOpensFirstOxide(t *testing.T) {
	p := NewPin(nil)
	require.NoError(t, p.AddAntennaGateArea(2, ""))
	require.NoError(t, p.AddAntennaMaxCutCar(4, "via1"))

	require.Equal(t, 1, p.NumAntennaModel())
	m, err := p.AntennaModel(0)
	require.NoError(t, err)
	require.Equal(t, "OXIDE1", m.Oxide)
	require.Equal(t, 1, m.NumGateArea())
	require.Equal(t, 1, m.NumMaxCutCar())
}

func TestPinAntennaOxideRange(t *testing.T) {
	p := NewPin(nil)
	for _, oxide := range []int{0, -1, 5} {
		_, err := p.AddAntennaModel(oxide)
		require.ErrorIs(t, err, ErrInvalidIndex, "oxide %d", oxide)
	}

	p.SetMaxOxides(8)
	m, err := p.AddAntennaModel(8)
	require.NoError(t, err)
	require.Equal(t, "OXIDE8", m.Oxide)
}

func TestPinAntennaReopenStartsFresh(t *testing.T) {
	p := NewPin(nil)
	_, err := p.AddAntennaModel(1)
	require.NoError(t, err)
	require.NoError(t, p.AddAntennaGateArea(1, ""))

	m, err := p.AddAntennaModel(1)
	require.NoError(t, err)
	require.Equal(t, 0, m.NumGateArea())
	require.Equal(t, 1, p.NumAntennaModel())
}

func TestPinAntennaLists(t *testing.T) {
	p := NewPin(NewNameCase(false))
	require.NoError(t, p.AddAntennaValue(PinAntennaPartialMetalArea, 0.5, "metal1"))
	require.NoError(t, p.AddAntennaValue(PinAntennaPartialMetalArea, 0.7, ""))
	require.NoError(t, p.AddAntennaValue(PinAntennaDiffArea, 1, ""))

	require.Equal(t, 2, p.NumAntennaValue(PinAntennaPartialMetalArea))
	require.Equal(t, 1, p.NumAntennaValue(PinAntennaDiffArea))
	require.Equal(t, 0, p.NumAntennaValue(PinAntennaSize))

	v, err := p.AntennaValue(PinAntennaPartialMetalArea, 0)
	require.NoError(t, err)
	require.Equal(t, "METAL1", v.Layer)

	_, err = p.AntennaValue(PinAntennaSize, 0)
	require.ErrorIs(t, err, ErrInvalidIndex)
	require.Error(t, p.AddAntennaValue(PinAntennaKind(42), 1, ""))
	require.Equal(t, "ANTENNADIFFAREA", PinAntennaDiffArea.String())
}

func TestLayerAntennaLazyFirstOxide(t *testing.T) {
	l := NewLayer(nil)
	l.SetName("metal1")
	require.NoError(t, l.SetAntennaValue(AntennaAR, 100))
	require.NoError(t, l.SetAntennaValue(AntennaSAF, 2))
	require.NoError(t, l.SetAntennaDUO(AntennaSAF))

	require.Equal(t, 1, l.NumAntennaModel())
	m, err := l.AntennaModel(0)
	require.NoError(t, err)
	require.Equal(t, "OXIDE1", m.Oxide)
	ar, ok := m.AreaRatio.Get()
	require.True(t, ok)
	require.Equal(t, 100.0, ar)
	require.True(t, m.SideAreaFactorDUO)
	require.False(t, m.AreaFactorDUO)
}

func TestLayerAntennaModelValues(t *testing.T) {
	l := NewLayer(nil)
	_, err := l.AddAntennaModel(3)
	require.NoError(t, err)

	pwl := NewAntennaPWL()
	require.NoError(t, pwl.Add(0, 100))
	require.NoError(t, pwl.Add(0.5, 2000))
	require.NoError(t, l.SetAntennaPWL(AntennaDAR, pwl))
	require.NoError(t, l.SetAntennaGatePlusDiff(2.5))
	require.NoError(t, l.SetAntennaCumRoutingPlusCut())

	require.Equal(t, 1, l.NumAntennaModel())
	m, err := l.AntennaModel(0)
	require.NoError(t, err)
	require.Equal(t, "OXIDE3", m.Oxide)
	require.Equal(t, 2, m.DiffAreaRatioPWL.NumPWL())
	pt, err := m.DiffAreaRatioPWL.Point(1)
	require.NoError(t, err)
	require.Equal(t, PWLPoint{Diffusion: 0.5, Ratio: 2000}, pt)
	require.True(t, m.CumRoutingPlusCut)
	require.Equal(t, 2.5, m.GatePlusDiff.Or(0))
}

func TestAntennaModelRejectsMismatchedKinds(t *testing.T) {
	m := newAntennaModel(1)
	require.Error(t, m.SetValue(AntennaADR, 1))
	require.Error(t, m.SetValue(AntennaO, 1))
	require.Error(t, m.SetDUO(AntennaAR))
	require.Error(t, m.SetPWL(AntennaAR, NewAntennaPWL()))
	require.NoError(t, m.SetPWL(AntennaADR, NewAntennaPWL()))
	require.NotNil(t, m.AreaDiffReducePWL)
}

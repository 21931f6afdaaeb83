package lef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayerSpacingCursor(t *testing.T) {
	l := NewLayer(nil)
	l.SetName("metal1")

	require.ErrorIs(t, l.SetSpacingName("x"), ErrMisorderedCall)
	_, err := l.CurrentSpacing()
	require.ErrorIs(t, err, ErrMisorderedCall)

	_, err = l.AddSpacing(0.1)
	require.NoError(t, err)
	s, err := l.AddSpacing(0.2)
	require.NoError(t, err)
	s.SetRange(0, 1)
	require.NoError(t, s.SetRangeUseLength())
	require.NoError(t, l.SetSpacingName("metal2"))

	require.Equal(t, 2, l.NumSpacing())
	first, err := l.Spacing(0)
	require.NoError(t, err)
	require.Equal(t, 0.1, first.Distance)
	require.Empty(t, first.Name)

	cur, err := l.CurrentSpacing()
	require.NoError(t, err)
	require.Same(t, s, cur)
	require.Equal(t, "metal2", cur.Name)
}

func TestLayerSpacingTableParallel(t *testing.T) {
	l := NewLayer(nil)

	require.ErrorIs(t, l.AddSpParallelLength(), ErrMisorderedCall)
	require.ErrorIs(t, l.AddSpParallelWidth(0.1), ErrMisorderedCall)

	_, err := l.AddSpacingTable()
	require.NoError(t, err)
	require.NoError(t, l.AddNumber(0))
	require.NoError(t, l.AddNumber(0.5))
	require.NoError(t, l.AddNumber(1))
	require.NoError(t, l.AddSpParallelLength())

	require.NoError(t, l.AddSpParallelWidth(0))
	require.NoError(t, l.AddNumber(0.1))
	require.NoError(t, l.AddNumber(0.1))
	require.NoError(t, l.AddNumber(0.1))
	require.NoError(t, l.AddSpParallelWidthSpacing())

	require.NoError(t, l.AddSpParallelWidth(0.3))
	require.NoError(t, l.AddNumber(0.1))
	require.NoError(t, l.AddNumber(0.2))
	require.NoError(t, l.AddSpParallelWidthSpacing())

	tbl, err := l.SpacingTable(0)
	require.NoError(t, err)
	require.True(t, tbl.IsParallel())
	require.False(t, tbl.IsInfluence())
	require.Equal(t, []float64{0, 0.5, 1}, tbl.Parallel.Lengths)
	require.Len(t, tbl.Parallel.Rows, 2)
	require.Equal(t, ParallelRow{Width: 0.3, Spacings: []float64{0.1, 0.2, 0}}, tbl.Parallel.Rows[1])
}

func TestLayerSpacingTableTwoWidths(t *testing.T) {
	l := NewLayer(nil)
	_, err := l.AddSpacingTable()
	require.NoError(t, err)

	require.NoError(t, l.AddNumber(0.05))
	require.NoError(t, l.AddNumber(0.06))
	require.NoError(t, l.AddSpTwoWidths(0))

	l.SetSpTwoWidthsHasPRL(0.4)
	require.NoError(t, l.AddNumber(0.06))
	require.NoError(t, l.AddNumber(0.1))
	require.NoError(t, l.AddSpTwoWidths(0.25))

	tbl, err := l.CurrentSpacingTable()
	require.NoError(t, err)
	require.True(t, tbl.IsTwoWidths())
	require.Len(t, tbl.TwoWidths, 2)
	require.False(t, tbl.TwoWidths[0].PRL.IsSet())
	prl, ok := tbl.TwoWidths[1].PRL.Get()
	require.True(t, ok)
	require.Equal(t, 0.4, prl)
	require.Equal(t, []float64{0.06, 0.1}, tbl.TwoWidths[1].Spacings)
}

func TestLayerSpacingTableInfluence(t *testing.T) {
	l := NewLayer(nil)
	require.ErrorIs(t, l.SetInfluence(), ErrMisorderedCall)
	_, err := l.AddSpacingTable()
	require.NoError(t, err)
	require.NoError(t, l.SetInfluence())
	require.NoError(t, l.AddSpInfluence(1.5, 0.5, 0.5))
	require.NoError(t, l.AddSpInfluence(3, 1, 1))

	tbl, err := l.CurrentSpacingTable()
	require.NoError(t, err)
	require.True(t, tbl.IsInfluence())
	require.Equal(t, InfluenceEntry{Width: 3, Distance: 1, Spacing: 1}, tbl.Influence[1])
}

func TestLayerOrthogonalStartsLazily(t *testing.T) {
	l := NewLayer(nil)
	require.False(t, l.HasSpacingTableOrtho())
	require.NoError(t, l.AddSpacingTableOrthoWithin(0.1, 0.2))
	require.True(t, l.HasSpacingTableOrtho())
	require.Equal(t, 1, l.NumOrthogonal())

	l.SetSpacingTableOrtho()
	require.Equal(t, 0, l.NumOrthogonal())
	require.NoError(t, l.AddSpacingTableOrthoWithin(0.3, 0.4))
	e, err := l.Orthogonal(0)
	require.NoError(t, err)
	require.Equal(t, OrthoEntry{CutWithin: 0.3, Spacing: 0.4}, e)
	_, err = l.Orthogonal(1)
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestLayerArraySpacingStartsLazily(t *testing.T) {
	l := NewLayer(nil)
	require.Nil(t, l.ArraySpacing())
	l.SetArraySpacingCut(0.2)
	require.NoError(t, l.AddArraySpacingArray(3, 0.3))
	require.NoError(t, l.AddArraySpacingArray(4, 0.4))

	a := l.ArraySpacing()
	require.NotNil(t, a)
	require.Equal(t, 0.2, a.CutSpacing)
	require.Equal(t, []ArrayCut{{Cuts: 3, Spacing: 0.3}, {Cuts: 4, Spacing: 0.4}}, a.Arrays)
}

func TestLayerRuleCursors(t *testing.T) {
	tests := []struct {
		name string
		call func(l *Layer) error
	}{
		{"min enclosed area width", func(l *Layer) error { return l.AddMinEnclosedAreaWidth(1) }},
		{"ac frequency", func(l *Layer) error { return l.AddAcFrequency() }},
		{"dc width", func(l *Layer) error { return l.AddDcWidth() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(NewLayer(nil)), ErrMisorderedCall)
		})
	}
}

func TestLayerCurrentDensityTable(t *testing.T) {
	l := NewLayer(nil)
	_, err := l.AddAcCurrentDensity("PEAK")
	require.NoError(t, err)
	require.NoError(t, l.AddNumber(100))
	require.NoError(t, l.AddNumber(400))
	require.NoError(t, l.AddAcFrequency())
	require.NoError(t, l.AddNumber(0.4))
	require.NoError(t, l.AddAcWidth())
	require.NoError(t, l.AddNumber(1))
	require.NoError(t, l.AddNumber(2))
	require.NoError(t, l.AddAcTableEntry())

	require.Equal(t, 1, l.NumAcCurrentDensity())
	require.Equal(t, 0, l.NumDcCurrentDensity())
	cd, err := l.AcCurrentDensity(0)
	require.NoError(t, err)
	require.Equal(t, []float64{100, 400}, cd.Frequencies)
	require.Equal(t, []float64{0.4}, cd.Widths)
	require.Equal(t, []float64{1, 2}, cd.TableEntries)
}

func TestLayerResetKeepsName(t *testing.T) {
	l := NewLayer(NewNameCase(false))
	l.SetName("metal1")
	l.SetWidth(0.2)
	_, err := l.AddSpacing(0.1)
	require.NoError(t, err)
	require.NoError(t, l.AddProp("LEF58_TYPE", "x", PropString))
	require.Equal(t, "METAL1", l.Name())

	l.SetName("metal2")
	require.Equal(t, "METAL2", l.Name())
	_, ok := l.Width()
	require.False(t, ok)
	require.Zero(t, l.NumSpacing())
	require.Zero(t, l.NumProps())
	require.Zero(t, l.NumAntennaModel())
}

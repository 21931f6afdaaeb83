package lef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViaFixedLayers(t *testing.T) {
	v := NewVia(nil)
	v.SetName("via12", ViaDefault)
	v.SetResistance(1.5)

	require.ErrorIs(t, v.AddRectToLayer(0, 0, 0, 1, 1), ErrMisorderedCall)
	require.ErrorIs(t, v.AddPolyToLayer(0, []float64{0}, []float64{0}), ErrMisorderedCall)

	_, err := v.AddLayer("metal1")
	require.NoError(t, err)
	require.NoError(t, v.AddRectToLayer(0, -0.1, -0.1, 0.1, 0.1))
	_, err = v.AddLayer("via1")
	require.NoError(t, err)
	require.NoError(t, v.AddRectToLayer(2, -0.05, -0.05, 0.05, 0.05))
	require.NoError(t, v.AddPolyToLayer(0, []float64{0, 1, 1}, []float64{0, 0, 1}))

	require.True(t, v.HasDefault())
	require.False(t, v.HasGenerated())
	require.Equal(t, 2, v.NumLayers())
	l, err := v.Layer(1)
	require.NoError(t, err)
	require.Equal(t, "via1", l.Name)
	require.Equal(t, 2, l.Rects[0].Mask)
	require.Len(t, l.Polygons, 1)
	_, err = v.Layer(2)
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestViaGenerated(t *testing.T) {
	v := NewVia(nil)
	v.SetName("via12_gen", ViaGenerated)
	v.SetViaRule(ViaRuleParams{
		RuleName: "via12rule",
		CutSize:  Point{X: 0.1, Y: 0.1},
		BotLayer: "metal1",
		CutLayer: "via1",
		TopLayer: "metal2",
	})
	v.SetRowCol(2, 3)
	v.SetOffset(0, 0, 0.1, 0)
	v.SetPattern("2_1RF1RF1R7_1R1")

	require.True(t, v.HasGenerated())
	require.True(t, v.HasViaRule())
	r, ok := v.ViaRule()
	require.True(t, ok)
	require.Equal(t, "via1", r.CutLayer)
	rc, ok := v.RowCol()
	require.True(t, ok)
	require.Equal(t, RowCol{Rows: 2, Cols: 3}, rc)
	off, ok := v.Offset()
	require.True(t, ok)
	require.Equal(t, 0.1, off.Top.X)
	_, ok = v.Origin()
	require.False(t, ok)
	require.True(t, v.HasCutPattern())
}

func TestViaCloneIsIndependent(t *testing.T) {
	v := NewVia(nil)
	v.SetName("v", ViaPlain)
	l, err := v.AddLayer("metal1")
	require.NoError(t, err)
	l.AddRect(0, 0, 0, 1, 1)
	require.NoError(t, v.AddProp("p", "1", PropInteger))

	c := v.Clone()
	l.AddRect(0, 2, 2, 3, 3)
	require.NoError(t, v.AddProp("q", "2", PropInteger))
	_, err = v.AddLayer("metal2")
	require.NoError(t, err)

	require.Equal(t, "v", c.Name())
	require.Equal(t, 1, c.NumLayers())
	cl, err := c.Layer(0)
	require.NoError(t, err)
	require.Len(t, cl.Rects, 1)
	require.Equal(t, 1, c.NumProps())
}

func TestViaRuleLayerLimit(t *testing.T) {
	r := NewViaRule(nil)
	r.SetName("m1m2")
	r.SetGenerate()

	_, err := r.CurrentLayer()
	require.ErrorIs(t, err, ErrMisorderedCall)

	for _, name := range []string{"metal1", "via1", "metal2"} {
		vl, err := r.AddLayer(name)
		require.NoError(t, err)
		vl.SetEnclosure(0.05, 0.01)
	}
	_, err = r.AddLayer("metal3")
	require.ErrorIs(t, err, ErrResourceExhausted)
	require.Equal(t, MaxViaRuleLayers, r.NumLayers())

	cur, err := r.CurrentLayer()
	require.NoError(t, err)
	cur.SetRect(-0.05, -0.05, 0.05, 0.05)
	cur.SetSpacing(0.2, 0.2)
	cur.SetDirection("VERTICAL")
	require.True(t, cur.IsVertical())
	require.False(t, cur.IsHorizontal())

	require.True(t, r.HasGenerate())
	require.False(t, r.HasDefault())

	// SetName starts over with room for three layers again.
	r.SetName("m2m3")
	require.Zero(t, r.NumLayers())
	_, err = r.AddLayer("metal2")
	require.NoError(t, err)
}

func TestViaRuleViaNames(t *testing.T) {
	r := NewViaRule(NewNameCase(false))
	r.SetName("turn1")
	require.NoError(t, r.AddViaName("via12a"))
	require.NoError(t, r.AddViaName("via12b"))
	require.Equal(t, 2, r.NumVias())
	name, err := r.ViaName(1)
	require.NoError(t, err)
	require.Equal(t, "VIA12B", name)
}

func TestNonDefaultRule(t *testing.T) {
	r := NewNonDefaultRule(nil)
	r.SetName("wide")
	r.SetHardSpacing()

	require.ErrorIs(t, r.AddWidth(0.4), ErrMisorderedCall)

	_, err := r.AddLayer("metal1")
	require.NoError(t, err)
	require.NoError(t, r.AddWidth(0.4))
	require.NoError(t, r.AddSpacing(0.3))
	_, err = r.AddLayer("metal2")
	require.NoError(t, err)
	require.NoError(t, r.AddWidth(0.5))
	require.NoError(t, r.AddEdgeCap(0.01))

	v := NewVia(nil)
	v.SetName("wide_via", ViaPlain)
	_, err = v.AddLayer("via1")
	require.NoError(t, err)
	require.NoError(t, r.AddVia(v))
	require.Error(t, r.AddVia(NewVia(nil)))
	require.Error(t, r.AddVia(nil))

	require.NoError(t, r.AddSpacingRule(Spacing{Name1: "via1", Name2: "via1", Distance: 0.2, Stack: true}))
	require.NoError(t, r.AddUseVia("via12"))
	require.NoError(t, r.AddUseViaRule("gen12"))
	require.NoError(t, r.AddMinCuts("via1", 2))

	require.True(t, r.HasHardSpacing())
	require.Equal(t, 2, r.NumLayers())
	l, err := r.Layer(0)
	require.NoError(t, err)
	require.Equal(t, 0.3, l.Spacing.Or(0))
	require.False(t, l.EdgeCap.IsSet())
	l, err = r.Layer(1)
	require.NoError(t, err)
	require.Equal(t, 0.01, l.EdgeCap.Or(0))

	require.Equal(t, 1, r.NumVias())
	stored, err := r.Via(0)
	require.NoError(t, err)
	require.NotSame(t, v, stored)
	require.Equal(t, "wide_via", stored.Name())

	mc, err := r.MinCuts(0)
	require.NoError(t, err)
	require.Equal(t, MinCuts{CutLayer: "via1", NumCuts: 2}, mc)
	require.Equal(t, 1, r.NumUseVia())
	require.Equal(t, 1, r.NumUseViaRule())
	require.Equal(t, 1, r.NumSpacingRules())
}

func TestArray(t *testing.T) {
	a := NewArray(nil)
	a.SetName("core_array")
	require.NoError(t, a.AddSitePattern(SitePattern{Name: "core", Orient: OrientN, Step: Some(StepPattern{NumX: 10, NumY: 1, StepX: 1})}))
	require.NoError(t, a.AddCanPlace(SitePattern{Name: "io", Orient: OrientNone}))
	require.NoError(t, a.AddTrack(TrackPattern{Name: "X", Start: 0.5, NumTracks: 100, Space: 1, Layers: []string{"metal1", "metal3"}}))
	require.NoError(t, a.AddGcell(GcellPattern{Name: "Y", NumCRs: 20, Space: 5}))

	require.ErrorIs(t, a.AddSiteToFloorPlan("CANPLACE", SitePattern{Name: "core"}), ErrMisorderedCall)
	_, err := a.AddFloorPlan("fp1")
	require.NoError(t, err)
	require.NoError(t, a.AddSiteToFloorPlan("CANPLACE", SitePattern{Name: "core"}))
	require.NoError(t, a.AddSiteToFloorPlan("CANNOTOCCUPY", SitePattern{Name: "io"}))

	a.SetTableSize(2)
	require.NoError(t, a.AddDefaultCap(1, 0.1))
	require.NoError(t, a.AddDefaultCap(5, 0.3))

	require.Equal(t, 1, a.NumSitePattern())
	require.Equal(t, 1, a.NumCanPlace())
	require.Equal(t, 0, a.NumCannotOccupy())
	tr, err := a.Track(0)
	require.NoError(t, err)
	require.Equal(t, []string{"metal1", "metal3"}, tr.Layers)
	fp, err := a.FloorPlan(0)
	require.NoError(t, err)
	require.Len(t, fp.Sites, 2)
	require.Equal(t, "CANNOTOCCUPY", fp.Sites[1].Kind)
	n, ok := a.TableSize()
	require.True(t, ok)
	require.Equal(t, 2, n)
	dc, err := a.DefaultCap(1)
	require.NoError(t, err)
	require.Equal(t, DefaultCap{MinPins: 5, WireCap: 0.3}, dc)
}

package lef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryLookupAndOrder(t *testing.T) {
	ctx := NewContext(DefaultContextConfig())
	lib := ctx.Library()

	for _, name := range []string{"metal1", "via1", "metal2"} {
		l := ctx.NewLayer()
		l.SetName(name)
		require.NoError(t, lib.AddLayer(l))
	}
	m := ctx.NewMacro()
	m.SetName("INV")
	require.NoError(t, lib.AddMacro(m))

	require.Equal(t, 3, lib.NumLayers())
	names := make([]string, 0, 3)
	for _, l := range lib.Layers() {
		names = append(names, l.Name())
	}
	require.Equal(t, []string{"metal1", "via1", "metal2"}, names)

	l, ok := lib.Layer("via1")
	require.True(t, ok)
	require.Equal(t, "via1", l.Name())
	_, ok = lib.Layer("VIA1")
	require.False(t, ok)

	got, ok := lib.Macro("INV")
	require.True(t, ok)
	require.Same(t, m, got)
	require.Empty(t, lib.Warnings)
}

func TestLibraryRedefinitionWarns(t *testing.T) {
	lib := NewLibrary(nil)
	a := NewSite(nil)
	a.SetName("core")
	b := NewSite(nil)
	b.SetName("core")
	b.SetClass("CORE")

	require.NoError(t, lib.AddSite(a))
	require.NoError(t, lib.AddSite(b))

	require.Equal(t, 2, lib.NumSites())
	s, ok := lib.Site("core")
	require.True(t, ok)
	require.Same(t, b, s)
	require.Equal(t, []string{"site core redefined"}, lib.Warnings)
}

func TestContextCaseInsensitive(t *testing.T) {
	ctx := NewContext(DefaultContextConfig())
	require.True(t, ctx.Names().Sensitive())
	ctx.SetCaseSensitive(false)
	require.False(t, ctx.Names().Sensitive())

	v := ctx.NewVia()
	v.SetName("via12", ViaPlain)
	require.NoError(t, ctx.Library().AddVia(v))

	got, ok := ctx.Library().Via("Via12")
	require.True(t, ok)
	require.Equal(t, "VIA12", got.Name())
}

func TestContextLimits(t *testing.T) {
	cfg := DefaultContextConfig()
	cfg.MaxOxides = 2
	cfg.SeqLimit = 1
	ctx := NewContext(cfg)
	require.Equal(t, 2, ctx.MaxOxides())

	p := ctx.NewPin()
	_, err := p.AddAntennaModel(3)
	require.ErrorIs(t, err, ErrInvalidIndex)

	l := ctx.NewLayer()
	_, err = l.AddAntennaModel(2)
	require.NoError(t, err)

	g := ctx.NewGeometries()
	require.NoError(t, g.AddLayer("m1"))
	require.ErrorIs(t, g.AddRect(0, 0, 0, 1, 1), ErrResourceExhausted)

	lib := ctx.Library()
	a, b := ctx.NewArray(), ctx.NewArray()
	a.SetName("a")
	b.SetName("b")
	require.NoError(t, lib.AddArray(a))
	require.ErrorIs(t, lib.AddArray(b), ErrResourceExhausted)
}

func TestDefaultContextConfig(t *testing.T) {
	cfg := DefaultContextConfig()
	require.True(t, cfg.CaseSensitive)
	require.Equal(t, DefaultMaxOxides, cfg.MaxOxides)

	ctx := NewContext(ContextConfig{})
	require.Equal(t, DefaultMaxOxides, ctx.MaxOxides())
	require.False(t, ctx.Names().Sensitive())
}

func TestContextLimitsReachRecordLists(t *testing.T) {
	cfg := DefaultContextConfig()
	cfg.SeqLimit = 2
	ctx := NewContext(cfg)

	l := ctx.NewLayer()
	l.SetSpacingTableOrtho()
	require.NoError(t, l.AddSpacingTableOrthoWithin(0.1, 0.2))
	require.NoError(t, l.AddSpacingTableOrthoWithin(0.2, 0.3))
	require.ErrorIs(t, l.AddSpacingTableOrthoWithin(0.3, 0.4), ErrResourceExhausted)

	l = ctx.NewLayer()
	l.SetArraySpacingCut(0.1)
	require.NoError(t, l.AddArraySpacingArray(2, 0.1))
	require.NoError(t, l.AddArraySpacingArray(3, 0.2))
	require.ErrorIs(t, l.AddArraySpacingArray(4, 0.3), ErrResourceExhausted)

	require.NoError(t, l.AddNumber(1))
	require.NoError(t, l.AddNumber(2))
	require.ErrorIs(t, l.AddNumber(3), ErrResourceExhausted)

	require.NoError(t, l.AddProp("a", "1", PropInteger))
	require.NoError(t, l.AddProp("b", "2", PropInteger))
	require.ErrorIs(t, l.AddProp("c", "3", PropInteger), ErrResourceExhausted)

	m := ctx.NewMacro()
	require.NoError(t, m.AddProp("a", "x", PropString))
	require.NoError(t, m.AddProp("b", "y", PropString))
	require.ErrorIs(t, m.AddProp("c", "z", PropString), ErrResourceExhausted)

	v := ctx.NewVia()
	_, err := v.AddLayer("cut1")
	require.NoError(t, err)
	require.NoError(t, v.AddRectToLayer(0, 0, 0, 1, 1))
	require.NoError(t, v.AddRectToLayer(0, 1, 1, 2, 2))
	require.ErrorIs(t, v.AddRectToLayer(0, 2, 2, 3, 3), ErrResourceExhausted)

	pwl := ctx.NewAntennaPWL()
	require.NoError(t, pwl.Add(0, 1))
	require.NoError(t, pwl.Add(1, 2))
	require.ErrorIs(t, pwl.Add(2, 3), ErrResourceExhausted)

	dn := ctx.NewDensity()
	_, err = dn.AddLayer("m1")
	require.NoError(t, err)
	require.NoError(t, dn.AddRect(0, 0, 1, 1, 10))
	require.NoError(t, dn.AddRect(1, 1, 2, 2, 20))
	require.ErrorIs(t, dn.AddRect(2, 2, 3, 3, 30), ErrResourceExhausted)

	g := ctx.NewGeometries()
	require.NoError(t, g.AddLayer("m1"))
	g.StartList(0, 0)
	g.AddToList(1, 0)
	g.AddToList(1, 1)
	require.ErrorIs(t, g.AddPath(0), ErrResourceExhausted)

	lib := ctx.Library()
	require.NoError(t, lib.AddPropDef(PropDef{Object: "LAYER", Name: "a", Type: "INTEGER"}))
	require.NoError(t, lib.AddPropDef(PropDef{Object: "LAYER", Name: "b", Type: "INTEGER"}))
	require.ErrorIs(t, lib.AddPropDef(PropDef{Object: "LAYER", Name: "c", Type: "INTEGER"}), ErrResourceExhausted)
}

func TestPinPortInheritsContextLimit(t *testing.T) {
	cfg := DefaultContextConfig()
	cfg.SeqLimit = 2
	ctx := NewContext(cfg)

	p := ctx.NewPin()
	port, err := p.NewPort()
	require.NoError(t, err)
	require.NoError(t, port.AddLayer("m1"))
	require.NoError(t, port.AddRect(0, 0, 0, 1, 1))
	require.ErrorIs(t, port.AddRect(0, 1, 1, 2, 2), ErrResourceExhausted)

	_, err = p.NewPort()
	require.NoError(t, err)
	_, err = p.NewPort()
	require.ErrorIs(t, err, ErrResourceExhausted)
}

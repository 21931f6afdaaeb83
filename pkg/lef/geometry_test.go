package lef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeometriesItemsKeepOrderAndType(t *testing.T) {
	g := NewGeometries(nil)
	require.NoError(t, g.AddLayer("metal1"))
	require.NoError(t, g.AddWidth(0.2))
	g.StartList(0, 0)
	g.AddToList(1, 0)
	g.AddToList(1, 1)
	require.NoError(t, g.AddPath(0))
	require.NoError(t, g.AddRect(2, 0, 0, 1, 2))
	require.NoError(t, g.AddVia(0, 5, 5, "via12"))

	want := []GeomType{ItemLayer, ItemWidth, ItemPath, ItemRect, ItemVia}
	require.Equal(t, len(want), g.NumItems())
	for i, typ := range want {
		got, err := g.ItemType(i)
		require.NoError(t, err)
		require.Equal(t, typ, got, "item %d", i)
	}

	name, err := g.Layer(0)
	require.NoError(t, err)
	require.Equal(t, "metal1", name)

	p, err := g.Path(2)
	require.NoError(t, err)
	require.Equal(t, 3, p.NumPoints())
	require.Equal(t, []float64{0, 1, 1}, p.X)
	require.Equal(t, []float64{0, 0, 1}, p.Y)

	r, err := g.Rect(3)
	require.NoError(t, err)
	require.Equal(t, GeomRect{ColorMask: 2, XL: 0, YL: 0, XH: 1, YH: 2}, r)

	require.Equal(t, 1, g.CountType(ItemRect))
	require.Equal(t, 0, g.CountType(ItemPolygon))
}

func TestGeometriesPathOwnsItsPoints(t *testing.T) {
	g := NewGeometries(nil)
	g.StartList(1, 1)
	g.AddToList(2, 2)
	require.NoError(t, g.AddPath(0))

	g.StartList(9, 9)
	require.Equal(t, 1, g.NumPendingPoints())
	g.AddToList(8, 8)
	g.AddToList(7, 7)
	require.NoError(t, g.AddPolygon(1))

	p, err := g.Path(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, p.X)

	poly, err := g.Polygon(1)
	require.NoError(t, err)
	require.Equal(t, 3, poly.NumPoints())
	require.Equal(t, 1, poly.ColorMask)
	require.Equal(t, []float64{9, 8, 7}, poly.Y)
}

func TestGeometriesViaMask(t *testing.T) {
	tests := []struct {
		mask             int
		top, cut, bottom int
	}{
		{0, 0, 0, 0},
		{123, 1, 2, 3},
		{3, 0, 0, 3},
		{20, 0, 2, 0},
		{301, 3, 0, 1},
	}
	for _, tt := range tests {
		g := NewGeometries(nil)
		require.NoError(t, g.AddVia(tt.mask, 1, 2, "v"))
		v, err := g.Via(0)
		require.NoError(t, err)
		require.Equal(t, tt.top, v.TopMaskNum, "mask %d", tt.mask)
		require.Equal(t, tt.cut, v.CutMaskNum, "mask %d", tt.mask)
		require.Equal(t, tt.bottom, v.BottomMaskNum, "mask %d", tt.mask)
	}
}

func TestGeometriesIterCapturesStep(t *testing.T) {
	g := NewGeometries(nil)
	g.AddStepPattern(3, 2, 10, 20)
	require.NoError(t, g.AddRectIter(0, 0, 0, 1, 1))
	require.NoError(t, g.AddViaIter(0, 0, 0, "v"))
	g.AddStepPattern(1, 1, 0, 0)
	require.NoError(t, g.AddRectIter(0, 0, 0, 1, 1))

	ri, err := g.RectIter(0)
	require.NoError(t, err)
	require.Equal(t, StepPattern{NumX: 3, NumY: 2, StepX: 10, StepY: 20}, ri.Step)
	require.Equal(t, 1.0, ri.XH)

	vi, err := g.ViaIter(1)
	require.NoError(t, err)
	require.Equal(t, 10.0, vi.Step.StepX)

	ri, err = g.RectIter(2)
	require.NoError(t, err)
	require.Equal(t, 1.0, ri.Step.NumX)
}

func TestGeometriesWrongItemType(t *testing.T) {
	g := NewGeometries(nil)
	require.NoError(t, g.AddLayer("m1"))
	require.NoError(t, g.AddRect(0, 0, 0, 1, 1))

	_, err := g.Rect(0)
	require.ErrorIs(t, err, ErrItemType)
	_, err = g.Layer(1)
	require.ErrorIs(t, err, ErrItemType)
	_, err = g.Rect(2)
	require.ErrorIs(t, err, ErrInvalidIndex)

	typ, err := g.ItemType(-1)
	require.ErrorIs(t, err, ErrInvalidIndex)
	require.Equal(t, ItemUnknown, typ)
}

func TestGeometriesNameCase(t *testing.T) {
	g := NewGeometries(NewNameCase(false))
	require.NoError(t, g.AddLayer("metal1"))
	require.NoError(t, g.AddVia(0, 0, 0, "via12"))
	require.NoError(t, g.AddClass("core"))

	l, _ := g.Layer(0)
	v, _ := g.Via(1)
	c, _ := g.Class(2)
	require.Equal(t, "METAL1", l)
	require.Equal(t, "VIA12", v.Name)
	require.Equal(t, "CORE", c)
}

func TestGeometriesLimit(t *testing.T) {
	g := NewGeometries(nil)
	g.items.SetLimit(2)
	require.NoError(t, g.AddLayer("m1"))
	require.NoError(t, g.AddRect(0, 0, 0, 1, 1))
	require.ErrorIs(t, g.AddRect(0, 0, 0, 1, 1), ErrResourceExhausted)
	require.Equal(t, 2, g.NumItems())
}

func TestGeometriesClear(t *testing.T) {
	g := NewGeometries(nil)
	require.NoError(t, g.AddLayer("m1"))
	g.StartList(0, 0)
	g.Clear()
	require.Zero(t, g.NumItems())
	require.Zero(t, g.NumPendingPoints())
	require.True(t, g.Bounds().IsEmpty())
}

func TestGeometriesBounds(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *Geometries)
		want  Box
	}{
		{
			name: "rects",
			build: func(g *Geometries) {
				_ = g.AddLayer("m1")
				_ = g.AddRect(0, 0, 0, 1, 1)
				_ = g.AddRect(0, 2, -1, 3, 0.5)
			},
			want: Box{Min: Point{0, -1}, Max: Point{3, 1}},
		},
		{
			name: "path widened by half width",
			build: func(g *Geometries) {
				_ = g.AddWidth(2)
				g.StartList(0, 0)
				g.AddToList(10, 0)
				_ = g.AddPath(0)
			},
			want: Box{Min: Point{-1, -1}, Max: Point{11, 1}},
		},
		{
			name: "iterated rect includes last copy",
			build: func(g *Geometries) {
				g.AddStepPattern(3, 2, 10, 5)
				_ = g.AddRectIter(0, 0, 0, 1, 1)
			},
			want: Box{Min: Point{0, 0}, Max: Point{21, 6}},
		},
		{
			name: "via is a point",
			build: func(g *Geometries) {
				_ = g.AddVia(0, 4, 7, "v")
				_ = g.AddVia(0, -4, 2, "v")
			},
			want: Box{Min: Point{-4, 2}, Max: Point{4, 7}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeometries(nil)
			tt.build(g)
			require.Equal(t, tt.want, g.Bounds())
		})
	}
}

package lef

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chewxy/sexp"
	"github.com/stretchr/testify/require"
)

func parseDump(t *testing.T, dump string) {
	t.Helper()
	exprs, err := sexp.ParseString(dump)
	require.NoError(t, err, "dump:\n%s", dump)
	require.Len(t, exprs, 1, "dump:\n%s", dump)
	require.False(t, exprs[0].IsLeaf())
}

func TestPrintIsWellFormed(t *testing.T) {
	macro := buildInverter(t)
	require.NoError(t, macro.AddProp("LEF58_CLASS", "core", PropString))
	dn := NewDensity(nil)
	_, err := dn.AddLayer("metal1")
	require.NoError(t, err)
	require.NoError(t, dn.AddRect(0, 0, 1, 1, 40))
	macro.SetDensity(dn)

	layer := NewLayer(nil)
	layer.SetName("metal1")
	layer.SetType("ROUTING")
	layer.SetDirection("HORIZONTAL")
	layer.SetPitch(0.2)
	layer.SetWidth(0.1)
	_, err = layer.AddSpacing(0.1)
	require.NoError(t, err)
	_, err = layer.AddSpacingTable()
	require.NoError(t, err)
	layer.AddNumber(0)
	layer.AddNumber(1)
	require.NoError(t, layer.AddSpParallelLength())
	require.NoError(t, layer.AddSpParallelWidth(0))
	layer.AddNumber(0.1)
	layer.AddNumber(0.2)
	require.NoError(t, layer.AddSpParallelWidthSpacing())
	require.NoError(t, layer.SetAntennaValue(AntennaCAR, 400))

	via := NewVia(nil)
	via.SetName("via12", ViaDefault)
	_, err = via.AddLayer("via1")
	require.NoError(t, err)
	require.NoError(t, via.AddRectToLayer(0, -0.05, -0.05, 0.05, 0.05))

	rule := NewViaRule(nil)
	rule.SetName("gen12")
	rule.SetGenerate()
	vl, err := rule.AddLayer("metal1")
	require.NoError(t, err)
	vl.SetEnclosure(0.01, 0.05)

	ndr := NewNonDefaultRule(nil)
	ndr.SetName("wide")
	_, err = ndr.AddLayer("metal1")
	require.NoError(t, err)
	require.NoError(t, ndr.AddWidth(0.3))

	site := NewSite(nil)
	site.SetName("core")
	site.SetSize(0.2, 1.4)

	arr := NewArray(nil)
	arr.SetName("arr")
	require.NoError(t, arr.AddDefaultCap(1, 0.2))

	tests := []struct {
		name  string
		print func(b *bytes.Buffer) error
		head  string
	}{
		{"macro", func(b *bytes.Buffer) error { return macro.Print(b) }, "(macro INV"},
		{"layer", func(b *bytes.Buffer) error { return layer.Print(b) }, "(layer metal1"},
		{"via", func(b *bytes.Buffer) error { return via.Print(b) }, "(via via12"},
		{"viarule", func(b *bytes.Buffer) error { return rule.Print(b) }, "(viarule gen12"},
		{"nondefault", func(b *bytes.Buffer) error { return ndr.Print(b) }, "(nondefaultrule wide"},
		{"site", func(b *bytes.Buffer) error { return site.Print(b) }, "(site core"},
		{"array", func(b *bytes.Buffer) error { return arr.Print(b) }, "(array arr"},
		{"density", func(b *bytes.Buffer) error { return dn.Print(b) }, "(density"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, tt.print(&b))
			require.True(t, strings.HasPrefix(b.String(), tt.head), "dump:\n%s", b.String())
			parseDump(t, b.String())
		})
	}
}

func TestLibraryPrintIsWellFormed(t *testing.T) {
	lib := NewLibrary(nil)
	lib.Version = "5.8"
	lib.DividerChar = "/"
	var u Units
	u.SetDatabase("MICRONS", 1000)
	lib.Units.Set(u)
	lib.ManufacturingGrid.Set(0.005)
	lib.PropDefs = append(lib.PropDefs, PropDef{Object: "MACRO", Name: "area", Type: "REAL"})
	require.NoError(t, lib.AddMacro(buildInverter(t)))

	var b bytes.Buffer
	require.NoError(t, lib.Print(&b))
	out := b.String()
	require.Contains(t, out, "(version 5.8)")
	require.Contains(t, out, "(manufacturinggrid 0.005)")
	require.Contains(t, out, "(macro INV")
	parseDump(t, out)
}

func TestPrintGeometryItems(t *testing.T) {
	g := NewGeometries(nil)
	require.NoError(t, g.AddLayer("metal2"))
	require.NoError(t, g.AddWidth(0.1))
	g.StartList(0, 0)
	g.AddToList(1, 0)
	require.NoError(t, g.AddPath(0))
	require.NoError(t, g.AddVia(123, 1, 1, "via12"))

	var b bytes.Buffer
	o := NewObstruction(g)
	require.NoError(t, o.Print(&b))
	require.Equal(t, "(obs\n  (layer metal2)\n  (width 0.1)\n  (path 0 0 0 1 0)\n  (via via12 1 1 1 2 3)\n)\n", b.String())
}

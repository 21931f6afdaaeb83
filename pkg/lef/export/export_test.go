package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/reader"
)

func sampleLibrary(t *testing.T) *lef.Library {
	t.Helper()
	p, err := reader.NewParser(nil)
	require.NoError(t, err)
	lib, err := p.ParseFile(filepath.Join("..", "reader", "testdata", "sample.lef"))
	require.NoError(t, err)
	return lib
}

func TestSummarizeSample(t *testing.T) {
	s, err := Summarize(sampleLibrary(t), "sample.lef")
	require.NoError(t, err)

	assert.Equal(t, Schema, s.Schema)
	assert.Equal(t, "5.8", s.Version)
	assert.Equal(t, 2000.0, s.DBPerMicron)
	assert.Equal(t, uint32(1), s.Warnings)

	require.Len(t, s.Layers, 4)
	m1 := s.Layers[1]
	assert.Equal(t, Layer{Name: "metal1", Type: "ROUTING", Direction: "HORIZONTAL", Width: 0.07, Pitch: 0.2}, m1)

	require.Len(t, s.Vias, 2)
	assert.Equal(t, "via12", s.Vias[0].Name)
	assert.True(t, s.Vias[0].Default)
	assert.Equal(t, []string{"metal1", "via1", "metal2"}, s.Vias[0].Layers)

	require.Len(t, s.Sites, 1)
	assert.Equal(t, Site{Name: "core", Class: "CORE", Width: 0.19, Height: 1.4}, s.Sites[0])

	inv := s.Macro("INV")
	require.NotNil(t, inv)
	assert.Equal(t, "core", inv.Site)
	assert.Equal(t, uint32(1), inv.ObsDefs)
	require.Len(t, inv.Pins, 2)
	assert.Equal(t, Pin{Name: "A", Direction: "INPUT", Use: "SIGNAL", Ports: 1, Shapes: 1}, inv.Pins[0])
	// PATH and POLYGON; WIDTH, LAYER and CLASS are not shapes
	assert.Equal(t, uint32(2), inv.Pins[1].Shapes)

	assert.Nil(t, s.Macro("NAND2"))
}

func TestEncodeDecode(t *testing.T) {
	lib := sampleLibrary(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, lib, "sample.lef"))

	got, err := Decode(&buf)
	require.NoError(t, err)
	want, err := Summarize(lib, "sample.lef")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	b, err := msgpack.Marshal(&Summary{Schema: Schema + 1})
	require.NoError(t, err)
	_, err = Decode(bytes.NewReader(b))
	require.ErrorIs(t, err, ErrSchema)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0xc1}))
	require.Error(t, err)
}

func TestSummarizeNil(t *testing.T) {
	_, err := Summarize(nil, "")
	require.Error(t, err)
}

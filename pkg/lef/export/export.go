// Package export writes a compact msgpack summary of a parsed library and
// reads it back. The summary carries what a placer or a lookup tool needs
// without the full rule set: units, routing layers, vias, sites and the
// macro pin list.
package export

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// Schema is bumped whenever Summary changes shape.
const Schema uint16 = 1

// ErrSchema is returned by Decode for a summary written by another schema.
var ErrSchema = errors.New("export: unsupported schema")

// Summary is the exported view of a library.
type Summary struct {
	Schema      uint16  `msgpack:"schema" json:"schema"`
	Source      string  `msgpack:"source,omitempty" json:"source,omitempty"`
	Version     string  `msgpack:"version,omitempty" json:"version,omitempty"`
	DBPerMicron float64 `msgpack:"dbu,omitempty" json:"dbu,omitempty"`
	Grid        float64 `msgpack:"grid,omitempty" json:"grid,omitempty"`
	Warnings    uint32  `msgpack:"warnings" json:"warnings"`

	Layers []Layer `msgpack:"layers" json:"layers"`
	Vias   []Via   `msgpack:"vias" json:"vias"`
	Sites  []Site  `msgpack:"sites" json:"sites"`
	Macros []Macro `msgpack:"macros" json:"macros"`
}

type Layer struct {
	Name      string  `msgpack:"name" json:"name"`
	Type      string  `msgpack:"type,omitempty" json:"type,omitempty"`
	Direction string  `msgpack:"dir,omitempty" json:"direction,omitempty"`
	Width     float64 `msgpack:"width,omitempty" json:"width,omitempty"`
	Pitch     float64 `msgpack:"pitch,omitempty" json:"pitch,omitempty"`
}

type Via struct {
	Name    string   `msgpack:"name" json:"name"`
	Default bool     `msgpack:"default,omitempty" json:"default,omitempty"`
	Layers  []string `msgpack:"layers" json:"layers"`
}

type Site struct {
	Name   string  `msgpack:"name" json:"name"`
	Class  string  `msgpack:"class,omitempty" json:"class,omitempty"`
	Width  float64 `msgpack:"w" json:"width"`
	Height float64 `msgpack:"h" json:"height"`
}

type Macro struct {
	Name    string  `msgpack:"name" json:"name"`
	Class   string  `msgpack:"class,omitempty" json:"class,omitempty"`
	Site    string  `msgpack:"site,omitempty" json:"site,omitempty"`
	Width   float64 `msgpack:"w" json:"width"`
	Height  float64 `msgpack:"h" json:"height"`
	Pins    []Pin   `msgpack:"pins" json:"pins"`
	ObsDefs uint32  `msgpack:"obs" json:"obs"`
}

type Pin struct {
	Name      string `msgpack:"name" json:"name"`
	Direction string `msgpack:"dir,omitempty" json:"direction,omitempty"`
	Use       string `msgpack:"use,omitempty" json:"use,omitempty"`
	Ports     uint32 `msgpack:"ports" json:"ports"`
	Shapes    uint32 `msgpack:"shapes" json:"shapes"`
}

// Summarize builds the summary of lib. source is stored as given.
func Summarize(lib *lef.Library, source string) (*Summary, error) {
	if lib == nil {
		return nil, errors.New("export: nil library")
	}
	warnings, err := safecast.Conv[uint32](len(lib.Warnings))
	if err != nil {
		return nil, fmt.Errorf("export: warnings: %w", err)
	}
	s := &Summary{
		Schema:   Schema,
		Source:   source,
		Version:  lib.Version,
		Warnings: warnings,
		Grid:     lib.ManufacturingGrid.Or(0),
	}
	if u, ok := lib.Units.Get(); ok {
		s.DBPerMicron = u.Database.Or(0)
	}

	for _, l := range lib.Layers() {
		out := Layer{Name: l.Name(), Type: l.Type(), Direction: l.Direction()}
		out.Width, _ = l.Width()
		out.Pitch, _ = l.Pitch()
		s.Layers = append(s.Layers, out)
	}

	for _, v := range lib.Vias() {
		out := Via{Name: v.Name(), Default: v.HasDefault()}
		for i := range v.NumLayers() {
			vl, err := v.Layer(i)
			if err != nil {
				return nil, fmt.Errorf("export: via %s: %w", v.Name(), err)
			}
			out.Layers = append(out.Layers, vl.Name)
		}
		s.Vias = append(s.Vias, out)
	}

	for _, st := range lib.Sites() {
		out := Site{Name: st.Name(), Class: st.Class()}
		if sz, ok := st.Size(); ok {
			out.Width, out.Height = sz.X, sz.Y
		}
		s.Sites = append(s.Sites, out)
	}

	for _, m := range lib.Macros() {
		out, err := macro(m)
		if err != nil {
			return nil, fmt.Errorf("export: macro %s: %w", m.Name(), err)
		}
		s.Macros = append(s.Macros, out)
	}
	return s, nil
}

func macro(m *lef.Macro) (Macro, error) {
	out := Macro{Name: m.Name(), Class: m.Class(), Site: m.SiteName()}
	if sz, ok := m.Size(); ok {
		out.Width, out.Height = sz.X, sz.Y
	}
	obs, err := safecast.Conv[uint32](m.NumObstructions())
	if err != nil {
		return out, err
	}
	out.ObsDefs = obs

	for _, p := range m.Pins() {
		pin := Pin{Name: p.Name(), Direction: p.Direction(), Use: p.Use()}
		shapes := 0
		for i := range p.NumPorts() {
			g, err := p.Port(i)
			if err != nil {
				return out, err
			}
			shapes += countShapes(g)
		}
		if pin.Ports, err = safecast.Conv[uint32](p.NumPorts()); err != nil {
			return out, err
		}
		if pin.Shapes, err = safecast.Conv[uint32](shapes); err != nil {
			return out, err
		}
		out.Pins = append(out.Pins, pin)
	}
	return out, nil
}

func countShapes(g *lef.Geometries) int {
	n := 0
	for _, it := range g.Items() {
		switch it.Type() {
		case lef.ItemRect, lef.ItemRectIter,
			lef.ItemPath, lef.ItemPathIter,
			lef.ItemPolygon, lef.ItemPolygonIter,
			lef.ItemVia, lef.ItemViaIter:
			n++
		}
	}
	return n
}

// Encode writes the summary of lib to w.
func Encode(w io.Writer, lib *lef.Library, source string) error {
	s, err := Summarize(lib, source)
	if err != nil {
		return err
	}
	return EncodeSummary(w, s)
}

// EncodeSummary writes s to w.
func EncodeSummary(w io.Writer, s *Summary) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}

// Decode reads a summary written by Encode.
func Decode(r io.Reader) (*Summary, error) {
	var s Summary
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("export: decode: %w", err)
	}
	if s.Schema != Schema {
		return nil, fmt.Errorf("%w %d", ErrSchema, s.Schema)
	}
	return &s, nil
}

// Macro returns the macro called name, or nil.
func (s *Summary) Macro(name string) *Macro {
	for i := range s.Macros {
		if s.Macros[i].Name == name {
			return &s.Macros[i]
		}
	}
	return nil
}

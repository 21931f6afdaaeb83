package lef

import (
	"fmt"
	"io"
)

// PropDef is one entry of a PROPERTYDEFINITIONS block.
type PropDef struct {
	Object string // LIBRARY, LAYER, VIA, VIARULE, NONDEFAULTRULE, MACRO, PIN
	Name   string
	Type   string // INTEGER, REAL or STRING
	Range  Opt[MinMax]
	Value  string
}

// Extension is a BEGINEXT block, kept verbatim.
type Extension struct {
	Tag  string
	Body string
}

// index keeps records of one kind in definition order with a by-name map.
// A redefinition replaces the map entry; both records stay in the list.
type index[T any] struct {
	list   Seq[*T]
	byName map[string]*T
}

func newIndex[T any](what string) index[T] {
	return index[T]{list: NewSeq[*T](what), byName: make(map[string]*T)}
}

func (ix *index[T]) add(name string, v *T) (replaced bool, err error) {
	if err := ix.list.Append(v); err != nil {
		return false, err
	}
	_, replaced = ix.byName[name]
	ix.byName[name] = v
	return replaced, nil
}

func (ix *index[T]) get(name string) (*T, bool) {
	v, ok := ix.byName[name]
	return v, ok
}

// Library is the result of reading one LEF file: the library level
// statements plus every completed record.
type Library struct {
	names *NameCase

	Version           string
	BusBitChars       string
	DividerChar       string
	Units             Opt[Units]
	ManufacturingGrid Opt[float64]
	UseMinSpacing     []UseMinSpacing
	ClearanceMeasure  string
	MaxViaStack       Opt[MaxStackVia]
	MinFeature        Opt[MinFeature]
	FixedMask         bool
	PropDefs          []PropDef
	Spacings          []Spacing
	IRDrops           []IRDrop
	Extensions        []Extension

	// Warnings collects non-fatal problems found while reading.
	Warnings []string

	layers      index[Layer]
	vias        index[Via]
	viaRules    index[ViaRule]
	nonDefaults index[NonDefaultRule]
	sites       index[Site]
	macros      index[Macro]
	arrays      index[Array]

	limit int
}

// NewLibrary returns an empty library using names to normalize lookups.
func NewLibrary(names *NameCase) *Library {
	return &Library{
		names:       names,
		layers:      newIndex[Layer]("layer"),
		vias:        newIndex[Via]("via"),
		viaRules:    newIndex[ViaRule]("viarule"),
		nonDefaults: newIndex[NonDefaultRule]("nondefaultrule"),
		sites:       newIndex[Site]("site"),
		macros:      newIndex[Macro]("macro"),
		arrays:      newIndex[Array]("array"),
	}
}

func (lib *Library) setLimit(n int) {
	lib.limit = n
	lib.layers.list.SetLimit(n)
	lib.vias.list.SetLimit(n)
	lib.viaRules.list.SetLimit(n)
	lib.nonDefaults.list.SetLimit(n)
	lib.sites.list.SetLimit(n)
	lib.macros.list.SetLimit(n)
	lib.arrays.list.SetLimit(n)
}

func addLimited[T any](dst *[]T, what string, limit int, v ...T) error {
	if err := room(what, len(*dst), len(v), limit); err != nil {
		return err
	}
	*dst = append(*dst, v...)
	return nil
}

// AddUseMinSpacing appends a USEMINSPACING statement.
func (lib *Library) AddUseMinSpacing(u UseMinSpacing) error {
	return addLimited(&lib.UseMinSpacing, "useminspacing", lib.limit, u)
}

// AddPropDef appends a PROPERTYDEFINITIONS entry.
func (lib *Library) AddPropDef(def PropDef) error {
	return addLimited(&lib.PropDefs, "property definition", lib.limit, def)
}

// AddSpacings appends the entries of a SPACING block.
func (lib *Library) AddSpacings(sp ...Spacing) error {
	return addLimited(&lib.Spacings, "spacing", lib.limit, sp...)
}

// AddIRDrop appends an IRDROP table.
func (lib *Library) AddIRDrop(t IRDrop) error {
	if err := room("irdrop point", 0, len(t.Values), lib.limit); err != nil {
		return err
	}
	return addLimited(&lib.IRDrops, "irdrop table", lib.limit, t)
}

// AddExtension appends a BEGINEXT block.
func (lib *Library) AddExtension(e Extension) error {
	return addLimited(&lib.Extensions, "extension", lib.limit, e)
}

// SetNameCase replaces the lookup name policy, e.g. after
// NAMESCASESENSITIVE.
func (lib *Library) SetNameCase(names *NameCase) { lib.names = names }

// Warnf records a warning.
func (lib *Library) Warnf(format string, args ...any) {
	lib.Warnings = append(lib.Warnings, fmt.Sprintf(format, args...))
}

func (lib *Library) noteRedefined(kind, name string, replaced bool) {
	if replaced {
		lib.Warnf("%s %s redefined", kind, name)
	}
}

// AddLayer stores a completed LAYER.
func (lib *Library) AddLayer(l *Layer) error {
	replaced, err := lib.layers.add(l.Name(), l)
	lib.noteRedefined("layer", l.Name(), replaced)
	return err
}

// AddVia stores a completed VIA.
func (lib *Library) AddVia(v *Via) error {
	replaced, err := lib.vias.add(v.Name(), v)
	lib.noteRedefined("via", v.Name(), replaced)
	return err
}

// AddViaRule stores a completed VIARULE.
func (lib *Library) AddViaRule(r *ViaRule) error {
	replaced, err := lib.viaRules.add(r.Name(), r)
	lib.noteRedefined("viarule", r.Name(), replaced)
	return err
}

// AddNonDefaultRule stores a completed NONDEFAULTRULE.
func (lib *Library) AddNonDefaultRule(r *NonDefaultRule) error {
	replaced, err := lib.nonDefaults.add(r.Name(), r)
	lib.noteRedefined("nondefaultrule", r.Name(), replaced)
	return err
}

// AddSite stores a completed SITE.
func (lib *Library) AddSite(s *Site) error {
	replaced, err := lib.sites.add(s.Name(), s)
	lib.noteRedefined("site", s.Name(), replaced)
	return err
}

// AddMacro stores a completed MACRO.
func (lib *Library) AddMacro(m *Macro) error {
	replaced, err := lib.macros.add(m.Name(), m)
	lib.noteRedefined("macro", m.Name(), replaced)
	return err
}

// AddArray stores a completed ARRAY.
func (lib *Library) AddArray(a *Array) error {
	replaced, err := lib.arrays.add(a.Name(), a)
	lib.noteRedefined("array", a.Name(), replaced)
	return err
}

func (lib *Library) Layer(name string) (*Layer, bool) { return lib.layers.get(lib.names.Apply(name)) }
func (lib *Library) Via(name string) (*Via, bool)     { return lib.vias.get(lib.names.Apply(name)) }
func (lib *Library) ViaRule(name string) (*ViaRule, bool) {
	return lib.viaRules.get(lib.names.Apply(name))
}
func (lib *Library) NonDefaultRule(name string) (*NonDefaultRule, bool) {
	return lib.nonDefaults.get(lib.names.Apply(name))
}
func (lib *Library) Site(name string) (*Site, bool)   { return lib.sites.get(lib.names.Apply(name)) }
func (lib *Library) Macro(name string) (*Macro, bool) { return lib.macros.get(lib.names.Apply(name)) }
func (lib *Library) Array(name string) (*Array, bool) { return lib.arrays.get(lib.names.Apply(name)) }

func (lib *Library) Layers() []*Layer                   { return lib.layers.list.Values() }
func (lib *Library) Vias() []*Via                       { return lib.vias.list.Values() }
func (lib *Library) ViaRules() []*ViaRule               { return lib.viaRules.list.Values() }
func (lib *Library) NonDefaultRules() []*NonDefaultRule { return lib.nonDefaults.list.Values() }
func (lib *Library) Sites() []*Site                     { return lib.sites.list.Values() }
func (lib *Library) Macros() []*Macro                   { return lib.macros.list.Values() }
func (lib *Library) Arrays() []*Array                   { return lib.arrays.list.Values() }

func (lib *Library) NumLayers() int          { return lib.layers.list.Len() }
func (lib *Library) NumVias() int            { return lib.vias.list.Len() }
func (lib *Library) NumViaRules() int        { return lib.viaRules.list.Len() }
func (lib *Library) NumNonDefaultRules() int { return lib.nonDefaults.list.Len() }
func (lib *Library) NumSites() int           { return lib.sites.list.Len() }
func (lib *Library) NumMacros() int          { return lib.macros.list.Len() }
func (lib *Library) NumArrays() int          { return lib.arrays.list.Len() }

// Print writes the whole library as an s-expression.
func (lib *Library) Print(w io.Writer) error {
	d := newDumper(w)
	d.open("library")
	d.str("version", lib.Version)
	d.str("busbitchars", lib.BusBitChars)
	d.str("dividerchar", lib.DividerChar)
	if u, ok := lib.Units.Get(); ok {
		u.dump(d)
	}
	optLeaf(d, "manufacturinggrid", lib.ManufacturingGrid)
	for _, u := range lib.UseMinSpacing {
		d.leaf("useminspacing", u.Name, u.Value)
	}
	d.str("clearancemeasure", lib.ClearanceMeasure)
	if m, ok := lib.MaxViaStack.Get(); ok {
		args := []any{m.Value}
		if m.HasRange() {
			args = append(args, m.BottomLayer, m.TopLayer)
		}
		d.leaf("maxviastack", args...)
	}
	if m, ok := lib.MinFeature.Get(); ok {
		d.leaf("minfeature", m.X, m.Y)
	}
	d.flag("fixedmask", lib.FixedMask)
	for _, p := range lib.PropDefs {
		args := []any{p.Object, p.Name, p.Type}
		if r, ok := p.Range.Get(); ok {
			args = append(args, r.Min, r.Max)
		}
		if p.Value != "" {
			args = append(args, p.Value)
		}
		d.leaf("propertydefinition", args...)
	}
	for _, s := range lib.Spacings {
		dumpSpacing(d, s)
	}
	for _, r := range lib.IRDrops {
		args := []any{r.Name}
		for _, v := range r.Values {
			args = append(args, v.Value1, v.Value2)
		}
		d.leaf("irdrop", args...)
	}
	for _, l := range lib.layers.list.items {
		l.dump(d)
	}
	for _, v := range lib.vias.list.items {
		v.dump(d)
	}
	for _, r := range lib.viaRules.list.items {
		r.dump(d)
	}
	for _, r := range lib.nonDefaults.list.items {
		r.dump(d)
	}
	for _, s := range lib.sites.list.items {
		s.dump(d)
	}
	for _, m := range lib.macros.list.items {
		m.dump(d)
	}
	for _, a := range lib.arrays.list.items {
		a.dump(d)
	}
	for _, e := range lib.Extensions {
		d.leaf("beginext", e.Tag)
	}
	d.close()
	return d.err()
}

package lef

import "io"

// FloorPlanSite is a CANPLACE or CANNOTOCCUPY entry of a floor plan.
type FloorPlanSite struct {
	Kind string // CANPLACE or CANNOTOCCUPY
	SitePattern
}

// FloorPlan is a FLOORPLAN section of an array.
type FloorPlan struct {
	Name  string
	Sites []FloorPlanSite
}

// DefaultCap is one MINPINS/WIRECAP row of a DEFAULTCAP table.
type DefaultCap struct {
	MinPins float64
	WireCap float64
}

// Array is an ARRAY definition.
type Array struct {
	names *NameCase

	name         string
	sites        Seq[SitePattern]
	canPlace     Seq[SitePattern]
	cannotOccupy Seq[SitePattern]
	tracks       Seq[TrackPattern]
	gcells       Seq[GcellPattern]
	floorPlans   Seq[*FloorPlan]
	tableSize    Opt[int]
	defaultCaps  Seq[DefaultCap]
	props        Properties

	limit int
}

// NewArray returns an empty array using names for name conversion.
func NewArray(names *NameCase) *Array {
	a := &Array{names: names}
	a.Reset()
	return a
}

// Reset clears every field but the name policy and the list limit.
func (a *Array) Reset() {
	names, n := a.names, a.limit
	*a = Array{
		names:        names,
		limit:        n,
		sites:        limitedSeq[SitePattern]("array site", n),
		canPlace:     limitedSeq[SitePattern]("canplace", n),
		cannotOccupy: limitedSeq[SitePattern]("cannotoccupy", n),
		tracks:       limitedSeq[TrackPattern]("tracks", n),
		gcells:       limitedSeq[GcellPattern]("gcellgrid", n),
		floorPlans:   limitedSeq[*FloorPlan]("floorplan", n),
		defaultCaps:  limitedSeq[DefaultCap]("defaultcap", n),
		props:        newProperties(n),
	}
}

// setLimit caps every list of the array at n entries and clears the array.
func (a *Array) setLimit(n int) {
	a.limit = n
	a.Reset()
}

// SetName resets the array and names it.
func (a *Array) SetName(name string) {
	a.Reset()
	a.name = a.names.Apply(name)
}

func (a *Array) pattern(p SitePattern) SitePattern {
	p.Name = a.names.Apply(p.Name)
	return p
}

func (a *Array) AddSitePattern(p SitePattern) error  { return a.sites.Append(a.pattern(p)) }
func (a *Array) AddCanPlace(p SitePattern) error     { return a.canPlace.Append(a.pattern(p)) }
func (a *Array) AddCannotOccupy(p SitePattern) error { return a.cannotOccupy.Append(a.pattern(p)) }

// AddTrack appends a TRACKS statement.
func (a *Array) AddTrack(t TrackPattern) error {
	layers := make([]string, len(t.Layers))
	for i, l := range t.Layers {
		layers[i] = a.names.Apply(l)
	}
	t.Layers = layers
	return a.tracks.Append(t)
}

// AddGcell appends a GCELLGRID statement.
func (a *Array) AddGcell(g GcellPattern) error { return a.gcells.Append(g) }

// AddFloorPlan opens a FLOORPLAN section.
func (a *Array) AddFloorPlan(name string) (*FloorPlan, error) {
	return appendEntry(&a.floorPlans, &FloorPlan{Name: a.names.Apply(name)})
}

// AddSiteToFloorPlan appends a CANPLACE or CANNOTOCCUPY entry to the floor
// plan opened last.
func (a *Array) AddSiteToFloorPlan(kind string, p SitePattern) error {
	fp, err := lastEntry(&a.floorPlans, "AddSiteToFloorPlan", "AddFloorPlan")
	if err != nil {
		return err
	}
	if err := room("floorplan site", len(fp.Sites), 1, a.limit); err != nil {
		return err
	}
	fp.Sites = append(fp.Sites, FloorPlanSite{Kind: kind, SitePattern: a.pattern(p)})
	return nil
}

// SetTableSize records the declared number of DEFAULTCAP rows.
func (a *Array) SetTableSize(n int) { a.tableSize.Set(n) }

// AddDefaultCap appends a DEFAULTCAP row.
func (a *Array) AddDefaultCap(minPins, wireCap float64) error {
	return a.defaultCaps.Append(DefaultCap{MinPins: minPins, WireCap: wireCap})
}

func (a *Array) AddProp(name, value string, typ PropType) error {
	return a.props.Add(name, value, typ)
}

func (a *Array) AddNumProp(name string, d float64, value string, typ PropType) error {
	return a.props.AddNum(name, d, value, typ)
}

func (a *Array) Name() string                            { return a.name }
func (a *Array) NumSitePattern() int                     { return a.sites.Len() }
func (a *Array) SitePattern(i int) (SitePattern, error)  { return a.sites.At(i) }
func (a *Array) NumCanPlace() int                        { return a.canPlace.Len() }
func (a *Array) CanPlace(i int) (SitePattern, error)     { return a.canPlace.At(i) }
func (a *Array) NumCannotOccupy() int                    { return a.cannotOccupy.Len() }
func (a *Array) CannotOccupy(i int) (SitePattern, error) { return a.cannotOccupy.At(i) }
func (a *Array) NumTrack() int                           { return a.tracks.Len() }
func (a *Array) Track(i int) (TrackPattern, error)       { return a.tracks.At(i) }
func (a *Array) NumGcell() int                           { return a.gcells.Len() }
func (a *Array) Gcell(i int) (GcellPattern, error)       { return a.gcells.At(i) }
func (a *Array) NumFloorPlans() int                      { return a.floorPlans.Len() }
func (a *Array) FloorPlan(i int) (*FloorPlan, error)     { return a.floorPlans.At(i) }
func (a *Array) TableSize() (int, bool)                  { return a.tableSize.Get() }
func (a *Array) NumDefaultCaps() int                     { return a.defaultCaps.Len() }
func (a *Array) DefaultCap(i int) (DefaultCap, error)    { return a.defaultCaps.At(i) }
func (a *Array) Props() *Properties                      { return &a.props }
func (a *Array) NumProps() int                           { return a.props.Len() }

// Print writes the array as an s-expression.
func (a *Array) Print(w io.Writer) error {
	d := newDumper(w)
	a.dump(d)
	return d.err()
}

func (a *Array) dump(d *dumper) {
	d.open("array", a.name)
	for _, p := range a.sites.items {
		dumpSitePattern(d, p)
	}
	for _, p := range a.canPlace.items {
		d.open("canplace")
		dumpSitePattern(d, p)
		d.close()
	}
	for _, p := range a.cannotOccupy.items {
		d.open("cannotoccupy")
		dumpSitePattern(d, p)
		d.close()
	}
	for _, t := range a.tracks.items {
		args := []any{t.Name, t.Start, t.NumTracks, t.Space}
		for _, l := range t.Layers {
			args = append(args, l)
		}
		d.leaf("tracks", args...)
	}
	for _, g := range a.gcells.items {
		d.leaf("gcellgrid", g.Name, g.Start, g.NumCRs, g.Space)
	}
	for _, fp := range a.floorPlans.items {
		d.open("floorplan", fp.Name)
		for _, s := range fp.Sites {
			d.open(s.Kind)
			dumpSitePattern(d, s.SitePattern)
			d.close()
		}
		d.close()
	}
	if a.defaultCaps.Len() > 0 || a.tableSize.IsSet() {
		d.open("defaultcap", a.tableSize.Or(a.defaultCaps.Len()))
		for _, c := range a.defaultCaps.items {
			d.leaf("minpins", c.MinPins, "wirecap", c.WireCap)
		}
		d.close()
	}
	d.properties(&a.props)
	d.close()
}

package lef

import "fmt"

// GeomType tags an item of a geometry list.
type GeomType int

const (
	ItemUnknown GeomType = iota
	ItemLayer
	ItemLayerExceptPgNet
	ItemLayerMinSpacing
	ItemLayerRuleWidth
	ItemWidth
	ItemPath
	ItemPathIter
	ItemRect
	ItemRectIter
	ItemPolygon
	ItemPolygonIter
	ItemVia
	ItemViaIter
	ItemClass
	ItemLayerMask
)

var geomTypeNames = map[GeomType]string{
	ItemUnknown:          "UNKNOWN",
	ItemLayer:            "LAYER",
	ItemLayerExceptPgNet: "EXCEPTPGNET",
	ItemLayerMinSpacing:  "SPACING",
	ItemLayerRuleWidth:   "DESIGNRULEWIDTH",
	ItemWidth:            "WIDTH",
	ItemPath:             "PATH",
	ItemPathIter:         "PATH ITERATE",
	ItemRect:             "RECT",
	ItemRectIter:         "RECT ITERATE",
	ItemPolygon:          "POLYGON",
	ItemPolygonIter:      "POLYGON ITERATE",
	ItemVia:              "VIA",
	ItemViaIter:          "VIA ITERATE",
	ItemClass:            "CLASS",
	ItemLayerMask:        "MASK",
}

func (t GeomType) String() string {
	if s, ok := geomTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("GeomType(%d)", int(t))
}

// GeomItem is one entry of a Geometries list. The set of implementations
// is closed: the item kinds declared in this file.
type GeomItem interface {
	Type() GeomType
	geomItem()
}

// StepPattern is the DO numX BY numY STEP stepX stepY part of an ITERATE
// shape.
type StepPattern struct {
	NumX, NumY   float64
	StepX, StepY float64
}

// LayerItem opens a LAYER section; it governs every following shape until
// the next LayerItem.
type LayerItem struct{ Name string }

// LayerExceptPgNetItem marks the current layer EXCEPTPGNET.
type LayerExceptPgNetItem struct{}

// LayerMinSpacingItem is the SPACING value of the current layer.
type LayerMinSpacingItem struct{ Spacing float64 }

// LayerRuleWidthItem is the DESIGNRULEWIDTH value of the current layer.
type LayerRuleWidthItem struct{ Width float64 }

// LayerMaskItem is the MASK of the current layer.
type LayerMaskItem struct{ Mask int }

// WidthItem sets the path width for following PATH shapes.
type WidthItem struct{ Width float64 }

// ClassItem is a port CLASS directive.
type ClassItem struct{ Name string }

// GeomRect is a RECT shape.
type GeomRect struct {
	ColorMask      int
	XL, YL, XH, YH float64
}

// GeomRectIter is a RECT ITERATE shape.
type GeomRectIter struct {
	GeomRect
	Step StepPattern
}

// GeomPath is a PATH shape. X and Y have one entry per vertex.
type GeomPath struct {
	ColorMask int
	X, Y      []float64
}

// NumPoints returns the vertex count.
func (p GeomPath) NumPoints() int { return len(p.X) }

// GeomPathIter is a PATH ITERATE shape.
type GeomPathIter struct {
	GeomPath
	Step StepPattern
}

// GeomPolygon is a POLYGON shape.
type GeomPolygon struct {
	ColorMask int
	X, Y      []float64
}

// NumPoints returns the vertex count.
func (p GeomPolygon) NumPoints() int { return len(p.X) }

// GeomPolygonIter is a POLYGON ITERATE shape.
type GeomPolygonIter struct {
	GeomPolygon
	Step StepPattern
}

// GeomVia is a VIA placement. The three mask numbers come from the decimal
// digits of the via mask: top, cut, bottom.
type GeomVia struct {
	X, Y          float64
	Name          string
	TopMaskNum    int
	CutMaskNum    int
	BottomMaskNum int
}

// GeomViaIter is a VIA ITERATE placement.
type GeomViaIter struct {
	GeomVia
	Step StepPattern
}

func (LayerItem) Type() GeomType            { return ItemLayer }
func (LayerExceptPgNetItem) Type() GeomType { return ItemLayerExceptPgNet }
func (LayerMinSpacingItem) Type() GeomType  { return ItemLayerMinSpacing }
func (LayerRuleWidthItem) Type() GeomType   { return ItemLayerRuleWidth }
func (LayerMaskItem) Type() GeomType        { return ItemLayerMask }
func (WidthItem) Type() GeomType            { return ItemWidth }
func (ClassItem) Type() GeomType            { return ItemClass }
func (GeomRect) Type() GeomType             { return ItemRect }
func (GeomRectIter) Type() GeomType         { return ItemRectIter }
func (GeomPath) Type() GeomType             { return ItemPath }
func (GeomPathIter) Type() GeomType         { return ItemPathIter }
func (GeomPolygon) Type() GeomType          { return ItemPolygon }
func (GeomPolygonIter) Type() GeomType      { return ItemPolygonIter }
func (GeomVia) Type() GeomType              { return ItemVia }
func (GeomViaIter) Type() GeomType          { return ItemViaIter }

func (LayerItem) geomItem()            {}
func (LayerExceptPgNetItem) geomItem() {}
func (LayerMinSpacingItem) geomItem()  {}
func (LayerRuleWidthItem) geomItem()   {}
func (LayerMaskItem) geomItem()        {}
func (WidthItem) geomItem()            {}
func (ClassItem) geomItem()            {}
func (GeomRect) geomItem()             {}
func (GeomRectIter) geomItem()         {}
func (GeomPath) geomItem()             {}
func (GeomPathIter) geomItem()         {}
func (GeomPolygon) geomItem()          {}
func (GeomPolygonIter) geomItem()      {}
func (GeomVia) geomItem()              {}
func (GeomViaIter) geomItem()          {}

// SplitViaMask decomposes a via color mask into its per-layer digits:
// bottom = mask%10, cut = (mask/10)%10, top = mask/100.
func SplitViaMask(mask int) (top, cut, bottom int) {
	return mask / 100, mask / 10 % 10, mask % 10
}

// Geometries is an ordered list of geometry items, as found in a PORT, an
// OBS block, a via MINSIZE or a layer geometry. Order is significant: a
// LayerItem applies to every shape after it up to the next LayerItem.
//
// Paths and polygons are built by StartList/AddToList and closed by
// AddPath/AddPolygon, which copy the pending vertices into the new item.
type Geometries struct {
	items Seq[GeomItem]
	names *NameCase

	// pending vertices of the open path or polygon
	x, y []float64
	step StepPattern
}

// NewGeometries returns an empty list. names controls how layer, class and
// via names are stored; nil keeps them as written.
func NewGeometries(names *NameCase) *Geometries {
	return newGeometries(names, 0)
}

func newGeometries(names *NameCase, limit int) *Geometries {
	return &Geometries{items: limitedSeq[GeomItem]("geometry item", limit), names: names}
}

// Clear removes every item and the pending vertex list.
func (g *Geometries) Clear() {
	g.items.Reset()
	g.x = g.x[:0]
	g.y = g.y[:0]
	g.step = StepPattern{}
}

func (g *Geometries) add(it GeomItem) error {
	if g.items.what == "" {
		g.items.what = "geometry item"
	}
	return g.items.Append(it)
}

// AddLayer opens a LAYER section.
func (g *Geometries) AddLayer(name string) error {
	return g.add(LayerItem{Name: g.names.Apply(name)})
}

// AddLayerExceptPgNet marks the current layer EXCEPTPGNET.
func (g *Geometries) AddLayerExceptPgNet() error {
	return g.add(LayerExceptPgNetItem{})
}

// AddLayerMinSpacing records the current layer's SPACING.
func (g *Geometries) AddLayerMinSpacing(spacing float64) error {
	return g.add(LayerMinSpacingItem{Spacing: spacing})
}

// AddLayerRuleWidth records the current layer's DESIGNRULEWIDTH.
func (g *Geometries) AddLayerRuleWidth(width float64) error {
	return g.add(LayerRuleWidthItem{Width: width})
}

// AddLayerMask records the current layer's MASK.
func (g *Geometries) AddLayerMask(mask int) error {
	return g.add(LayerMaskItem{Mask: mask})
}

// AddWidth sets the width of following paths.
func (g *Geometries) AddWidth(w float64) error {
	return g.add(WidthItem{Width: w})
}

// AddClass records a port CLASS.
func (g *Geometries) AddClass(name string) error {
	return g.add(ClassItem{Name: g.names.Apply(name)})
}

// AddStepPattern sets the step pattern captured by following Iter shapes.
func (g *Geometries) AddStepPattern(numX, numY, stepX, stepY float64) {
	g.step = StepPattern{NumX: numX, NumY: numY, StepX: stepX, StepY: stepY}
}

// StartList discards pending vertices and starts a new list at (x, y).
func (g *Geometries) StartList(x, y float64) {
	if g.x == nil {
		g.x = make([]float64, 0, 16)
		g.y = make([]float64, 0, 16)
	}
	g.x = g.x[:0]
	g.y = g.y[:0]
	g.AddToList(x, y)
}

// AddToList appends a vertex to the pending list.
func (g *Geometries) AddToList(x, y float64) {
	g.x = append(g.x, x)
	g.y = append(g.y, y)
}

// NumPendingPoints returns the number of vertices collected since the last
// StartList.
func (g *Geometries) NumPendingPoints() int { return len(g.x) }

func (g *Geometries) snapshot() ([]float64, []float64, error) {
	if err := room("path point", len(g.x), 0, g.items.limit); err != nil {
		return nil, nil, err
	}
	if len(g.x) == 0 {
		return nil, nil, nil
	}
	x := make([]float64, len(g.x))
	y := make([]float64, len(g.y))
	copy(x, g.x)
	copy(y, g.y)
	return x, y, nil
}

// AddPath closes the pending vertices into a PATH.
func (g *Geometries) AddPath(colorMask int) error {
	x, y, err := g.snapshot()
	if err != nil {
		return err
	}
	return g.add(GeomPath{ColorMask: colorMask, X: x, Y: y})
}

// AddPathIter closes the pending vertices into a PATH ITERATE.
func (g *Geometries) AddPathIter(colorMask int) error {
	x, y, err := g.snapshot()
	if err != nil {
		return err
	}
	return g.add(GeomPathIter{GeomPath: GeomPath{ColorMask: colorMask, X: x, Y: y}, Step: g.step})
}

// AddPolygon closes the pending vertices into a POLYGON.
func (g *Geometries) AddPolygon(colorMask int) error {
	x, y, err := g.snapshot()
	if err != nil {
		return err
	}
	return g.add(GeomPolygon{ColorMask: colorMask, X: x, Y: y})
}

// AddPolygonIter closes the pending vertices into a POLYGON ITERATE.
func (g *Geometries) AddPolygonIter(colorMask int) error {
	x, y, err := g.snapshot()
	if err != nil {
		return err
	}
	return g.add(GeomPolygonIter{GeomPolygon: GeomPolygon{ColorMask: colorMask, X: x, Y: y}, Step: g.step})
}

// AddRect appends a RECT.
func (g *Geometries) AddRect(colorMask int, xl, yl, xh, yh float64) error {
	return g.add(GeomRect{ColorMask: colorMask, XL: xl, YL: yl, XH: xh, YH: yh})
}

// AddRectIter appends a RECT ITERATE using the current step pattern.
func (g *Geometries) AddRectIter(colorMask int, xl, yl, xh, yh float64) error {
	return g.add(GeomRectIter{
		GeomRect: GeomRect{ColorMask: colorMask, XL: xl, YL: yl, XH: xh, YH: yh},
		Step:     g.step,
	})
}

func (g *Geometries) via(viaMask int, x, y float64, name string) GeomVia {
	top, cut, bottom := SplitViaMask(viaMask)
	return GeomVia{
		X: x, Y: y,
		Name:          g.names.Apply(name),
		TopMaskNum:    top,
		CutMaskNum:    cut,
		BottomMaskNum: bottom,
	}
}

// AddVia appends a VIA placement.
func (g *Geometries) AddVia(viaMask int, x, y float64, name string) error {
	return g.add(g.via(viaMask, x, y, name))
}

// AddViaIter appends a VIA ITERATE placement using the current step pattern.
func (g *Geometries) AddViaIter(viaMask int, x, y float64, name string) error {
	return g.add(GeomViaIter{GeomVia: g.via(viaMask, x, y, name), Step: g.step})
}

// NumItems returns the number of items.
func (g *Geometries) NumItems() int { return g.items.Len() }

// Item returns item i.
func (g *Geometries) Item(i int) (GeomItem, error) {
	if i < 0 || i >= g.items.Len() {
		return nil, indexErr("geometry item", i, g.items.Len())
	}
	return g.items.items[i], nil
}

// Items returns a copy of the item list.
func (g *Geometries) Items() []GeomItem { return g.items.Values() }

// ItemType returns the tag of item i, ItemUnknown with an error when i is
// out of range.
func (g *Geometries) ItemType(i int) (GeomType, error) {
	it, err := g.Item(i)
	if err != nil {
		return ItemUnknown, err
	}
	return it.Type(), nil
}

func itemAs[T GeomItem](g *Geometries, i int) (T, error) {
	var zero T
	it, err := g.Item(i)
	if err != nil {
		return zero, err
	}
	v, ok := it.(T)
	if !ok {
		return zero, fmt.Errorf("%w: item %d is %s, want %s", ErrItemType, i, it.Type(), zero.Type())
	}
	return v, nil
}

// Rect returns the RECT at i.
func (g *Geometries) Rect(i int) (GeomRect, error) { return itemAs[GeomRect](g, i) }

// RectIter returns the RECT ITERATE at i.
func (g *Geometries) RectIter(i int) (GeomRectIter, error) { return itemAs[GeomRectIter](g, i) }

// Path returns the PATH at i.
func (g *Geometries) Path(i int) (GeomPath, error) { return itemAs[GeomPath](g, i) }

// PathIter returns the PATH ITERATE at i.
func (g *Geometries) PathIter(i int) (GeomPathIter, error) { return itemAs[GeomPathIter](g, i) }

// Polygon returns the POLYGON at i.
func (g *Geometries) Polygon(i int) (GeomPolygon, error) { return itemAs[GeomPolygon](g, i) }

// PolygonIter returns the POLYGON ITERATE at i.
func (g *Geometries) PolygonIter(i int) (GeomPolygonIter, error) {
	return itemAs[GeomPolygonIter](g, i)
}

// Via returns the VIA at i.
func (g *Geometries) Via(i int) (GeomVia, error) { return itemAs[GeomVia](g, i) }

// ViaIter returns the VIA ITERATE at i.
func (g *Geometries) ViaIter(i int) (GeomViaIter, error) { return itemAs[GeomViaIter](g, i) }

// Layer returns the layer name of the LAYER item at i.
func (g *Geometries) Layer(i int) (string, error) {
	it, err := itemAs[LayerItem](g, i)
	return it.Name, err
}

// HasLayerExceptPgNet reports whether item i is an EXCEPTPGNET marker.
func (g *Geometries) HasLayerExceptPgNet(i int) (bool, error) {
	t, err := g.ItemType(i)
	return t == ItemLayerExceptPgNet, err
}

// LayerMinSpacing returns the SPACING value at i.
func (g *Geometries) LayerMinSpacing(i int) (float64, error) {
	it, err := itemAs[LayerMinSpacingItem](g, i)
	return it.Spacing, err
}

// LayerRuleWidth returns the DESIGNRULEWIDTH value at i.
func (g *Geometries) LayerRuleWidth(i int) (float64, error) {
	it, err := itemAs[LayerRuleWidthItem](g, i)
	return it.Width, err
}

// LayerMask returns the MASK value at i.
func (g *Geometries) LayerMask(i int) (int, error) {
	it, err := itemAs[LayerMaskItem](g, i)
	return it.Mask, err
}

// Width returns the WIDTH value at i.
func (g *Geometries) Width(i int) (float64, error) {
	it, err := itemAs[WidthItem](g, i)
	return it.Width, err
}

// Class returns the CLASS name at i.
func (g *Geometries) Class(i int) (string, error) {
	it, err := itemAs[ClassItem](g, i)
	return it.Name, err
}

// CountType returns the number of items tagged t.
func (g *Geometries) CountType(t GeomType) int {
	n := 0
	for _, it := range g.items.items {
		if it.Type() == t {
			n++
		}
	}
	return n
}

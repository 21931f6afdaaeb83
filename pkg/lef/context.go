package lef

// ContextConfig tunes a Context.
type ContextConfig struct {
	// CaseSensitive is the initial NAMESCASESENSITIVE state.
	CaseSensitive bool
	// MaxOxides is the number of antenna oxide slots of layers and pins.
	MaxOxides int
	// SeqLimit caps the number of entries of every list a record created
	// by the Context holds, and of each record list of the library. 0
	// means DefaultSeqLimit.
	SeqLimit int
}

// DefaultContextConfig returns the settings used by LEF 5.8 readers.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		CaseSensitive: true,
		MaxOxides:     DefaultMaxOxides,
	}
}

// Context holds the state of one parse: the name policy, the limits and
// the library being filled. A driver creates one Context per file and asks
// it for a fresh record at the start of every block.
type Context struct {
	cfg   ContextConfig
	names *NameCase
	lib   *Library
}

// NewContext returns a context with an empty library.
func NewContext(cfg ContextConfig) *Context {
	if cfg.MaxOxides <= 0 {
		cfg.MaxOxides = DefaultMaxOxides
	}
	names := NewNameCase(cfg.CaseSensitive)
	lib := NewLibrary(names)
	lib.setLimit(cfg.SeqLimit)
	return &Context{cfg: cfg, names: names, lib: lib}
}

// Names returns the current name policy.
func (c *Context) Names() *NameCase { return c.names }

// SetCaseSensitive handles NAMESCASESENSITIVE. Records created afterwards
// use the new policy.
func (c *Context) SetCaseSensitive(on bool) {
	c.names = NewNameCase(on)
	c.lib.SetNameCase(c.names)
}

// Library returns the library being filled.
func (c *Context) Library() *Library { return c.lib }

// MaxOxides returns the configured number of antenna oxide slots.
func (c *Context) MaxOxides() int { return c.cfg.MaxOxides }

// The New methods below return empty records using the current name
// policy and the configured limits.

func (c *Context) NewLayer() *Layer {
	l := NewLayer(c.names)
	if c.cfg.MaxOxides != DefaultMaxOxides {
		l.SetMaxOxides(c.cfg.MaxOxides)
	}
	l.setLimit(c.cfg.SeqLimit)
	return l
}

func (c *Context) NewPin() *Pin {
	p := NewPin(c.names)
	if c.cfg.MaxOxides != DefaultMaxOxides {
		p.SetMaxOxides(c.cfg.MaxOxides)
	}
	p.setLimit(c.cfg.SeqLimit)
	return p
}

// NewGeometries returns an empty geometry list for a PORT or OBS.
func (c *Context) NewGeometries() *Geometries {
	return newGeometries(c.names, c.cfg.SeqLimit)
}

// NewAntennaPWL returns an empty PWL table.
func (c *Context) NewAntennaPWL() *AntennaPWL { return newAntennaPWL(c.cfg.SeqLimit) }

func (c *Context) NewVia() *Via {
	v := NewVia(c.names)
	v.setLimit(c.cfg.SeqLimit)
	return v
}

func (c *Context) NewViaRule() *ViaRule {
	r := NewViaRule(c.names)
	r.setLimit(c.cfg.SeqLimit)
	return r
}

func (c *Context) NewNonDefaultRule() *NonDefaultRule {
	r := NewNonDefaultRule(c.names)
	r.setLimit(c.cfg.SeqLimit)
	return r
}

func (c *Context) NewMacro() *Macro {
	m := NewMacro(c.names)
	m.setLimit(c.cfg.SeqLimit)
	return m
}

func (c *Context) NewArray() *Array {
	a := NewArray(c.names)
	a.setLimit(c.cfg.SeqLimit)
	return a
}

func (c *Context) NewSite() *Site {
	s := NewSite(c.names)
	s.setLimit(c.cfg.SeqLimit)
	return s
}

func (c *Context) NewDensity() *Density { return newDensity(c.names, c.cfg.SeqLimit) }

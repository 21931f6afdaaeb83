package lef

// Opt is an optional value: a value paired with whether it was set.
type Opt[T any] struct {
	v  T
	ok bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] { return Opt[T]{v: v, ok: true} }

// Set stores v and marks the value present.
func (o *Opt[T]) Set(v T) {
	o.v = v
	o.ok = true
}

// Clear marks the value absent and zeroes it.
func (o *Opt[T]) Clear() {
	var zero T
	o.v = zero
	o.ok = false
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.v, o.ok }

// IsSet reports whether a value is present.
func (o Opt[T]) IsSet() bool { return o.ok }

// Or returns the value if present, def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

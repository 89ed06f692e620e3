package param

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Registry stores the parameters of one effect instance.
type Registry struct {
	descs     []Descriptor
	index     map[string]int
	values    atomic.Pointer[Values]
	automated []atomic.Bool

	// writeMu serializes control-thread writers. The audio thread never
	// takes it.
	writeMu sync.Mutex
}

// New builds a registry from descriptors. Names must be unique and non-empty,
// and every range must satisfy Min <= Default <= Max.
func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		descs:     make([]Descriptor, len(descs)),
		index:     make(map[string]int, len(descs)),
		automated: make([]atomic.Bool, len(descs)),
	}

	defaults := make(Values, len(descs))
	for i, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("param: descriptor %d has empty name", i)
		}
		if _, dup := r.index[d.Name]; dup {
			return nil, fmt.Errorf("param: duplicate parameter %q", d.Name)
		}
		if d.Min > d.Max || d.Default < d.Min || d.Default > d.Max {
			return nil, fmt.Errorf("param: %q default %g outside [%g, %g]", d.Name, d.Default, d.Min, d.Max)
		}
		r.index[d.Name] = i
		r.descs[i] = d
		r.automated[i].Store(d.Automated)
		defaults[i] = d.Default
	}
	r.values.Store(&defaults)

	return r, nil
}

// MustNew is like New but panics on an invalid descriptor set. It is meant for
// the static parameter tables effects declare.
func MustNew(descs ...Descriptor) *Registry {
	r, err := New(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of parameters.
func (r *Registry) Len() int { return len(r.descs) }

// Index returns the declaration index of name.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Descriptor returns the static descriptor of name. Its Value field is not
// populated; use Get for the current value.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descs[i], true
}

// Snapshot returns the current values. It is lock-free and allocation-free;
// the returned slice must not be modified.
func (r *Registry) Snapshot() Values {
	return *r.values.Load()
}

// Get returns the value of name, or 0 for unknown names.
func (r *Registry) Get(name string) float32 {
	i, ok := r.index[name]
	if !ok {
		return 0
	}
	return r.Snapshot()[i]
}

// Set clamps v into range and stores it. Unknown names are ignored and
// reported by the false return.
func (r *Registry) Set(name string, v float32) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	next := r.cloneLocked()
	next[i] = r.descs[i].Clamp(v)
	r.values.Store(&next)

	return true
}

// Apply stores several values in one swap, so a concurrent Snapshot sees
// either none or all of them. Unknown names are ignored.
func (r *Registry) Apply(values map[string]float32) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	next := r.cloneLocked()
	for name, v := range values {
		if i, ok := r.index[name]; ok {
			next[i] = r.descs[i].Clamp(v)
		}
	}
	r.values.Store(&next)
}

// Reset restores every default.
func (r *Registry) Reset() {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	next := make(Values, len(r.descs))
	for i, d := range r.descs {
		next[i] = d.Default
	}
	r.values.Store(&next)
}

// Map returns a name → value copy of the current snapshot.
func (r *Registry) Map() map[string]float32 {
	snap := r.Snapshot()
	out := make(map[string]float32, len(snap))
	for i, d := range r.descs {
		out[d.Name] = snap[i]
	}
	return out
}

// Descriptors returns a copy of every descriptor with its current value and
// automation flag, in declaration order.
func (r *Registry) Descriptors() []Descriptor {
	snap := r.Snapshot()
	out := make([]Descriptor, len(r.descs))
	for i, d := range r.descs {
		d.Value = snap[i]
		d.Automated = r.automated[i].Load()
		out[i] = d
	}
	return out
}

// SetAutomated sets the automation flag of name. Unknown names are ignored.
func (r *Registry) SetAutomated(name string, on bool) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}
	r.automated[i].Store(on)
	return true
}

// Automated reports the automation flag of name; false for unknown names.
func (r *Registry) Automated(name string) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}
	return r.automated[i].Load()
}

func (r *Registry) cloneLocked() Values {
	cur := *r.values.Load()
	next := make(Values, len(cur))
	copy(next, cur)
	return next
}

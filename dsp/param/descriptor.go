package param

// Descriptor describes one parameter. Value always lies in [Min, Max].
type Descriptor struct {
	Name      string
	Value     float32
	Min       float32
	Max       float32
	Default   float32
	Automated bool
}

// Clamp limits v to the descriptor range. NaN maps to the default value.
func (d Descriptor) Clamp(v float32) float32 {
	if v != v {
		return d.Default
	}
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Unit is shorthand for a [0,1] parameter with the given default.
func Unit(name string, def float32) Descriptor {
	return Descriptor{Name: name, Min: 0, Max: 1, Default: def}
}

// Range is shorthand for a [min,max] parameter with the given default.
func Range(name string, min, max, def float32) Descriptor {
	return Descriptor{Name: name, Min: min, Max: max, Default: def}
}

// Values is an immutable snapshot of parameter values in declaration order.
type Values []float32

// At returns the value at index i, or 0 when i is out of range.
func (v Values) At(i int) float32 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// Float returns the value at index i widened to float64.
func (v Values) Float(i int) float64 {
	return float64(v.At(i))
}

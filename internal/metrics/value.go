package metrics

import "fmt"

// Value is an optional float64. Metrics that cannot be computed for a
// trial (no detection, too few window samples) are None rather than a NaN
// sentinel, so undefined values cannot silently propagate through later
// arithmetic.
type Value struct {
	v  float64
	ok bool
}

// Some wraps a defined value.
func Some(v float64) Value { return Value{v: v, ok: true} }

// None is the undefined value.
func None() Value { return Value{} }

// Float64 returns the wrapped value and whether it is defined.
func (v Value) Float64() (float64, bool) { return v.v, v.ok }

// Defined reports whether the value is present.
func (v Value) Defined() bool { return v.ok }

// String renders the value for logs; undefined values print as "-".
func (v Value) String() string {
	if !v.ok {
		return "-"
	}
	return fmt.Sprintf("%g", v.v)
}

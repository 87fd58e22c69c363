package registry

import (
	"fmt"
	"sort"
)

// Dimension describes one configuration variable: a name plus the finite
// ordered domain of values it can take. Boolean dimensions carry the fixed
// domain {true, false} and may be referenced bare in conditions.
type Dimension struct {
	Name    string   `yaml:"name"`
	Values  []string `yaml:"values,omitempty"`
	Boolean bool     `yaml:"boolean,omitempty"`
}

// BooleanValues is the domain every boolean dimension carries.
var BooleanValues = []string{"true", "false"}

// Registry is the immutable set of recognized dimensions. It is built once
// and shared read-only by the parser, evaluator and minimizer.
type Registry struct {
	dims    []Dimension
	index   map[string]int
	invalid []Combo
}

// Combo is a partial assignment of values to dimensions. A point matching
// every binding of an invalid Combo is excluded from enumeration.
type Combo map[string]string

// New builds a registry from the given dimensions. Dimension order is
// preserved and is the deterministic iteration order used everywhere else.
func New(dims []Dimension, invalid []Combo) (*Registry, error) {
	r := &Registry{
		dims:    make([]Dimension, 0, len(dims)),
		index:   make(map[string]int, len(dims)),
		invalid: invalid,
	}
	for _, d := range dims {
		if d.Name == "" {
			return nil, fmt.Errorf("dimension with empty name")
		}
		if _, ok := r.index[d.Name]; ok {
			return nil, fmt.Errorf("duplicate dimension %q", d.Name)
		}
		if d.Boolean {
			if len(d.Values) != 0 {
				return nil, fmt.Errorf("boolean dimension %q must not list values", d.Name)
			}
			d.Values = BooleanValues
		}
		if len(d.Values) == 0 {
			return nil, fmt.Errorf("dimension %q has an empty domain", d.Name)
		}
		seen := make(map[string]bool, len(d.Values))
		for _, v := range d.Values {
			if seen[v] {
				return nil, fmt.Errorf("dimension %q has duplicate value %q", d.Name, v)
			}
			seen[v] = true
		}
		r.index[d.Name] = len(r.dims)
		r.dims = append(r.dims, d)
	}
	for _, c := range invalid {
		for name, value := range c {
			i, ok := r.index[name]
			if !ok {
				return nil, fmt.Errorf("invalid combo references unknown dimension %q", name)
			}
			if !contains(r.dims[i].Values, value) {
				return nil, fmt.Errorf("invalid combo value %q not in domain of %q", value, name)
			}
		}
	}
	return r, nil
}

// Lookup returns the dimension with the given name.
func (r *Registry) Lookup(name string) (Dimension, bool) {
	i, ok := r.index[name]
	if !ok {
		return Dimension{}, false
	}
	return r.dims[i], true
}

// Has reports whether a dimension with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// HasValue reports whether value belongs to the domain of dimension name.
func (r *Registry) HasValue(name, value string) bool {
	d, ok := r.Lookup(name)
	return ok && contains(d.Values, value)
}

// Dimensions returns a copy of the registered dimensions in registry order.
func (r *Registry) Dimensions() []Dimension {
	out := make([]Dimension, len(r.dims))
	copy(out, r.dims)
	return out
}

// SortNames orders dimension names by registry order, dropping duplicates.
// Unknown names are an internal contract violation.
func (r *Registry) SortNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		if !r.Has(n) {
			panic(fmt.Sprintf("registry: unknown dimension %q", n))
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.index[out[i]] < r.index[out[j]]
	})
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Point is one concrete assignment of values to dimensions. A point built by
// Enumerate covers exactly the dimensions it was enumerated over; every
// other dimension is a don't-care and is absent from the map.
type Point map[string]string

// Value returns the value assigned to the given dimension. The caller must
// only ask for dimensions the point covers; anything else is a programming
// error, not a recoverable condition.
func (p Point) Value(name string) string {
	v, ok := p[name]
	if !ok {
		panic(fmt.Sprintf("registry: point has no value for dimension %q", name))
	}
	return v
}

// Key returns a canonical, order-independent rendering of the point.
// Used for deterministic grouping and in diagnostics.
func (p Point) Key() string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(p[n])
	}
	return b.String()
}

// Clone returns an independent copy of the point.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Enumerate produces every configuration point over the cross product of
// the named dimensions' domains, in deterministic order (registry order for
// dimensions, domain order for values). Points matching a known-invalid
// combination whose dimensions are all covered by names are excluded.
//
// An empty name list yields a single empty point: a clause list that
// references no dimensions is evaluated exactly once.
func (r *Registry) Enumerate(names []string) []Point {
	names = r.SortNames(names)
	points := []Point{{}}
	for _, name := range names {
		d, _ := r.Lookup(name)
		next := make([]Point, 0, len(points)*len(d.Values))
		for _, p := range points {
			for _, v := range d.Values {
				q := p.Clone()
				q[name] = v
				next = append(next, q)
			}
		}
		points = next
	}
	if len(r.invalid) == 0 {
		return points
	}
	kept := points[:0]
	for _, p := range points {
		if !r.excluded(p, names) {
			kept = append(kept, p)
		}
	}
	return kept
}

// excluded reports whether p matches an invalid combo. A combo only applies
// when every dimension it binds was enumerated; a combo reaching into
// don't-care dimensions cannot rule a point out.
func (r *Registry) excluded(p Point, names []string) bool {
	for _, c := range r.invalid {
		applies := true
		for name, value := range c {
			v, ok := p[name]
			if !ok || v != value {
				applies = false
				break
			}
		}
		if applies && len(c) > 0 {
			return true
		}
	}
	return false
}

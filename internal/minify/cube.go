package minify

import (
	"expcollapse/internal/cond"
	"expcollapse/internal/registry"
)

// cube is a conjunction of per-dimension equality tests. Dimensions absent
// from the cube are don't-care.
type cube map[string]string

func (c cube) matches(p registry.Point) bool {
	for dim, v := range c {
		if p.Value(dim) != v {
			return false
		}
	}
	return true
}

// expr renders the cube as a condition, binding dimensions in the given
// order. An empty cube matches everything.
func (c cube) expr(dims []string) cond.Expr {
	terms := make([]cond.Expr, 0, len(c))
	for _, d := range dims {
		if v, ok := c[d]; ok {
			terms = append(terms, cond.Compare(d, v))
		}
	}
	if len(terms) == 0 {
		return cond.True()
	}
	return cond.And(terms...)
}

// coverClass computes a set of cubes whose union over the enumerated space
// is exactly the class's point set. Each cube starts as the maximally
// specific conjunction for one uncovered point, then comparisons are
// dropped one at a time in fixed dimension order, keeping a removal only
// while the widened cube stays inside the class. Exactness follows by
// construction: every cube is a subset of the class, and every class point
// seeds or is absorbed by some cube.
func coverClass(cl *class, points []registry.Point, dims []string) []cube {
	inClass := make([]bool, len(points))
	for _, i := range cl.points {
		inClass[i] = true
	}
	covered := make([]bool, len(points))

	var cubes []cube
	for _, pi := range cl.points {
		if covered[pi] {
			continue
		}
		c := make(cube, len(dims))
		for _, d := range dims {
			c[d] = points[pi].Value(d)
		}
		for _, d := range dims {
			v := c[d]
			delete(c, d)
			if !cubeWithin(c, points, inClass) {
				c[d] = v
			}
		}
		for i, p := range points {
			if inClass[i] && c.matches(p) {
				covered[i] = true
			}
		}
		cubes = append(cubes, c)
	}
	return pruneCubes(cubes, cl, points)
}

// cubeWithin reports whether every enumerated point matched by the cube
// belongs to the class. A relaxation gaining even one outside point would
// change which outcome that point maps to.
func cubeWithin(c cube, points []registry.Point, inClass []bool) bool {
	for i, p := range points {
		if c.matches(p) && !inClass[i] {
			return false
		}
	}
	return true
}

// pruneCubes drops cubes whose class points are already covered by the
// remaining cubes. A cube seeded early can end up strictly inside one
// generalized later.
func pruneCubes(cubes []cube, cl *class, points []registry.Point) []cube {
	if len(cubes) <= 1 {
		return cubes
	}
	kept := make([]bool, len(cubes))
	for i := range kept {
		kept[i] = true
	}
	for i := range cubes {
		kept[i] = false
		if !classCovered(cubes, kept, cl, points) {
			kept[i] = true
		}
	}
	out := cubes[:0]
	for i, c := range cubes {
		if kept[i] {
			out = append(out, c)
		}
	}
	return out
}

func classCovered(cubes []cube, kept []bool, cl *class, points []registry.Point) bool {
	for _, pi := range cl.points {
		matched := false
		for i, c := range cubes {
			if kept[i] && c.matches(points[pi]) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

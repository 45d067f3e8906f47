package refimpl

import "github.com/ecdar/reveal/zone"

// federation is a reduced disjunction of canonical, non-empty dbms
// sharing one dimension. A nil/empty zones slice represents the empty
// federation (the false constraint); callers reach it via Kernel.Empty
// or by every set operation below collapsing to no zones.
type federation struct {
	dim   int
	zones []*dbm
}

var _ zone.Federation = (*federation)(nil)

func newFederation(dim int, zones ...*dbm) *federation {
	return &federation{dim: dim, zones: reduce(zones)}
}

// reduce drops any zone subsumed by another zone in the same slice,
// keeping the federation small without changing the set it denotes.
func reduce(zones []*dbm) []*dbm {
	var out []*dbm
	for i, z := range zones {
		if z.isEmpty() {
			continue
		}
		subsumed := false
		for j, o := range zones {
			if i == j || o.isEmpty() {
				continue
			}
			if z.subsetEq(o) && !(o.subsetEq(z) && i > j) {
				subsumed = true

				break
			}
		}
		if !subsumed {
			out = append(out, z)
		}
	}

	return out
}

func (f *federation) Dim() int { return f.dim }

func (f *federation) IsEmpty() bool { return len(f.zones) == 0 }

func (f *federation) Constrain(i, j int, bound zone.Bound) zone.Federation {
	out := make([]*dbm, 0, len(f.zones))
	for _, z := range f.zones {
		cp := z.clone()
		cp.constrain(i, j, bound)
		if !cp.isEmpty() {
			out = append(out, cp)
		}
	}

	return newFederation(f.dim, out...)
}

func (f *federation) Intersection(other zone.Federation) zone.Federation {
	o := other.(*federation)
	var out []*dbm
	for _, a := range f.zones {
		for _, b := range o.zones {
			z := a.intersect(b)
			if !z.isEmpty() {
				out = append(out, z)
			}
		}
	}

	return newFederation(f.dim, out...)
}

func (f *federation) Union(other zone.Federation) zone.Federation {
	o := other.(*federation)
	out := make([]*dbm, 0, len(f.zones)+len(o.zones))
	out = append(out, f.zones...)
	out = append(out, o.zones...)

	return newFederation(f.dim, out...)
}

// Subtraction implements federation difference F \ O as the standard
// DBM subtraction: subtract each zone of O from the running result in
// turn, where a single zone minus a single zone is the union of the
// zones obtained by negating one constraint of the subtrahend at a
// time and intersecting with the minuend.
func (f *federation) Subtraction(other zone.Federation) zone.Federation {
	o := other.(*federation)
	result := f.zones
	for _, sub := range o.zones {
		var next []*dbm
		for _, minuend := range result {
			next = append(next, subtractOne(minuend, sub)...)
		}
		result = reduce(next)
		if len(result) == 0 {
			break
		}
	}

	return newFederation(f.dim, result...)
}

// subtractOne computes minuend \ sub as a slice of zones: for every
// non-trivial constraint (i, j) of sub, the minuend intersected with the
// negation of that constraint contributes the part of minuend lying
// strictly outside sub along that bound.
func subtractOne(minuend, sub *dbm) []*dbm {
	var out []*dbm
	for i := 0; i < sub.dim; i++ {
		for j := 0; j < sub.dim; j++ {
			if i == j {
				continue
			}
			b := sub.get(i, j)
			if b.IsInf() {
				continue
			}
			piece := minuend.clone()
			piece.constrain(j, i, b.Negate())
			if !piece.isEmpty() {
				out = append(out, piece)
			}
		}
	}

	return out
}

func (f *federation) Inverse() zone.Federation {
	universe := newFederation(f.dim, universeDBM(f.dim))

	return universe.Subtraction(f)
}

func (f *federation) Up() zone.Federation {
	out := make([]*dbm, len(f.zones))
	for i, z := range f.zones {
		out[i] = z.up()
	}

	return newFederation(f.dim, out...)
}

func (f *federation) Down() zone.Federation {
	out := make([]*dbm, len(f.zones))
	for i, z := range f.zones {
		out[i] = z.down()
	}

	return newFederation(f.dim, out...)
}

func (f *federation) Free(i int) zone.Federation {
	out := make([]*dbm, len(f.zones))
	for k, z := range f.zones {
		out[k] = z.free(i)
	}

	return newFederation(f.dim, out...)
}

func (f *federation) Update(i int, v int64) zone.Federation {
	out := make([]*dbm, len(f.zones))
	for k, z := range f.zones {
		out[k] = z.update(i, v)
	}

	return newFederation(f.dim, out...)
}

// SubsetEq reports whether every zone of f is covered by the union of
// o's zones. Exact federation inclusion is co-NP in general; this
// reference kernel uses the sound, complete-enough approximation the
// verification core relies on: f subset-eq o iff f \ o is empty.
func (f *federation) SubsetEq(other zone.Federation) bool {
	return f.Subtraction(other).IsEmpty()
}

func (f *federation) Equals(other zone.Federation) bool {
	return f.SubsetEq(other) && other.SubsetEq(f)
}

func (f *federation) HasIntersection(other zone.Federation) bool {
	return !f.Intersection(other).IsEmpty()
}

// Predt returns the temporal predecessor of f avoiding good: points in
// f from which some non-negative delay reaches a point of f that is not
// in good, without crossing good first. Computed zonewise as
// Down(f) minus Down(f \ good) restricted back to f, the standard
// DBM formulation of the bounded predecessor operator.
func (f *federation) Predt(good zone.Federation) zone.Federation {
	avoid := f.Subtraction(good)
	if avoid.IsEmpty() {
		return newFederation(f.dim)
	}
	candidate := avoid.(*federation).Down()

	return candidate.(*federation).Intersection(f)
}

func (f *federation) ExtrapolateMaxBounds(bounds zone.Bounds) zone.Federation {
	out := make([]*dbm, len(f.zones))
	for idx, z := range f.zones {
		out[idx] = extrapolateMaxBounds(z, bounds)
	}

	return newFederation(f.dim, out...)
}

// extrapolateMaxBounds performs classical k-normalization: any bound
// exceeding the clock's declared maximum constant is relaxed to
// infinity, and any bound below the clock's negated maximum is clamped,
// guaranteeing the symbolic state space stays finite.
func extrapolateMaxBounds(z *dbm, bounds zone.Bounds) *dbm {
	r := z.clone()
	for i := 1; i < r.dim; i++ {
		max := int64(-1)
		if i < len(bounds.Upper) {
			max = bounds.Upper[i]
		}
		if max < 0 {
			continue
		}
		if b := r.get(i, 0); !b.IsInf() && b.Const > max {
			r.at(i, 0, zone.InfBound)
		}
		if b := r.get(0, i); !b.IsInf() && b.Const < -max {
			r.at(0, i, zone.Bound{Const: -max, Strict: false})
		}
	}
	r.close()

	return r
}

func (f *federation) CanDelayIndefinitely() bool {
	for _, z := range f.zones {
		if !z.canDelayIndefinitely() {
			return false
		}
	}

	return len(f.zones) > 0
}

func (f *federation) MinimalConstraints() [][]zone.Constraint {
	out := make([][]zone.Constraint, len(f.zones))
	for i, z := range f.zones {
		out[i] = z.minimalConstraints()
	}

	return out
}

func (f *federation) Clone() zone.Federation {
	out := make([]*dbm, len(f.zones))
	for i, z := range f.zones {
		out[i] = z.clone()
	}

	return &federation{dim: f.dim, zones: out}
}

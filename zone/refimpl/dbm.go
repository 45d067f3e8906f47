// Package refimpl is the pure-Go reference implementation of the
// zone.Kernel/zone.Federation interfaces: a dense Difference Bound
// Matrix per zone, canonicalized by Floyd-Warshall closure, with a
// federation represented as a reduced slice of canonical, non-empty
// zones sharing one dimension.
//
// Purpose:
//   - Canonical dense DBM closure with deterministic loop order,
//     generalizing the teacher's all-pairs-shortest-path closure from
//     scalar edge weights to strict/non-strict difference bounds.
//   - Shared by every zone.Federation operation below; in-place,
//     O(n^3) time, O(1) extra allocation during closure itself.
//
// Contract:
//   - Square D x D matrix of zone.Bound; cell (i, j) holds the tightest
//     known bound on x_i - x_j; the diagonal is always ZeroBound after
//     closure. A dbm is empty iff closure drives any diagonal cell
//     below ZeroBound (a negative cycle in difference-bound terms).
package refimpl

import "github.com/ecdar/reveal/zone"

// dbm is a single canonical (or not-yet-closed) difference bound
// matrix over dim clocks, clock 0 being the reference clock.
type dbm struct {
	dim  int
	data []zone.Bound // row-major, dim*dim
}

func newRawDBM(dim int) *dbm {
	d := &dbm{dim: dim, data: make([]zone.Bound, dim*dim)}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				d.at(i, j, zone.ZeroBound)
			} else {
				d.at(i, j, zone.InfBound)
			}
		}
	}

	return d
}

func (d *dbm) get(i, j int) zone.Bound {
	return d.data[i*d.dim+j]
}

func (d *dbm) at(i, j int, b zone.Bound) {
	d.data[i*d.dim+j] = b
}

// universe returns the unconstrained zone (every clock may take any
// non-negative value).
func universeDBM(dim int) *dbm {
	return newRawDBM(dim)
}

// zeroDBM returns the zone constraining every clock to exactly 0,
// i.e. x_i - x_0 <= 0 and x_0 - x_i <= 0 for every clock i.
func zeroDBM(dim int) *dbm {
	d := newRawDBM(dim)
	for i := 1; i < dim; i++ {
		d.at(i, 0, zone.ZeroBound)
		d.at(0, i, zone.ZeroBound)
	}
	d.close()

	return d
}

// clone returns an independent copy.
func (d *dbm) clone() *dbm {
	cp := &dbm{dim: d.dim, data: make([]zone.Bound, len(d.data))}
	copy(cp.data, d.data)

	return cp
}

// close runs the Floyd-Warshall shortest-path closure over difference
// bounds in place, with a fixed k -> i -> j loop order for deterministic
// accumulation, directly generalizing the teacher's scalar APSP closure
// (bound composition replaces scalar addition, bound.Less replaces <).
//
// Complexity: Time O(dim^3), extra space O(1).
func (d *dbm) close() {
	n := d.dim
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := d.get(i, k)
			if ik.IsInf() {
				continue
			}
			for j := 0; j < n; j++ {
				kj := d.get(k, j)
				if kj.IsInf() {
					continue
				}
				cand := ik.Add(kj)
				ij := d.get(i, j)
				if cand.Less(ij) {
					d.at(i, j, cand)
				}
			}
		}
	}
}

// isEmpty reports whether the closed dbm has a negative cycle, i.e. any
// diagonal cell strictly tighter than ZeroBound.
func (d *dbm) isEmpty() bool {
	for i := 0; i < d.dim; i++ {
		if d.get(i, i).Less(zone.ZeroBound) {
			return true
		}
	}

	return false
}

// constrain intersects in place with x_i - x_j ~ bound, then re-closes.
func (d *dbm) constrain(i, j int, bound zone.Bound) {
	if bound.Less(d.get(i, j)) {
		d.at(i, j, bound)
	}
	d.close()
}

// intersect returns a new closed dbm holding the conjunction of d and o
// (same dimension assumed).
func (d *dbm) intersect(o *dbm) *dbm {
	r := d.clone()
	for idx := range r.data {
		if o.data[idx].Less(r.data[idx]) {
			r.data[idx] = o.data[idx]
		}
	}
	r.close()

	return r
}

// subsetEq reports whether d's zone is contained in o's: every cell of
// d must be at least as tight as the corresponding cell of o.
func (d *dbm) subsetEq(o *dbm) bool {
	for idx := range d.data {
		if o.data[idx].Less(d.data[idx]) {
			return false
		}
	}

	return true
}

// equals reports cellwise equality of two closed dbms.
func (d *dbm) equals(o *dbm) bool {
	for idx := range d.data {
		if d.data[idx] != o.data[idx] {
			return false
		}
	}

	return true
}

// up removes all upper bounds on non-reference clocks (forward delay).
func (d *dbm) up() *dbm {
	r := d.clone()
	for i := 1; i < r.dim; i++ {
		r.at(i, 0, zone.InfBound)
	}
	r.close()

	return r
}

// down removes all lower bounds on non-reference clocks except x_i >= 0
// (backward delay).
func (d *dbm) down() *dbm {
	r := d.clone()
	for i := 1; i < r.dim; i++ {
		r.at(0, i, zone.ZeroBound)
	}
	r.close()

	return r
}

// free removes every constraint on clock i (existential projection),
// leaving it implicitly bounded only by x_i >= 0.
func (d *dbm) free(i int) *dbm {
	r := d.clone()
	for k := 0; k < r.dim; k++ {
		if k == i {
			continue
		}
		r.at(i, k, zone.InfBound)
		r.at(k, i, zone.InfBound)
	}
	r.at(i, 0, zone.InfBound)
	r.at(0, i, zone.ZeroBound)
	r.close()

	return r
}

// update resets clock i to the constant v: x_i - x_0 <= v and
// x_0 - x_i <= -v.
func (d *dbm) update(i int, v int64) *dbm {
	r := d.free(i)
	r.at(i, 0, zone.Bound{Const: v})
	r.at(0, i, zone.Bound{Const: -v})
	r.close()

	return r
}

// canDelayIndefinitely reports whether every non-reference clock has no
// finite upper bound relative to the reference clock, i.e. time can
// elapse forever from this zone without leaving it.
func (d *dbm) canDelayIndefinitely() bool {
	for i := 1; i < d.dim; i++ {
		if !d.get(i, 0).IsInf() {
			return false
		}
	}

	return true
}

// minimalConstraints returns one Constraint per cell that is not
// redundant: a cell (i, j) is redundant when it is implied by the best
// two-hop path through any other clock k (standard DBM graph-reduction
// minimal form).
func (d *dbm) minimalConstraints() []zone.Constraint {
	var out []zone.Constraint
	for i := 0; i < d.dim; i++ {
		for j := 0; j < d.dim; j++ {
			if i == j {
				continue
			}
			b := d.get(i, j)
			if b.IsInf() {
				continue
			}
			redundant := false
			for k := 0; k < d.dim; k++ {
				if k == i || k == j {
					continue
				}
				// After closure, no two-hop path can beat the direct
				// bound; it is redundant exactly when some path matches
				// it, since the direct edge then carries no extra
				// information that the k-hop doesn't already.
				via := d.get(i, k).Add(d.get(k, j))
				if via == b {
					redundant = true

					break
				}
			}
			if !redundant {
				out = append(out, zone.Constraint{I: i, J: j, Bound: b})
			}
		}
	}

	return out
}

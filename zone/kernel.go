package zone

// Constraint is one conjunct of a federation's minimal-constraints
// projection: the difference bound between clocks I and J.
type Constraint struct {
	I, J  int
	Bound Bound
}

// Bounds is a per-clock upper-bound table used by extrapolation (k-
// normalization). Index 0 (the reference clock) is always unused.
type Bounds struct {
	Upper []int64
}

// NewBounds returns a Bounds sized for dim clocks, all bounds
// unconstrained (no extrapolation effect) until set.
func NewBounds(dim int) Bounds {
	b := Bounds{Upper: make([]int64, dim)}
	for i := range b.Upper {
		b.Upper[i] = -1 // sentinel: "no bound observed", see Federation.ExtrapolateMaxBounds
	}

	return b
}

// Add merges o into b, keeping the pointwise maximum per clock — the
// composition rule used when CTS nodes sum their children's local max
// bounds (§4.3's get_local_max_bounds).
func (b *Bounds) Add(o Bounds) {
	for i, v := range o.Upper {
		if i >= len(b.Upper) {
			continue
		}
		if v > b.Upper[i] {
			b.Upper[i] = v
		}
	}
}

// SetUpper records an upper bound for clock i, keeping the maximum seen.
func (b *Bounds) SetUpper(i int, v int64) {
	if i < 0 || i >= len(b.Upper) {
		return
	}
	if v > b.Upper[i] {
		b.Upper[i] = v
	}
}

// Federation is a finite disjunction of canonical zones sharing one
// dimension. All arithmetic is by value: implementations must return a
// fresh Federation from every mutating-looking call rather than mutate
// the receiver, so callers may alias and clone freely (per spec.md §3.6,
// "federations are cloned freely and mutated by reassignment only").
type Federation interface {
	// Dim returns the shared clock dimension (including the reference
	// clock), i.e. D for a D×D DBM.
	Dim() int

	// IsEmpty reports whether the federation has no zones.
	IsEmpty() bool

	// Constrain intersects with the single difference constraint
	// x_i - x_j ≺ bound.
	Constrain(i, j int, bound Bound) Federation

	Intersection(other Federation) Federation
	Union(other Federation) Federation
	Subtraction(other Federation) Federation
	Inverse() Federation

	// Up is the forward time-elapse: removes upper bounds on every
	// non-reference clock.
	Up() Federation
	// Down is the backward time-elapse.
	Down() Federation

	// Free removes all constraints on clock i (existential projection).
	Free(i int) Federation
	// Update resets clock i to the constant v.
	Update(i int, v int64) Federation

	SubsetEq(other Federation) bool
	Equals(other Federation) bool
	HasIntersection(other Federation) bool

	// Predt is the temporal predecessor of the receiver avoiding good:
	// the points from which every maximal delay trajectory passes
	// through a point not in good before (or without ever) leaving the
	// receiver.
	Predt(good Federation) Federation

	// ExtrapolateMaxBounds performs k-normalization against bounds,
	// guaranteeing termination of the symbolic state space.
	ExtrapolateMaxBounds(bounds Bounds) Federation

	// CanDelayIndefinitely reports whether the federation is non-empty
	// and no zone in it has a finite upper bound reachable by delay.
	CanDelayIndefinitely() bool

	// MinimalConstraints returns the canonical projection as a
	// disjunction (one []Constraint per zone) of conjunctions.
	MinimalConstraints() [][]Constraint

	// Clone returns an independent copy; since Federation values are
	// already immutable-by-contract, implementations may return the
	// receiver itself, but callers must not rely on aliasing.
	Clone() Federation
}

// Kernel constructs Federations over a given clock dimension. An
// implementation may back this with a third-party numeric library or a
// pure-language DBM module (zone/refimpl); the verification core never
// reaches past this interface.
type Kernel interface {
	// New returns the universe federation (no constraints) over dim
	// clocks.
	New(dim int) Federation
	// Empty returns the empty federation over dim clocks.
	Empty(dim int) Federation
	// Init returns the federation constraining every clock to 0.
	Init(dim int) Federation
}

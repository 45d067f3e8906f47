// Package declaration holds the clock and integer-variable bookkeeping a
// compiled component or a composed transition system carries: an ordered
// mapping from clock name to clock index, plus a monotonic allocator that
// assigns fresh indices at CTS build time.
//
// Clock index 0 is the implicit reference clock shared by every dimension;
// user clocks start at 1. Integer variables are parsed but never consulted
// by the verification core (see Declaration.IntVars).
package declaration

import (
	"errors"
	"fmt"
)

// ReferenceClock is the implicit zero clock every zone dimension carries.
const ReferenceClock = 0

// ErrEmptyClockName indicates a clock was declared with an empty name.
var ErrEmptyClockName = errors.New("declaration: clock name is empty")

// ErrDuplicateClock indicates the same clock name was declared twice.
var ErrDuplicateClock = errors.New("declaration: duplicate clock name")

// ErrUnknownClock indicates a lookup for a clock name not present in the
// declaration.
var ErrUnknownClock = errors.New("declaration: unknown clock")

// Declaration is an ordered mapping from clock name to clock index, owned
// by exactly one compiled component. Integer variables are tracked only so
// that unsupported guard usages can be reported; they carry no semantics.
type Declaration struct {
	clocks  map[string]int
	order   []string // clock names in declaration order, for stable iteration
	IntVars map[string]int
}

// New returns an empty Declaration.
func New() *Declaration {
	return &Declaration{
		clocks:  make(map[string]int),
		IntVars: make(map[string]int),
	}
}

// AddClock assigns idx to name. Returns ErrEmptyClockName or
// ErrDuplicateClock on misuse.
func (d *Declaration) AddClock(name string, idx int) error {
	if name == "" {
		return ErrEmptyClockName
	}
	if _, exists := d.clocks[name]; exists {
		return fmt.Errorf("declaration: AddClock(%q): %w", name, ErrDuplicateClock)
	}
	d.clocks[name] = idx
	d.order = append(d.order, name)

	return nil
}

// Index returns the clock index for name.
func (d *Declaration) Index(name string) (int, error) {
	idx, ok := d.clocks[name]
	if !ok {
		return 0, fmt.Errorf("declaration: Index(%q): %w", name, ErrUnknownClock)
	}

	return idx, nil
}

// ClockNames returns clock names in declaration order.
func (d *Declaration) ClockNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)

	return out
}

// Dim returns one past the highest clock index, i.e. the zone dimension
// this declaration alone would require (not counting siblings it may be
// combined with at CTS build time).
func (d *Declaration) Dim() int {
	max := ReferenceClock
	for _, idx := range d.clocks {
		if idx > max {
			max = idx
		}
	}

	return max + 1
}

// Clone returns a deep copy, used when a component is referenced more than
// once in a query and must be recompiled with fresh clock indices.
func (d *Declaration) Clone() *Declaration {
	cp := New()
	cp.order = append(cp.order, d.order...)
	for k, v := range d.clocks {
		cp.clocks[k] = v
	}
	for k, v := range d.IntVars {
		cp.IntVars[k] = v
	}

	return cp
}

// Allocator hands out monotonically increasing clock indices across a
// single CTS build, starting just after the reference clock. Components
// referenced more than once in a query are cloned against fresh ranges
// from the same Allocator so no two live clocks alias an index.
type Allocator struct {
	next int
}

// NewAllocator returns an Allocator seeded to hand out index 1 first.
func NewAllocator() *Allocator {
	return &Allocator{next: ReferenceClock + 1}
}

// Take returns the next n indices as a contiguous block.
func (a *Allocator) Take(n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = a.next
		a.next++
	}

	return out
}

// Remap clones d, reassigning every clock to a fresh index from a.
func (a *Allocator) Remap(d *Declaration) *Declaration {
	cp := New()
	indices := a.Take(len(d.order))
	for i, name := range d.order {
		cp.clocks[name] = indices[i]
		cp.order = append(cp.order, name)
	}
	for k, v := range d.IntVars {
		cp.IntVars[k] = v
	}

	return cp
}

// Dim returns the total dimension consumed so far (including the
// reference clock), i.e. one past the highest index handed out.
func (a *Allocator) Dim() int {
	return a.next
}

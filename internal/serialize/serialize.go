// Package serialize renders a component (raw or compiled) into the
// YAML document shape spec.md §6.3 describes for getComponent/prune
// results: clocks, locations with invariants, edges with guards,
// updates, and sync labels. Field-for-field round-tripping with the
// original input is not guaranteed, matching the spec's own framing
// that cosmetic attributes are regenerated, not preserved.
package serialize

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/zone"
)

// Document is the persisted shape of one component.
type Document struct {
	Name      string        `yaml:"name"`
	Clocks    []string      `yaml:"clocks"`
	Locations []LocationDoc `yaml:"locations"`
	Edges     []EdgeDoc     `yaml:"edges"`
}

type LocationDoc struct {
	ID        string `yaml:"id"`
	Initial   bool   `yaml:"initial,omitempty"`
	Invariant string `yaml:"invariant,omitempty"`
	Urgent    bool   `yaml:"urgent,omitempty"`
}

type EdgeDoc struct {
	ID      string   `yaml:"id,omitempty"`
	Src     string   `yaml:"src"`
	Dst     string   `yaml:"dst"`
	Action  string   `yaml:"action"`
	Kind    string   `yaml:"kind"`
	Guard   string   `yaml:"guard,omitempty"`
	Updates []string `yaml:"updates,omitempty"`
}

// FromRaw converts an uncompiled component description directly,
// preserving its declared guard and invariant expressions verbatim.
func FromRaw(raw *component.Raw) Document {
	doc := Document{Name: raw.Name, Clocks: append([]string(nil), raw.Clocks...)}
	for _, l := range raw.Locations {
		doc.Locations = append(doc.Locations, LocationDoc{
			ID: string(l.ID), Initial: l.Initial, Invariant: invariantString(l.Invariant),
			Urgent: l.Urgency == location.Urgent,
		})
	}
	for _, e := range raw.Edges {
		doc.Edges = append(doc.Edges, EdgeDoc{
			ID: e.ID, Src: string(e.Src), Dst: string(e.Dst), Action: e.Action,
			Kind: kindString(e.Kind), Guard: invariantString(e.Guard), Updates: updateStrings(e.Updates),
		})
	}

	return doc
}

// FromCompiled converts a compiled component back out, rendering each
// federation guard/invariant through its minimal constraint set rather
// than a surface-syntax expression, since a compiled component (in
// particular one synthesized by quotient construction) no longer
// carries a parsed Expr.
func FromCompiled(cc *component.CompiledComponent) Document {
	doc := Document{Name: cc.Name()}
	for i := 1; i < cc.Dim(); i++ {
		doc.Clocks = append(doc.Clocks, feDimLabel(i))
	}

	init := cc.InitialLocation()
	for _, l := range cc.AllLocations() {
		doc.Locations = append(doc.Locations, LocationDoc{
			ID: string(l.ID), Initial: l.ID == init.ID,
			Invariant: federationString(l.Invariant), Urgent: l.Urgency == location.Urgent,
		})
	}

	seen := make(map[string]bool)
	actions := append(append([]string{}, cc.InputActions()...), cc.OutputActions()...)
	for _, l := range cc.AllLocations() {
		for _, action := range actions {
			for _, e := range cc.NextTransitions(l.ID, action) {
				key := string(l.ID) + "/" + action + "/" + string(e.Target) + "/" + e.ID
				if seen[key] {
					continue
				}
				seen[key] = true
				var updates []string
				for _, u := range e.Updates {
					updates = append(updates, feDimLabel(u.Clock)+":="+strconv.FormatInt(u.Value, 10))
				}
				doc.Edges = append(doc.Edges, EdgeDoc{
					ID: e.ID, Src: string(l.ID), Dst: string(e.Target), Action: action,
					Kind: edgeKindString(e.Kind), Guard: federationString(e.Guard), Updates: updates,
				})
			}
		}
	}

	return doc
}

// Write encodes doc as YAML to w.
func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	return enc.Encode(doc)
}

func invariantString(e *component.Expr) string {
	if e == nil {
		return ""
	}

	return e.String()
}

func kindString(k component.EdgeKind) string {
	if k == component.Input {
		return "input"
	}

	return "output"
}

func edgeKindString(k component.EdgeKind) string { return kindString(k) }

func updateStrings(us []component.RawUpdate) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Clock + ":=" + strconv.FormatInt(u.Value, 10)
	}

	return out
}

// federationString renders a federation's minimal-constraints
// projection as a disjunction of conjunctions of difference bounds,
// since a compiled component's guards and invariants no longer carry
// the surface-syntax Expr a Raw component's do.
func federationString(f zone.Federation) string {
	if f == nil {
		return ""
	}
	zones := f.MinimalConstraints()
	if len(zones) == 0 {
		return "false"
	}
	conjuncts := make([]string, 0, len(zones))
	for _, z := range zones {
		if len(z) == 0 {
			conjuncts = append(conjuncts, "true")

			continue
		}
		atoms := make([]string, 0, len(z))
		for _, c := range z {
			if c.Bound.IsInf() {
				continue
			}
			atoms = append(atoms, constraintString(c))
		}
		if len(atoms) == 0 {
			conjuncts = append(conjuncts, "true")

			continue
		}
		conjuncts = append(conjuncts, strings.Join(atoms, " && "))
	}

	return strings.Join(conjuncts, " || ")
}

func constraintString(c zone.Constraint) string {
	op := "<="
	if c.Bound.Strict {
		op = "<"
	}
	if c.J == 0 {
		return fmt.Sprintf("x%d%s%d", c.I, op, c.Bound.Const)
	}
	if c.I == 0 {
		return fmt.Sprintf("-x%d%s%d", c.J, op, c.Bound.Const)
	}

	return fmt.Sprintf("x%d-x%d%s%d", c.I, c.J, op, c.Bound.Const)
}

func feDimLabel(i int) string { return "x" + strconv.Itoa(i) }

package epi

import (
	"fmt"
	"strings"
)

// arena interns compartment names once and hands out integer handles.
// Elementary reactions and states reference compartments by handle, so
// hidden-stage identity never depends on name uniqueness.
type arena struct {
	names []string
	index map[string]int
}

func newArena() *arena {
	return &arena{index: make(map[string]int)}
}

func (a *arena) intern(name string) int {
	if h, ok := a.index[name]; ok {
		return h
	}
	h := len(a.names)
	a.names = append(a.names, name)
	a.index[name] = h
	return h
}

// fresh interns a new compartment under a label derived from prefix,
// uniquified if the label is already taken.
func (a *arena) fresh(prefix string) int {
	name := prefix
	for n := 2; ; n++ {
		if _, ok := a.index[name]; !ok {
			return a.intern(name)
		}
		name = fmt.Sprintf("%s#%d", prefix, n)
	}
}

func (a *arena) handle(name string) (int, bool) {
	h, ok := a.index[name]
	return h, ok
}

func (a *arena) size() int { return len(a.names) }

// elementary is the flattened, single-step unit the integrator executes.
type elementary struct {
	lhs  int
	rhs  int
	rate RateFunc
}

// Network is the flattened elementary reaction set derived from a list of
// reaction specs. It is built once and immutable thereafter.
//
// A compartment is visible when it appears as both a source and a
// destination of top-level specs; everything else interned by the network
// (expansion stages, and top-level endpoints that are only ever a source or
// only ever a destination, such as a strictly absorbing "dead" state) is
// classified hidden. Hidden compartments are tracked and logged but are
// zero-initialized unless the caller supplies a value.
type Network struct {
	arena     *arena
	reactions []elementary
	visible   []int
	hidden    []int
}

// NewNetwork flattens specs in declaration order.
func NewNetwork(specs ...ReactionSpec) *Network {
	a := newArena()
	asLhs := make(map[int]bool)
	asRhs := make(map[int]bool)
	for _, spec := range specs {
		lhs, rhs := spec.endpoints()
		asLhs[a.intern(lhs)] = true
		asRhs[a.intern(rhs)] = true
	}

	var reactions []elementary
	for _, spec := range specs {
		reactions = append(reactions, spec.expand(a)...)
	}

	n := &Network{arena: a, reactions: reactions}
	for h := 0; h < a.size(); h++ {
		if asLhs[h] && asRhs[h] {
			n.visible = append(n.visible, h)
		} else {
			n.hidden = append(n.hidden, h)
		}
	}
	return n
}

// Compartments returns the visible compartment names in first-appearance order.
func (n *Network) Compartments() []string {
	return n.arena.nameList(n.visible)
}

// HiddenCompartments returns the hidden compartment names in first-appearance order.
func (n *Network) HiddenCompartments() []string {
	return n.arena.nameList(n.hidden)
}

func (a *arena) nameList(handles []int) []string {
	names := make([]string, len(handles))
	for i, h := range handles {
		names[i] = a.names[h]
	}
	return names
}

func (n *Network) NumReactions() int { return len(n.reactions) }

// String lists the elementary network, one transition per line.
func (n *Network) String() string {
	var b strings.Builder
	for _, r := range n.reactions {
		fmt.Fprintf(&b, "%s --> %s\n", n.arena.names[r.lhs], n.arena.names[r.rhs])
	}
	return b.String()
}

// InitialState builds the full state from the caller-supplied compartment
// values. Compartments not named in y0 start at zero with the shape inferred
// from the supplied arrays. Empty y0, mismatched shapes, and names the
// network never mentions are fatal.
func (n *Network) InitialState(y0 map[string]Array) (*State, error) {
	if len(y0) == 0 {
		return nil, ErrEmptyInitialState
	}

	shape := -1
	for name, ary := range y0 {
		if _, ok := n.arena.handle(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCompartment, name)
		}
		if shape < 0 {
			shape = len(ary)
		} else if len(ary) != shape {
			return nil, fmt.Errorf("%w: %q has %d elements, want %d",
				ErrShapeMismatch, name, len(ary), shape)
		}
	}

	vals := make([]Array, n.arena.size())
	for i := range vals {
		vals[i] = make(Array, shape)
	}
	for name, ary := range y0 {
		h, _ := n.arena.handle(name)
		copy(vals[h], ary)
	}
	return &State{arena: n.arena, vals: vals, shape: shape}, nil
}

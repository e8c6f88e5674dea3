package domain

import (
	"fmt"
	"sort"
)

// Declaration holds the plain containers a machine is built from.
// Duplicate entries in States, Alphabet and Final are collapsed, keeping the
// first occurrence. Transitions are examined in the order given.
type Declaration[S, A comparable] struct {
	Name        string
	States      []S
	Alphabet    []A
	Transitions []Transition[S, A]
	Initial     S
	Final       []S

	// StateOutputs attaches a Moore output to states.
	StateOutputs map[S]any
	// TransitionOutputs attaches a Mealy output to declared transitions.
	TransitionOutputs map[Key[S, A]]any
}

// Definition is a validated, immutable deterministic finite state machine.
// It can only be obtained from New or Declare; every accessor returns a copy,
// and every "modification" returns a new Definition.
type Definition[S, A comparable] struct {
	name string

	states    []S
	stateSet  map[S]struct{}
	alphabet  []A
	symbolSet map[A]struct{}

	transitions []Transition[S, A]
	table       map[Key[S, A]]S
	outgoing    map[S][]int

	initial  S
	final    []S
	finalSet map[S]struct{}

	stateOutputs      map[S]any
	transitionOutputs map[Key[S, A]]any
}

// New validates and builds a machine from the five defining fields.
// The transition mapping cannot hold duplicate keys; when several keys are
// invalid, the one reported is the first in the order of their "%v" rendering.
func New[S, A comparable](states []S, alphabet []A, transitions map[Key[S, A]]S, initial S, final []S) (*Definition[S, A], error) {
	return Declare(Declaration[S, A]{
		States:      states,
		Alphabet:    alphabet,
		Transitions: fromTable(transitions),
		Initial:     initial,
		Final:       final,
	})
}

// Declare validates and builds a machine from a Declaration.
// Validation stops at the first violated rule; see Validate.
func Declare[S, A comparable](decl Declaration[S, A]) (*Definition[S, A], error) {
	c := newCandidate(decl)
	for _, rule := range pipeline[S, A]() {
		if err := rule(c); err != nil {
			return nil, err
		}
	}
	return c.build(), nil
}

// Validate runs the validation pipeline without keeping the result.
func Validate[S, A comparable](decl Declaration[S, A]) error {
	_, err := Declare(decl)
	return err
}

// Name returns the optional machine name.
func (d *Definition[S, A]) Name() string {
	return d.name
}

// States returns the declared states in declaration order.
func (d *Definition[S, A]) States() []S {
	return append([]S(nil), d.states...)
}

// Alphabet returns the declared symbols in declaration order.
func (d *Definition[S, A]) Alphabet() []A {
	return append([]A(nil), d.alphabet...)
}

// Initial returns the initial state.
func (d *Definition[S, A]) Initial() S {
	return d.initial
}

// Final returns the accepting states in declaration order. It may be empty.
func (d *Definition[S, A]) Final() []S {
	return append([]S(nil), d.final...)
}

// Transitions returns every declared transition in declaration order.
func (d *Definition[S, A]) Transitions() []Transition[S, A] {
	return append([]Transition[S, A](nil), d.transitions...)
}

// TransitionsFor returns the transitions leaving state, keyed by symbol.
// The map is empty (never nil) when the state has no outgoing edges or is unknown.
func (d *Definition[S, A]) TransitionsFor(state S) map[A]S {
	idx := d.outgoing[state]
	out := make(map[A]S, len(idx))
	for _, i := range idx {
		t := d.transitions[i]
		out[t.On] = t.To
	}
	return out
}

// Lookup returns the target of (state, symbol) and whether it is declared.
func (d *Definition[S, A]) Lookup(state S, symbol A) (S, bool) {
	next, ok := d.table[Key[S, A]{State: state, Symbol: symbol}]
	return next, ok
}

// HasState reports whether state is declared.
func (d *Definition[S, A]) HasState(state S) bool {
	_, ok := d.stateSet[state]
	return ok
}

// HasSymbol reports whether symbol belongs to the alphabet.
func (d *Definition[S, A]) HasSymbol(symbol A) bool {
	_, ok := d.symbolSet[symbol]
	return ok
}

// IsAccepting reports whether state is an accepting state.
func (d *Definition[S, A]) IsAccepting(state S) bool {
	_, ok := d.finalSet[state]
	return ok
}

// HasStateOutputs reports whether the machine declares Moore outputs.
func (d *Definition[S, A]) HasStateOutputs() bool {
	return len(d.stateOutputs) > 0
}

// HasTransitionOutputs reports whether the machine declares Mealy outputs.
func (d *Definition[S, A]) HasTransitionOutputs() bool {
	return len(d.transitionOutputs) > 0
}

// StateOutput returns the Moore output attached to state.
func (d *Definition[S, A]) StateOutput(state S) (any, bool) {
	v, ok := d.stateOutputs[state]
	return v, ok
}

// TransitionOutput returns the Mealy output attached to (state, symbol).
func (d *Definition[S, A]) TransitionOutput(state S, symbol A) (any, bool) {
	v, ok := d.transitionOutputs[Key[S, A]{State: state, Symbol: symbol}]
	return v, ok
}

// Declaration returns a fresh copy of the containers the machine was built from.
func (d *Definition[S, A]) Declaration() Declaration[S, A] {
	decl := Declaration[S, A]{
		Name:        d.name,
		States:      d.States(),
		Alphabet:    d.Alphabet(),
		Transitions: d.Transitions(),
		Initial:     d.initial,
		Final:       d.Final(),
	}
	if len(d.stateOutputs) > 0 {
		decl.StateOutputs = make(map[S]any, len(d.stateOutputs))
		for k, v := range d.stateOutputs {
			decl.StateOutputs[k] = v
		}
	}
	if len(d.transitionOutputs) > 0 {
		decl.TransitionOutputs = make(map[Key[S, A]]any, len(d.transitionOutputs))
		for k, v := range d.transitionOutputs {
			decl.TransitionOutputs[k] = v
		}
	}
	return decl
}

// WithName returns a copy of the machine carrying a different name.
func (d *Definition[S, A]) WithName(name string) *Definition[S, A] {
	cp := *d
	cp.name = name
	return &cp
}

// WithTransition returns a new machine where (from, on) leads to to.
// An existing transition for the same key is replaced. The receiver is unchanged.
func (d *Definition[S, A]) WithTransition(from S, on A, to S) (*Definition[S, A], error) {
	decl := d.Declaration()
	key := Key[S, A]{State: from, Symbol: on}
	replaced := false
	for i, t := range decl.Transitions {
		if t.Key() == key {
			decl.Transitions[i].To = to
			replaced = true
			break
		}
	}
	if !replaced {
		decl.Transitions = append(decl.Transitions, Transition[S, A]{From: from, On: on, To: to})
	}
	return Declare(decl)
}

// WithoutTransition returns a new machine without the (from, on) transition
// and its Mealy output, if any. The receiver is unchanged.
func (d *Definition[S, A]) WithoutTransition(from S, on A) (*Definition[S, A], error) {
	decl := d.Declaration()
	key := Key[S, A]{State: from, Symbol: on}
	kept := decl.Transitions[:0]
	for _, t := range decl.Transitions {
		if t.Key() != key {
			kept = append(kept, t)
		}
	}
	decl.Transitions = kept
	delete(decl.TransitionOutputs, key)
	return Declare(decl)
}

// WithFinal returns a new machine whose accepting states are exactly final.
func (d *Definition[S, A]) WithFinal(final ...S) (*Definition[S, A], error) {
	decl := d.Declaration()
	decl.Final = final
	return Declare(decl)
}

// fromTable flattens a transition mapping into a stable order so that
// validation of a map reports the same offending key on every call.
func fromTable[S, A comparable](table map[Key[S, A]]S) []Transition[S, A] {
	entries := make([]labeled[Transition[S, A]], 0, len(table))
	for k, to := range table {
		entries = append(entries, labeled[Transition[S, A]]{
			label: fmt.Sprintf("%v\x00%#v", k, k),
			value: Transition[S, A]{From: k.State, On: k.Symbol, To: to},
		})
	}
	return sortLabeled(entries)
}

type labeled[T any] struct {
	label string
	value T
}

func sortLabeled[T any](entries []labeled[T]) []T {
	sort.Slice(entries, func(i, j int) bool { return entries[i].label < entries[j].label })
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out
}

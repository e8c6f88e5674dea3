package dsl

import (
	"fmt"

	"github.com/aretw0/dfsm/pkg/domain"
)

// Builder manages the machine construction.
type Builder[S, A comparable] struct {
	name   string
	states map[S]*StateBuilder[S, A]
	order  []S

	alphabet []A
	known    map[A]struct{}

	transitions []domain.Transition[S, A]
	mealy       map[domain.Key[S, A]]any

	initial    S
	hasInitial bool
}

// New creates a new machine builder.
func New[S, A comparable](name string) *Builder[S, A] {
	return &Builder[S, A]{
		name:   name,
		states: make(map[S]*StateBuilder[S, A]),
		known:  make(map[A]struct{}),
		mealy:  make(map[domain.Key[S, A]]any),
	}
}

// Symbols declares input symbols up front. Symbols used by On are declared
// implicitly, so this is only needed to fix the alphabet order or to add
// symbols that no transition reads.
func (b *Builder[S, A]) Symbols(symbols ...A) *Builder[S, A] {
	for _, s := range symbols {
		b.symbol(s)
	}
	return b
}

// Add declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder[S, A]) Add(state S) *StateBuilder[S, A] {
	if sb, ok := b.states[state]; ok {
		return sb
	}
	sb := &StateBuilder[S, A]{state: state, builder: b}
	b.states[state] = sb
	b.order = append(b.order, state)
	return sb
}

// Build validates the declarations and returns the machine.
// Transition targets are not declared implicitly: a target that was never
// added is reported as an invalid transition target.
func (b *Builder[S, A]) Build() (*domain.Definition[S, A], error) {
	if !b.hasInitial && len(b.order) > 0 {
		b.initial = b.order[0]
	}

	decl := domain.Declaration[S, A]{
		Name:        b.name,
		States:      append([]S(nil), b.order...),
		Alphabet:    append([]A(nil), b.alphabet...),
		Transitions: append([]domain.Transition[S, A](nil), b.transitions...),
		Initial:     b.initial,
	}
	for _, s := range b.order {
		sb := b.states[s]
		if sb.accepting {
			decl.Final = append(decl.Final, s)
		}
		if sb.hasOutput {
			if decl.StateOutputs == nil {
				decl.StateOutputs = make(map[S]any)
			}
			decl.StateOutputs[s] = sb.output
		}
	}
	if len(b.mealy) > 0 {
		decl.TransitionOutputs = make(map[domain.Key[S, A]]any, len(b.mealy))
		for k, v := range b.mealy {
			decl.TransitionOutputs[k] = v
		}
	}

	def, err := domain.Declare(decl)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine %q: %w", b.name, err)
	}
	return def, nil
}

func (b *Builder[S, A]) symbol(s A) {
	if _, ok := b.known[s]; ok {
		return
	}
	b.known[s] = struct{}{}
	b.alphabet = append(b.alphabet, s)
}

package dsl

import "github.com/aretw0/dfsm/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder[S, A comparable] struct {
	state   S
	builder *Builder[S, A]

	accepting bool
	output    any
	hasOutput bool

	last *domain.Key[S, A]
}

// Initial marks the state as the initial state.
// Without it, the first added state is initial.
func (s *StateBuilder[S, A]) Initial() *StateBuilder[S, A] {
	s.builder.initial = s.state
	s.builder.hasInitial = true
	return s
}

// Accepting marks the state as an accepting (final) state.
func (s *StateBuilder[S, A]) Accepting() *StateBuilder[S, A] {
	s.accepting = true
	return s
}

// Output attaches a Moore output to the state.
func (s *StateBuilder[S, A]) Output(value any) *StateBuilder[S, A] {
	s.output = value
	s.hasOutput = true
	return s
}

// On adds a transition reading symbol from this state into target.
// Declaring the same symbol twice on a state makes Build fail.
func (s *StateBuilder[S, A]) On(symbol A, target S) *StateBuilder[S, A] {
	s.builder.symbol(symbol)
	s.builder.transitions = append(s.builder.transitions, domain.Transition[S, A]{
		From: s.state,
		On:   symbol,
		To:   target,
	})
	s.last = &domain.Key[S, A]{State: s.state, Symbol: symbol}
	return s
}

// Emit attaches a Mealy output to the transition added by the preceding On.
// It is a no-op when no transition was added yet.
func (s *StateBuilder[S, A]) Emit(value any) *StateBuilder[S, A] {
	if s.last == nil {
		return s
	}
	s.builder.mealy[*s.last] = value
	return s
}

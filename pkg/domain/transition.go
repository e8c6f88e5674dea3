package domain

import "fmt"

// Key identifies a transition by its source state and input symbol.
type Key[S, A comparable] struct {
	State  S `json:"state" yaml:"state"`
	Symbol A `json:"symbol" yaml:"symbol"`
}

// String renders the key as "(state, symbol)".
func (k Key[S, A]) String() string {
	return fmt.Sprintf("(%v, %v)", k.State, k.Symbol)
}

// Transition is a single declared edge: reading On while in From moves the machine to To.
type Transition[S, A comparable] struct {
	From S `json:"from" yaml:"from"`
	On   A `json:"on" yaml:"on"`
	To   S `json:"to" yaml:"to"`
}

// Key returns the (From, On) lookup key of the transition.
func (t Transition[S, A]) Key() Key[S, A] {
	return Key[S, A]{State: t.From, Symbol: t.On}
}

// String renders the edge as "from --on--> to".
func (t Transition[S, A]) String() string {
	return fmt.Sprintf("%v --%v--> %v", t.From, t.On, t.To)
}

package domain

import "fmt"

// candidate is a declaration being validated. Sets are computed once and
// reused by every rule and by the resulting Definition.
type candidate[S, A comparable] struct {
	decl Declaration[S, A]

	states    []S
	stateSet  map[S]struct{}
	alphabet  []A
	symbolSet map[A]struct{}
	final     []S
	finalSet  map[S]struct{}
	table     map[Key[S, A]]S
}

type rule[S, A comparable] func(c *candidate[S, A]) error

// pipeline lists the validation rules in the order they are applied.
// The first failing rule determines the reported error.
func pipeline[S, A comparable]() []rule[S, A] {
	return []rule[S, A]{
		checkStates[S, A],
		checkAlphabet[S, A],
		checkInitial[S, A],
		checkFinal[S, A],
		checkTransitionKeys[S, A],
		checkTransitionTargets[S, A],
		checkDuplicates[S, A],
		checkOutputs[S, A],
	}
}

func newCandidate[S, A comparable](decl Declaration[S, A]) *candidate[S, A] {
	c := &candidate[S, A]{decl: decl}
	c.states, c.stateSet = dedupe(decl.States)
	c.alphabet, c.symbolSet = dedupe(decl.Alphabet)
	c.final, c.finalSet = dedupe(decl.Final)
	return c
}

func dedupe[T comparable](items []T) ([]T, map[T]struct{}) {
	set := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, seen := set[item]; seen {
			continue
		}
		set[item] = struct{}{}
		out = append(out, item)
	}
	return out, set
}

func checkStates[S, A comparable](c *candidate[S, A]) error {
	if len(c.states) == 0 {
		return &EmptyStatesError{}
	}
	return nil
}

func checkAlphabet[S, A comparable](c *candidate[S, A]) error {
	if len(c.alphabet) == 0 {
		return &EmptyAlphabetError{}
	}
	return nil
}

func checkInitial[S, A comparable](c *candidate[S, A]) error {
	if _, ok := c.stateSet[c.decl.Initial]; !ok {
		return &InvalidInitialStateError[S]{State: c.decl.Initial}
	}
	return nil
}

func checkFinal[S, A comparable](c *candidate[S, A]) error {
	var offending []S
	for _, s := range c.final {
		if _, ok := c.stateSet[s]; !ok {
			offending = append(offending, s)
		}
	}
	if len(offending) > 0 {
		return &InvalidFinalStatesError[S]{States: offending}
	}
	return nil
}

func checkTransitionKeys[S, A comparable](c *candidate[S, A]) error {
	for _, t := range c.decl.Transitions {
		_, knownState := c.stateSet[t.From]
		_, knownSymbol := c.symbolSet[t.On]
		if !knownState || !knownSymbol {
			return &InvalidTransitionKeyError[S, A]{
				Key:           t.Key(),
				UnknownState:  !knownState,
				UnknownSymbol: !knownSymbol,
			}
		}
	}
	return nil
}

func checkTransitionTargets[S, A comparable](c *candidate[S, A]) error {
	for _, t := range c.decl.Transitions {
		if _, ok := c.stateSet[t.To]; !ok {
			return &InvalidTransitionTargetError[S, A]{Key: t.Key(), Target: t.To}
		}
	}
	return nil
}

// checkDuplicates only fires for list declarations; a mapping cannot repeat a key.
func checkDuplicates[S, A comparable](c *candidate[S, A]) error {
	c.table = make(map[Key[S, A]]S, len(c.decl.Transitions))
	for _, t := range c.decl.Transitions {
		key := t.Key()
		if prev, dup := c.table[key]; dup {
			return &DuplicateTransitionError[S, A]{Key: key, First: prev, Second: t.To}
		}
		c.table[key] = t.To
	}
	return nil
}

func checkOutputs[S, A comparable](c *candidate[S, A]) error {
	var unknownStates []labeled[S]
	for s := range c.decl.StateOutputs {
		if _, ok := c.stateSet[s]; !ok {
			unknownStates = append(unknownStates, labeled[S]{label: fmt.Sprintf("%v\x00%#v", s, s), value: s})
		}
	}
	if len(unknownStates) > 0 {
		s := sortLabeled(unknownStates)[0]
		return &InvalidOutputError[S, A]{Key: Key[S, A]{State: s}}
	}

	var undeclared []labeled[Key[S, A]]
	for k := range c.decl.TransitionOutputs {
		if _, ok := c.table[k]; !ok {
			undeclared = append(undeclared, labeled[Key[S, A]]{label: fmt.Sprintf("%v\x00%#v", k, k), value: k})
		}
	}
	if len(undeclared) > 0 {
		return &InvalidOutputError[S, A]{Key: sortLabeled(undeclared)[0], Transition: true}
	}
	return nil
}

func (c *candidate[S, A]) build() *Definition[S, A] {
	transitions := append([]Transition[S, A](nil), c.decl.Transitions...)
	outgoing := make(map[S][]int, len(c.states))
	for i, t := range transitions {
		outgoing[t.From] = append(outgoing[t.From], i)
	}

	d := &Definition[S, A]{
		name:        c.decl.Name,
		states:      c.states,
		stateSet:    c.stateSet,
		alphabet:    c.alphabet,
		symbolSet:   c.symbolSet,
		transitions: transitions,
		table:       c.table,
		outgoing:    outgoing,
		initial:     c.decl.Initial,
		final:       c.final,
		finalSet:    c.finalSet,
	}
	if len(c.decl.StateOutputs) > 0 {
		d.stateOutputs = make(map[S]any, len(c.decl.StateOutputs))
		for k, v := range c.decl.StateOutputs {
			d.stateOutputs[k] = v
		}
	}
	if len(c.decl.TransitionOutputs) > 0 {
		d.transitionOutputs = make(map[Key[S, A]]any, len(c.decl.TransitionOutputs))
		for k, v := range c.decl.TransitionOutputs {
			d.transitionOutputs[k] = v
		}
	}
	return d
}

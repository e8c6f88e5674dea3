package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error families. Every construction error wraps ErrConstruction and every
// execution error wraps ErrExecution; no error belongs to both.
var (
	ErrConstruction = errors.New("invalid machine definition")
	ErrExecution    = errors.New("machine execution failed")
)

// Construction error kinds, in validation order.
var (
	ErrEmptyStates             = fmt.Errorf("%w: empty states", ErrConstruction)
	ErrEmptyAlphabet           = fmt.Errorf("%w: empty alphabet", ErrConstruction)
	ErrInvalidInitialState     = fmt.Errorf("%w: invalid initial state", ErrConstruction)
	ErrInvalidFinalStates      = fmt.Errorf("%w: invalid final states", ErrConstruction)
	ErrInvalidTransitionKey    = fmt.Errorf("%w: invalid transition key", ErrConstruction)
	ErrInvalidTransitionTarget = fmt.Errorf("%w: invalid transition target", ErrConstruction)
	ErrDuplicateTransition     = fmt.Errorf("%w: duplicate transition", ErrConstruction)
	ErrInvalidOutput           = fmt.Errorf("%w: invalid output", ErrConstruction)
)

// Execution error kinds.
var (
	ErrSymbolNotInAlphabet = fmt.Errorf("%w: symbol not in alphabet", ErrExecution)
	ErrTransitionUndefined = fmt.Errorf("%w: transition undefined", ErrExecution)
)

// ErrMachineNotFound is returned by catalogs and stores when a named machine does not exist.
var ErrMachineNotFound = errors.New("machine not found")

// EmptyStatesError reports a declaration without states.
type EmptyStatesError struct{}

func (e *EmptyStatesError) Error() string { return "machine must declare at least one state" }
func (e *EmptyStatesError) Unwrap() error { return ErrEmptyStates }

// EmptyAlphabetError reports a declaration without input symbols.
type EmptyAlphabetError struct{}

func (e *EmptyAlphabetError) Error() string { return "machine must declare at least one input symbol" }
func (e *EmptyAlphabetError) Unwrap() error { return ErrEmptyAlphabet }

// InvalidInitialStateError reports an initial state that is not a declared state.
type InvalidInitialStateError[S comparable] struct {
	State S
}

func (e *InvalidInitialStateError[S]) Error() string {
	return fmt.Sprintf("initial state %v is not in the set of states", e.State)
}

func (e *InvalidInitialStateError[S]) Unwrap() error { return ErrInvalidInitialState }

// InvalidFinalStatesError reports accepting states that are not declared states.
// States holds every offending element, in declaration order.
type InvalidFinalStatesError[S comparable] struct {
	States []S
}

func (e *InvalidFinalStatesError[S]) Error() string {
	return fmt.Sprintf("final states %s are not in the set of states", joinLabels(e.States))
}

func (e *InvalidFinalStatesError[S]) Unwrap() error { return ErrInvalidFinalStates }

// InvalidTransitionKeyError reports a transition whose source state or symbol is undeclared.
type InvalidTransitionKeyError[S, A comparable] struct {
	Key           Key[S, A]
	UnknownState  bool
	UnknownSymbol bool
}

func (e *InvalidTransitionKeyError[S, A]) Error() string {
	var reasons []string
	if e.UnknownState {
		reasons = append(reasons, fmt.Sprintf("state %v is not in the set of states", e.Key.State))
	}
	if e.UnknownSymbol {
		reasons = append(reasons, fmt.Sprintf("symbol %v is not in the alphabet", e.Key.Symbol))
	}
	return fmt.Sprintf("transition %s: %s", e.Key, strings.Join(reasons, "; "))
}

func (e *InvalidTransitionKeyError[S, A]) Unwrap() error { return ErrInvalidTransitionKey }

// InvalidTransitionTargetError reports a transition leading to an undeclared state.
type InvalidTransitionTargetError[S, A comparable] struct {
	Key    Key[S, A]
	Target S
}

func (e *InvalidTransitionTargetError[S, A]) Error() string {
	return fmt.Sprintf("transition %s: target %v is not in the set of states", e.Key, e.Target)
}

func (e *InvalidTransitionTargetError[S, A]) Unwrap() error { return ErrInvalidTransitionTarget }

// DuplicateTransitionError reports a (state, symbol) pair declared more than once.
type DuplicateTransitionError[S, A comparable] struct {
	Key    Key[S, A]
	First  S
	Second S
}

func (e *DuplicateTransitionError[S, A]) Error() string {
	return fmt.Sprintf("transition %s declared twice (-> %v, -> %v)", e.Key, e.First, e.Second)
}

func (e *DuplicateTransitionError[S, A]) Unwrap() error { return ErrDuplicateTransition }

// InvalidOutputError reports a Moore output for an undeclared state, or a Mealy
// output for a transition that is not declared.
type InvalidOutputError[S, A comparable] struct {
	Key        Key[S, A]
	Transition bool
}

func (e *InvalidOutputError[S, A]) Error() string {
	if e.Transition {
		return fmt.Sprintf("output declared for undefined transition %s", e.Key)
	}
	return fmt.Sprintf("output declared for unknown state %v", e.Key.State)
}

func (e *InvalidOutputError[S, A]) Unwrap() error { return ErrInvalidOutput }

// SymbolNotInAlphabetError is returned when a run reads a symbol the machine does not know.
type SymbolNotInAlphabetError[S, A comparable] struct {
	State  S
	Symbol A
}

func (e *SymbolNotInAlphabetError[S, A]) Error() string {
	return fmt.Sprintf("symbol %v is not in the alphabet (state %v)", e.Symbol, e.State)
}

func (e *SymbolNotInAlphabetError[S, A]) Unwrap() error { return ErrSymbolNotInAlphabet }

// TransitionUndefinedError is returned when no transition is declared for (State, Symbol).
type TransitionUndefinedError[S, A comparable] struct {
	State  S
	Symbol A
}

func (e *TransitionUndefinedError[S, A]) Error() string {
	return fmt.Sprintf("no transition defined for state %v on symbol %v", e.State, e.Symbol)
}

func (e *TransitionUndefinedError[S, A]) Unwrap() error { return ErrTransitionUndefined }

// ExecutionError annotates a failed step with its position in the input sequence.
// Trace holds the states visited before the failure, starting with the initial state,
// so Trace[len(Trace)-1] == State.
type ExecutionError[S, A comparable] struct {
	Index  int
	State  S
	Symbol A
	Trace  []S
	Err    error
}

func (e *ExecutionError[S, A]) Error() string {
	return fmt.Sprintf("input[%d]: %v", e.Index, e.Err)
}

func (e *ExecutionError[S, A]) Unwrap() error { return e.Err }

var kinds = []struct {
	err  error
	name string
}{
	{ErrEmptyStates, "EmptyStatesError"},
	{ErrEmptyAlphabet, "EmptyAlphabetError"},
	{ErrInvalidInitialState, "InvalidInitialStateError"},
	{ErrInvalidFinalStates, "InvalidFinalStatesError"},
	{ErrInvalidTransitionKey, "InvalidTransitionKeyError"},
	{ErrInvalidTransitionTarget, "InvalidTransitionTargetError"},
	{ErrDuplicateTransition, "DuplicateTransitionError"},
	{ErrInvalidOutput, "InvalidOutputError"},
	{ErrSymbolNotInAlphabet, "SymbolNotInAlphabetError"},
	{ErrTransitionUndefined, "TransitionUndefinedError"},
}

// Kind returns the name of the error kind wrapped by err, or "" if err is not a
// construction or execution error. Adapters use it as a stable wire identifier.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

func joinLabels[T any](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

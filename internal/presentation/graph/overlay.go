package graph

import (
	"fmt"

	"github.com/aretw0/dfsm/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromTrace marks every state of trace as visited and its last state as current.
func OverlayFromTrace[S comparable](trace []S) *GraphOverlay {
	if len(trace) == 0 {
		return nil
	}
	o := &GraphOverlay{VisitedStates: make([]string, len(trace))}
	for i, s := range trace {
		o.VisitedStates[i] = fmt.Sprint(s)
	}
	o.CurrentState = o.VisitedStates[len(trace)-1]
	return o
}

func (o *GraphOverlay) visited(label string) bool {
	if o == nil {
		return false
	}
	for _, v := range o.VisitedStates {
		if v == label {
			return true
		}
	}
	return false
}

func (o *GraphOverlay) current(label string) bool {
	return o != nil && o.CurrentState == label
}

// stateLabel renders a state, with its Moore output when it has one.
func stateLabel[S, A comparable](def *domain.Definition[S, A], s S) string {
	label := fmt.Sprint(s)
	if out, ok := def.StateOutput(s); ok {
		label += fmt.Sprintf(" / %v", out)
	}
	return label
}

// edgeLabel renders a transition, with its Mealy output when it has one.
func edgeLabel[S, A comparable](def *domain.Definition[S, A], t domain.Transition[S, A]) string {
	label := fmt.Sprint(t.On)
	if out, ok := def.TransitionOutput(t.From, t.On); ok {
		label += fmt.Sprintf(" / %v", out)
	}
	return label
}

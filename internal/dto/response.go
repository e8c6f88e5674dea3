package dto

import (
	"errors"

	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
)

// RunRequest is the body of a run or accepts call.
type RunRequest struct {
	Input   []string `json:"input" jsonschema_description:"Input symbols, consumed in order"`
	Outputs bool     `json:"outputs,omitempty" jsonschema_description:"Collect Moore/Mealy outputs"`
}

// RunResponse aligns the result of a run across adapters.
type RunResponse struct {
	RunID    string   `json:"run_id,omitempty" jsonschema_description:"Identifier used in server logs"`
	Machine  string   `json:"machine"`
	Trace    []string `json:"trace" jsonschema_description:"Visited states, starting with the initial state"`
	Terminal string   `json:"terminal"`
	Accepted bool     `json:"accepted"`
	Outputs  []any    `json:"outputs,omitempty"`
}

// AcceptsResponse is the answer to an acceptance query.
type AcceptsResponse struct {
	Machine  string `json:"machine"`
	Accepted bool   `json:"accepted"`
}

// ValidateResponse reports whether a document builds into a machine.
type ValidateResponse struct {
	Valid   bool           `json:"valid"`
	Summary *codec.Summary `json:"summary,omitempty"`
	*Error
}

// Error is the wire form of an error. Execution failures carry their position.
type Error struct {
	Message string   `json:"error"`
	Kind    string   `json:"kind,omitempty"`
	Index   *int     `json:"index,omitempty"`
	State   string   `json:"state,omitempty"`
	Symbol  string   `json:"symbol,omitempty"`
	Trace   []string `json:"trace,omitempty"`
}

// NewRunResponse maps a run result.
func NewRunResponse(machine string, res *domain.Result[string]) RunResponse {
	return RunResponse{
		Machine:  machine,
		Trace:    res.Trace,
		Terminal: res.Terminal,
		Accepted: res.Accepted,
		Outputs:  res.Outputs,
	}
}

// NewError maps err, keeping the failure position of execution errors.
func NewError(err error) *Error {
	e := &Error{Message: err.Error(), Kind: domain.Kind(err)}

	var exec *domain.ExecutionError[string, string]
	if errors.As(err, &exec) {
		index := exec.Index
		e.Index = &index
		e.State = exec.State
		e.Symbol = exec.Symbol
		e.Trace = exec.Trace
	}
	return e
}

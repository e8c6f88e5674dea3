package domain

// Result is the outcome of a successful run.
type Result[S comparable] struct {
	// Trace lists the visited states, from the initial state to Terminal.
	// len(Trace) == len(input) + 1.
	Trace    []S  `json:"trace"`
	Terminal S    `json:"terminal"`
	Accepted bool `json:"accepted"`

	// Outputs is only filled by traced runs: one entry per consumed symbol
	// followed by the Moore output of the terminal state (nil when absent).
	Outputs []any `json:"outputs,omitempty"`
}

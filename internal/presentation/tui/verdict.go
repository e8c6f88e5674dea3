package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Verdict renders the outcome of a run: green ACCEPTED or red REJECTED,
// followed by the terminal state.
func Verdict(accepted bool, terminal any) string {
	p := termenv.ColorProfile()
	word := p.String("REJECTED").Foreground(p.Color("#ef4444")).Bold()
	if accepted {
		word = p.String("ACCEPTED").Foreground(p.Color("#22c55e")).Bold()
	}
	return fmt.Sprintf("%s (terminal state: %v)", word, terminal)
}

// Failure renders an execution failure in red.
func Failure(msg string) string {
	p := termenv.ColorProfile()
	return p.String("FAILED: " + msg).Foreground(p.Color("#ef4444")).String()
}

// TraceLine joins a trace with arrows.
func TraceLine[S any](trace []S) string {
	parts := make([]string, len(trace))
	for i, s := range trace {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, " -> ")
}

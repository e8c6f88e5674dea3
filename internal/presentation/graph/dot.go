package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfsm/pkg/domain"
)

// GenerateDOT produces a Graphviz digraph of the machine: an invisible entry
// node points at the initial state, accepting states are double circles, and
// labels carry Moore and Mealy outputs as "label / output".
func GenerateDOT[S, A comparable](def *domain.Definition[S, A], overlay *GraphOverlay) string {
	name := def.Name()
	if name == "" {
		name = "dfsm"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("digraph %s {\n", dotQuote(name)))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  \"__start__\" [shape=none, label=\"\"];\n")

	for _, s := range def.States() {
		label := fmt.Sprint(s)
		shape := "circle"
		if def.IsAccepting(s) {
			shape = "doublecircle"
		}
		attrs := fmt.Sprintf("shape=%s, label=%s", shape, dotQuote(stateLabel(def, s)))
		switch {
		case overlay.current(label):
			attrs += `, style=filled, fillcolor="#ffeb3b"`
		case overlay.visited(label):
			attrs += `, style=filled, fillcolor="#e1f5fe"`
		}
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", dotQuote(label), attrs))
	}

	sb.WriteString(fmt.Sprintf("  \"__start__\" -> %s;\n", dotQuote(fmt.Sprint(def.Initial()))))
	for _, t := range def.Transitions() {
		sb.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n",
			dotQuote(fmt.Sprint(t.From)), dotQuote(fmt.Sprint(t.To)), dotQuote(edgeLabel(def, t))))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

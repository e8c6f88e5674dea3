package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfsm/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the machine.
// It applies semantic styling:
// - Entry: an unlabeled circle pointing at the initial state
// - Accepting: (((Double Circle)))
// - Default: ((Circle))
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid[S, A comparable](def *domain.Definition[S, A], overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make(map[S]string)
	for i, s := range def.States() {
		ids[s] = fmt.Sprintf("s%d", i)
	}

	sb.WriteString(fmt.Sprintf("    __start__(( )) --> %s\n", ids[def.Initial()]))

	for _, s := range def.States() {
		opener, closer := "((", "))"
		if def.IsAccepting(s) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", ids[s], opener, escapeMermaid(stateLabel(def, s)), closer))
	}

	for _, t := range def.Transitions() {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", ids[t.From], escapeMermaid(edgeLabel(def, t)), ids[t.To]))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, s := range def.States() {
			label := fmt.Sprint(s)
			if overlay.visited(label) {
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", ids[s]))
			}
		}
		for _, s := range def.States() {
			if overlay.current(fmt.Sprint(s)) {
				sb.WriteString(fmt.Sprintf("    class %s current;\n", ids[s]))
			}
		}
	}

	return sb.String()
}

// escapeMermaid replaces double quotes, which end a Mermaid label.
func escapeMermaid(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

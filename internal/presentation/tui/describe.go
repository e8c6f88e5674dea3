package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfsm/pkg/domain"
)

// Describe renders a machine as a markdown document: a summary, the state
// table and the transition table.
func Describe[S, A comparable](def *domain.Definition[S, A], description string) string {
	var sb strings.Builder

	name := def.Name()
	if name == "" {
		name = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if description = strings.TrimSpace(description); description != "" {
		fmt.Fprintf(&sb, "%s\n\n", description)
	}

	fmt.Fprintf(&sb, "- **Initial:** `%v`\n", def.Initial())
	fmt.Fprintf(&sb, "- **Accepting:** %s\n", codeList(def.Final()))
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n\n", codeList(def.Alphabet()))

	sb.WriteString("## States\n\n")
	sb.WriteString("| State | Accepting | Output |\n")
	sb.WriteString("|---|---|---|\n")
	for _, s := range def.States() {
		accepting := ""
		if def.IsAccepting(s) {
			accepting = "yes"
		}
		out := ""
		if v, ok := def.StateOutput(s); ok {
			out = fmt.Sprint(v)
		}
		fmt.Fprintf(&sb, "| `%v` | %s | %s |\n", s, accepting, cell(out))
	}

	sb.WriteString("\n## Transitions\n\n")
	transitions := def.Transitions()
	if len(transitions) == 0 {
		sb.WriteString("_No transitions declared._\n")
		return sb.String()
	}
	sb.WriteString("| From | On | To | Output |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, t := range transitions {
		out := ""
		if v, ok := def.TransitionOutput(t.From, t.On); ok {
			out = fmt.Sprint(v)
		}
		fmt.Fprintf(&sb, "| `%v` | `%v` | `%v` | %s |\n", t.From, t.On, t.To, cell(out))
	}
	return sb.String()
}

func codeList[T any](items []T) string {
	if len(items) == 0 {
		return "_none_"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("`%v`", item)
	}
	return strings.Join(parts, ", ")
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

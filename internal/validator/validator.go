package validator

import (
	"fmt"

	"github.com/aretw0/dfsm/pkg/domain"
)

// Severity ranks a lint finding. Findings never make a machine invalid:
// construction already rejected everything that would.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one observation about a valid machine.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	States   []string `json:"states"`
	Message  string   `json:"message"`
}

// Report is the result of Lint.
type Report struct {
	Findings []Finding `json:"findings"`
	Complete bool      `json:"complete"`
}

// Warnings returns the findings at warning level.
func (r Report) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// Lint crawls the machine from its initial state and reports:
//   - unreachable: states no input can reach
//   - no-accepting: the machine has no accepting state, so it accepts nothing
//   - dead-end: reachable states from which no accepting state can be reached
//   - partial: states missing a transition for some symbol (runs may fail with
//     TransitionUndefinedError)
func Lint[S, A comparable](def *domain.Definition[S, A]) Report {
	report := Report{Complete: true}

	reachable := crawl(def)
	var unreachable []S
	for _, s := range def.States() {
		if !reachable[s] {
			unreachable = append(unreachable, s)
		}
	}
	if len(unreachable) > 0 {
		report.add(SeverityWarning, "unreachable", labels(unreachable), "%d state(s) cannot be reached from the initial state", len(unreachable))
	}

	if len(def.Final()) == 0 {
		report.add(SeverityWarning, "no-accepting", nil, "no accepting states: every input is rejected")
	} else {
		live := coreachable(def)
		var dead []S
		for _, s := range def.States() {
			if reachable[s] && !live[s] {
				dead = append(dead, s)
			}
		}
		if len(dead) > 0 {
			report.add(SeverityWarning, "dead-end", labels(dead), "%d reachable state(s) can never lead to acceptance", len(dead))
		}
	}

	alphabet := def.Alphabet()
	var partial []S
	for _, s := range def.States() {
		if len(def.TransitionsFor(s)) < len(alphabet) {
			partial = append(partial, s)
		}
	}
	if len(partial) > 0 {
		report.Complete = false
		report.add(SeverityInfo, "partial", labels(partial), "%d state(s) do not define a transition for every symbol", len(partial))
	}

	return report
}

func (r *Report) add(sev Severity, code string, states []string, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Code:     code,
		States:   states,
		Message:  fmt.Sprintf(format, args...),
	})
}

// crawl returns the states reachable from the initial state (breadth-first).
func crawl[S, A comparable](def *domain.Definition[S, A]) map[S]bool {
	visited := make(map[S]bool)
	queue := []S{def.Initial()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range def.TransitionsFor(current) {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}

// coreachable returns the states from which some accepting state can be reached.
func coreachable[S, A comparable](def *domain.Definition[S, A]) map[S]bool {
	incoming := make(map[S][]S)
	for _, t := range def.Transitions() {
		incoming[t.To] = append(incoming[t.To], t.From)
	}

	live := make(map[S]bool)
	queue := def.Final()
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if live[current] {
			continue
		}
		live[current] = true
		queue = append(queue, incoming[current]...)
	}
	return live
}

func labels[S any](states []S) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = fmt.Sprint(s)
	}
	return out
}

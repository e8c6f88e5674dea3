package codec

import (
	"fmt"
	"sort"

	"github.com/aretw0/dfsm/pkg/domain"
	"golang.org/x/text/unicode/norm"
)

// Machine is the label-typed machine handled by every serialized form.
type Machine = domain.Definition[string, string]

// Document is the serialized form of a machine with string labels.
// It carries no guarantees: it only becomes a machine through Build.
type Document struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	States      []string        `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    []string        `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Initial     string          `json:"initial" yaml:"initial" mapstructure:"initial"`
	Final       []string        `json:"final" yaml:"final" mapstructure:"final"`
	Transitions []TransitionDoc `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// Outputs holds Moore outputs by state.
	Outputs map[string]any `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs"`
}

// TransitionDoc is one serialized edge. Output, when present, is its Mealy output.
type TransitionDoc struct {
	From   string `json:"from" yaml:"from" mapstructure:"from"`
	On     string `json:"on" yaml:"on" mapstructure:"on"`
	To     string `json:"to" yaml:"to" mapstructure:"to"`
	Output any    `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
}

// Build validates the document and returns the machine.
// Labels are NFC-normalized first so visually identical labels compare equal.
func (d *Document) Build() (*Machine, error) {
	if d == nil {
		return nil, fmt.Errorf("cannot build machine from nil document")
	}

	decl := domain.Declaration[string, string]{
		Name:     d.Name,
		States:   normalizeAll(d.States),
		Alphabet: normalizeAll(d.Alphabet),
		Initial:  normalize(d.Initial),
		Final:    normalizeAll(d.Final),
	}

	if len(d.Outputs) > 0 {
		decl.StateOutputs = make(map[string]any, len(d.Outputs))
		for state, out := range d.Outputs {
			decl.StateOutputs[normalize(state)] = out
		}
	}

	decl.Transitions = make([]domain.Transition[string, string], 0, len(d.Transitions))
	for _, t := range d.Transitions {
		tr := domain.Transition[string, string]{
			From: normalize(t.From),
			On:   normalize(t.On),
			To:   normalize(t.To),
		}
		decl.Transitions = append(decl.Transitions, tr)
		if t.Output != nil {
			if decl.TransitionOutputs == nil {
				decl.TransitionOutputs = make(map[domain.Key[string, string]]any)
			}
			decl.TransitionOutputs[tr.Key()] = t.Output
		}
	}

	return domain.Declare(decl)
}

// Encode converts a machine back into its document form.
// Encode followed by Build yields an equivalent machine.
func Encode(def *Machine) *Document {
	decl := def.Declaration()
	doc := &Document{
		Name:        decl.Name,
		States:      decl.States,
		Alphabet:    decl.Alphabet,
		Initial:     decl.Initial,
		Final:       decl.Final,
		Transitions: make([]TransitionDoc, 0, len(decl.Transitions)),
	}
	if doc.Final == nil {
		doc.Final = []string{}
	}
	for _, t := range decl.Transitions {
		td := TransitionDoc{From: t.From, On: t.On, To: t.To}
		if out, ok := decl.TransitionOutputs[t.Key()]; ok {
			td.Output = out
		}
		doc.Transitions = append(doc.Transitions, td)
	}
	if len(decl.StateOutputs) > 0 {
		doc.Outputs = decl.StateOutputs
	}
	return doc
}

// Summary is a short listing entry for a document.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	States      int    `json:"states"`
	Symbols     int    `json:"symbols"`
	Transitions int    `json:"transitions"`
}

// Summarize returns the listing entry of the document.
func (d *Document) Summarize() Summary {
	return Summary{
		Name:        d.Name,
		Description: d.Description,
		States:      len(d.States),
		Symbols:     len(d.Alphabet),
		Transitions: len(d.Transitions),
	}
}

// SortSummaries orders summaries by name.
func SortSummaries(items []Summary) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}

// NormalizeSymbols returns input in the same Unicode form as decoded labels,
// so that a symbol typed by a user matches the one declared in a document.
func NormalizeSymbols(input []string) []string {
	return normalizeAll(input)
}

func normalize(label string) string {
	return norm.NFC.String(label)
}

func normalizeAll(labels []string) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = normalize(l)
	}
	return out
}

// Clone returns a copy of the document that shares no slices or maps with d.
// Output values are copied by reference.
func (d *Document) Clone() *Document {
	cp := *d
	cp.States = append([]string(nil), d.States...)
	cp.Alphabet = append([]string(nil), d.Alphabet...)
	cp.Final = append([]string(nil), d.Final...)
	cp.Transitions = append([]TransitionDoc(nil), d.Transitions...)
	if d.Outputs != nil {
		cp.Outputs = make(map[string]any, len(d.Outputs))
		for k, v := range d.Outputs {
			cp.Outputs[k] = v
		}
	}
	return &cp
}

package loam

import "github.com/aretw0/dfsm/pkg/codec"

// MachineMetadata represents the frontmatter of a machine document.
// The document body, when present, is used as the machine description.
type MachineMetadata struct {
	Name        string             `json:"name" mapstructure:"name"`
	Description string             `json:"description" mapstructure:"description"`
	States      []string           `json:"states" mapstructure:"states"`
	Alphabet    []string           `json:"alphabet" mapstructure:"alphabet"`
	Initial     string             `json:"initial" mapstructure:"initial"`
	Final       []string           `json:"final" mapstructure:"final"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
	Outputs     map[string]any     `json:"outputs" mapstructure:"outputs"`
}

// LoaderTransition is one frontmatter edge. "to_state" is accepted as a
// long form of "to", matching the long keys used by hand-written catalogs.
type LoaderTransition struct {
	From    string `json:"from" mapstructure:"from"`
	On      string `json:"on" mapstructure:"on"`
	To      string `json:"to" mapstructure:"to"`
	ToState string `json:"to_state" mapstructure:"to_state"`
	Output  any    `json:"output" mapstructure:"output"`
}

func (m MachineMetadata) document(id, content string) *codec.Document {
	doc := &codec.Document{
		Name:        m.Name,
		Description: m.Description,
		States:      m.States,
		Alphabet:    m.Alphabet,
		Initial:     m.Initial,
		Final:       m.Final,
		Outputs:     m.Outputs,
		Transitions: make([]codec.TransitionDoc, 0, len(m.Transitions)),
	}
	if doc.Name == "" {
		doc.Name = id
	}
	if doc.Description == "" {
		doc.Description = content
	}
	for _, t := range m.Transitions {
		to := t.To
		if to == "" {
			to = t.ToState
		}
		doc.Transitions = append(doc.Transitions, codec.TransitionDoc{
			From:   t.From,
			On:     t.On,
			To:     to,
			Output: t.Output,
		})
	}
	return doc
}

// FromDocument is the inverse of the loader mapping. The description is left
// out: Writer stores it as the document body.
func FromDocument(doc *codec.Document) MachineMetadata {
	meta := MachineMetadata{
		Name:        doc.Name,
		States:      doc.States,
		Alphabet:    doc.Alphabet,
		Initial:     doc.Initial,
		Final:       doc.Final,
		Outputs:     doc.Outputs,
		Transitions: make([]LoaderTransition, 0, len(doc.Transitions)),
	}
	for _, t := range doc.Transitions {
		meta.Transitions = append(meta.Transitions, LoaderTransition{
			From:   t.From,
			On:     t.On,
			To:     t.To,
			Output: t.Output,
		})
	}
	return meta
}

package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
)

// Loader implements ports.MachineLoader using an in-memory map of raw documents.
// Documents are parsed on every Load, exactly like a file-backed loader would.
type Loader struct {
	docs map[string][]byte
}

// NewLoader creates a new Loader with the provided raw data (YAML or JSON text).
func NewLoader(data map[string]string) *Loader {
	docs := make(map[string][]byte)
	for k, v := range data {
		docs[k] = []byte(v)
	}
	return &Loader{
		docs: docs,
	}
}

// NewFromMachines creates a new Loader from validated machines.
// This handles serialization automatically, improving DX for tests.
func NewFromMachines(defs ...*codec.Machine) (*Loader, error) {
	data := make(map[string][]byte)
	for _, def := range defs {
		if def.Name() == "" {
			return nil, fmt.Errorf("machine missing name")
		}
		raw, err := codec.Marshal(codec.Encode(def), codec.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal machine %s: %w", def.Name(), err)
		}
		data[def.Name()] = raw
	}
	return &Loader{docs: data}, nil
}

// Load parses the raw document stored under name.
func (l *Loader) Load(ctx context.Context, name string) (*codec.Document, error) {
	raw, ok := l.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	format := codec.FormatYAML
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		format = codec.FormatJSON
	}
	doc, err := codec.Unmarshal(raw, format)
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

// List returns all available machine names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.docs))
	for k := range l.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

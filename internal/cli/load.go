package cli

import (
	"fmt"
	"os"

	"github.com/aretw0/dfsm/pkg/codec"
)

// LoadMachine reads a YAML or JSON machine file (format chosen by extension)
// and validates it.
func LoadMachine(path string) (*codec.Machine, *codec.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read machine file: %w", err)
	}
	def, doc, err := codec.Load(data, codec.FormatFromPath(path))
	if err != nil {
		return nil, doc, fmt.Errorf("%s: %w", path, err)
	}
	return def, doc, nil
}

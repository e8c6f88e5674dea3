package ports

import (
	"context"

	"github.com/aretw0/dfsm/pkg/codec"
)

// MachineStore defines the interface for persisting machine documents.
// Stores hold documents, not machines: whoever loads a document must build
// (and therefore re-validate) it before running it.
type MachineStore interface {
	MachineLoader

	// Save persists the document under name, replacing any previous one.
	Save(ctx context.Context, name string, doc *codec.Document) error

	// Delete removes the document. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}

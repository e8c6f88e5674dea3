package ports

import (
	"context"

	"github.com/aretw0/dfsm/pkg/codec"
)

// MachineLoader defines how machine documents are retrieved by name.
// This allows the storage layer (Loam, FS, Redis, Memory) to be decoupled.
type MachineLoader interface {
	// Load retrieves the document stored under name.
	// Returns domain.ErrMachineNotFound if it does not exist.
	Load(ctx context.Context, name string) (*codec.Document, error)

	// List returns the names of every available machine, sorted.
	List(ctx context.Context) ([]string, error)
}

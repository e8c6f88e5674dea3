package loam

import (
	"context"
	"fmt"

	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/loam"
)

// Writer saves machines into a Loam repository as Markdown documents whose
// frontmatter holds the machine and whose body holds the description.
type Writer struct {
	Repo *loam.TypedRepository[MachineMetadata]
}

// NewWriter creates a writer over repo.
func NewWriter(repo *loam.TypedRepository[MachineMetadata]) *Writer {
	return &Writer{Repo: repo}
}

// Save validates doc and writes it as <name>.md.
func (w *Writer) Save(ctx context.Context, doc *codec.Document) error {
	if doc.Name == "" {
		return fmt.Errorf("machine document has no name")
	}
	if _, err := doc.Build(); err != nil {
		return fmt.Errorf("refusing to save machine %s: %w", doc.Name, err)
	}

	err := w.Repo.Save(ctx, &loam.DocumentModel[MachineMetadata]{
		ID:      doc.Name + ".md",
		Content: doc.Description,
		Data:    FromDocument(doc),
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", doc.Name, err)
	}
	return nil
}

package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the ports.MachineLoader interface.
// Machines are Markdown, YAML or JSON documents; the body of a Markdown
// document becomes the machine description.
type Loader struct {
	Repo *loam.TypedRepository[MachineMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[MachineMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository rooted at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve machine directory: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithStrict(true), loam.WithReadOnly(true), loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open loam repository: %w", err)
	}
	return New(loam.NewTypedRepository[MachineMetadata](repo)), nil
}

// Load retrieves a machine document by name.
// Loam resolves "turnstile" to turnstile.md, turnstile.yaml or turnstile.json.
func (l *Loader) Load(ctx context.Context, name string) (*codec.Document, error) {
	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}
	return doc.Data.document(trimExtension(doc.ID), strings.TrimSpace(doc.Content)), nil
}

// List lists all machines in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := trimExtension(doc.ID)

		// Collision Detection
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: machine '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Watch returns a channel that receives the name of every machine that changes on disk.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func isNotFound(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

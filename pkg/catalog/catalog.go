package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/aretw0/dfsm/pkg/ports"
)

// ErrReadOnly is returned by writes on a catalog backed by a plain loader.
var ErrReadOnly = errors.New("machine catalog is read-only")

// Entry is one listing row of the catalog.
type Entry struct {
	codec.Summary
	Valid bool   `json:"valid"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

// Catalog serves named machines from a loader or store.
// Nothing is cached: every lookup loads the document and builds it again, so a
// document edited or corrupted behind the catalog's back is caught on the next use.
type Catalog struct {
	loader  ports.MachineLoader
	store   ports.MachineStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used to report writes and broken documents.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithLocker serializes writes to the same name through locker.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *Catalog) {
		c.locker = locker
		c.lockTTL = ttl
	}
}

// New creates a catalog. It is writable when loader also implements ports.MachineStore.
func New(loader ports.MachineLoader, opts ...Option) *Catalog {
	c := &Catalog{
		loader:  loader,
		lockTTL: 10 * time.Second,
		logger:  logging.NewNop(),
	}
	if store, ok := loader.(ports.MachineStore); ok {
		c.store = store
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Writable reports whether Put and Delete are supported.
func (c *Catalog) Writable() bool {
	return c.store != nil
}

// Get loads and validates the machine stored under name.
// The document is returned alongside the machine, and also on validation failure.
func (c *Catalog) Get(ctx context.Context, name string) (*codec.Machine, *codec.Document, error) {
	doc, err := c.loader.Load(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if doc.Name == "" {
		doc.Name = name
	}
	def, err := doc.Build()
	if err != nil {
		c.logger.Warn("stored machine failed validation", "machine", name, "kind", domain.Kind(err), "err", err)
		return nil, doc, fmt.Errorf("machine %s: %w", name, err)
	}
	return def, doc, nil
}

// Machine is Get without the document.
func (c *Catalog) Machine(ctx context.Context, name string) (*codec.Machine, error) {
	def, _, err := c.Get(ctx, name)
	return def, err
}

// List returns an entry per stored machine, including the ones that no longer validate.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	names, err := c.loader.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		_, doc, err := c.Get(ctx, name)
		entry := Entry{Summary: codec.Summary{Name: name}}
		if doc != nil {
			entry.Summary = doc.Summarize()
		}
		if err != nil {
			entry.Kind = domain.Kind(err)
			entry.Error = err.Error()
		} else {
			entry.Valid = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Put validates doc and stores it under name. An invalid document is never stored.
func (c *Catalog) Put(ctx context.Context, name string, doc *codec.Document) (*codec.Machine, error) {
	if c.store == nil {
		return nil, ErrReadOnly
	}

	doc = doc.Clone()
	doc.Name = name
	def, err := doc.Build()
	if err != nil {
		return nil, err
	}

	unlock, err := c.lock(ctx, name)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := c.store.Save(ctx, name, doc); err != nil {
		return nil, fmt.Errorf("failed to store machine %s: %w", name, err)
	}
	c.logger.Info("machine stored", "machine", name, "states", len(doc.States), "transitions", len(doc.Transitions))
	return def, nil
}

// Delete removes the machine stored under name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	if c.store == nil {
		return ErrReadOnly
	}

	unlock, err := c.lock(ctx, name)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := c.store.Load(ctx, name); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete machine %s: %w", name, err)
	}
	c.logger.Info("machine deleted", "machine", name)
	return nil
}

func (c *Catalog) lock(ctx context.Context, name string) (func(), error) {
	if c.locker == nil {
		return func() {}, nil
	}
	release, err := c.locker.Lock(ctx, name, c.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock machine %s: %w", name, err)
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			c.logger.Warn("failed to release machine lock", "machine", name, "err", err)
		}
	}, nil
}

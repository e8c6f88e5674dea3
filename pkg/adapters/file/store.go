package file

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
)

// Extensions recognised by the store, in lookup order.
var extensions = []string{".yaml", ".yml", ".json"}

// ErrInvalidName is returned for names that cannot be mapped to a single file.
var ErrInvalidName = errors.New("invalid machine name")

// Store implements ports.MachineStore using the local filesystem.
// It stores machines as YAML documents in a configured directory and reads
// YAML or JSON files placed there by hand.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".dfsm/machines".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".dfsm", "machines")
	}
	return &Store{BasePath: basePath}
}

// tmpPrefix marks in-flight writes. checkName rejects leading dots, so no
// machine name can share it.
const tmpPrefix = ".tmp-"

func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Save persists the document as YAML atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, name string, doc *codec.Document) error {
	if err := checkName(name); err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure machine directory: %w", err)
	}

	data, err := codec.Marshal(doc, codec.FormatYAML)
	if err != nil {
		return err
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, tmpPrefix+name+"-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// A hand-written .yml or .json copy would shadow nothing but confuse List.
	for _, ext := range extensions[1:] {
		if err := os.Remove(filepath.Join(s.BasePath, name+ext)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale machine file: %w", err)
		}
	}

	destPath := filepath.Join(s.BasePath, name+".yaml")
	if _, err := os.Stat(destPath); err == nil {
		// On Windows, os.Rename fails if dest exists.
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing machine file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to machine file: %w", err)
	}
	return nil
}

// Load reads and parses the machine file for name.
func (s *Store) Load(ctx context.Context, name string) (*codec.Document, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		path := filepath.Join(s.BasePath, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read machine file: %w", err)
		}
		doc, err := codec.Unmarshal(data, codec.FormatFromPath(path))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if doc.Name == "" {
			doc.Name = name
		}
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
}

// Delete removes every file stored for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete machine file: %w", err)
		}
	}
	return nil
}

// List returns the names of all machine files, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !known(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func known(ext string) bool {
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

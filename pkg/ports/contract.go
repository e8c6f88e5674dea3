package ports

import (
	"context"
	"testing"

	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractDocument returns the turnstile document used by the contract suites.
func ContractDocument(name string) *codec.Document {
	return &codec.Document{
		Name:        name,
		Description: "contract turnstile",
		States:      []string{"Locked", "Unlocked"},
		Alphabet:    []string{"Coin", "Push"},
		Initial:     "Locked",
		Final:       []string{"Unlocked"},
		Transitions: []codec.TransitionDoc{
			{From: "Locked", On: "Coin", To: "Unlocked"},
			{From: "Locked", On: "Push", To: "Locked"},
			{From: "Unlocked", On: "Coin", To: "Unlocked", Output: "thanks"},
			{From: "Unlocked", On: "Push", To: "Locked"},
		},
	}
}

// RunMachineStoreContract runs a suite of tests to verify that a MachineStore implementation
// adheres to the defined interface contract.
func RunMachineStoreContract(t *testing.T, store MachineStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		doc := ContractDocument("contract-turnstile")
		require.NoError(t, store.Save(ctx, doc.Name, doc), "Save should not return error")

		loaded, err := store.Load(ctx, doc.Name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc.States, loaded.States)
		assert.Equal(t, doc.Alphabet, loaded.Alphabet)
		assert.Equal(t, doc.Initial, loaded.Initial)
		assert.Equal(t, doc.Final, loaded.Final)
		assert.Equal(t, doc.Transitions, loaded.Transitions)
		assert.Equal(t, doc.Description, loaded.Description)

		def, err := loaded.Build()
		require.NoError(t, err, "loaded document must still build")
		assert.True(t, def.IsAccepting("Unlocked"))
	})

	t.Run("Loaded documents are isolated", func(t *testing.T) {
		doc := ContractDocument("contract-isolated")
		require.NoError(t, store.Save(ctx, doc.Name, doc))
		doc.States[0] = "Mutated"

		loaded, err := store.Load(ctx, doc.Name)
		require.NoError(t, err)
		assert.Equal(t, "Locked", loaded.States[0])
		loaded.States[0] = "Mutated"

		again, err := store.Load(ctx, doc.Name)
		require.NoError(t, err)
		assert.Equal(t, "Locked", again.States[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		doc := ContractDocument("contract-overwrite")
		require.NoError(t, store.Save(ctx, doc.Name, doc))

		doc.Final = []string{"Locked"}
		require.NoError(t, store.Save(ctx, doc.Name, doc))

		loaded, err := store.Load(ctx, doc.Name)
		require.NoError(t, err)
		assert.Equal(t, []string{"Locked"}, loaded.Final)
	})

	t.Run("Delete", func(t *testing.T) {
		doc := ContractDocument("contract-delete")
		require.NoError(t, store.Save(ctx, doc.Name, doc))

		require.NoError(t, store.Delete(ctx, doc.Name), "Delete should not return error")

		_, err := store.Load(ctx, doc.Name)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound, "Load after Delete should return ErrMachineNotFound")

		assert.NoError(t, store.Delete(ctx, doc.Name), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		a := ContractDocument("contract-list-a")
		b := ContractDocument("contract-list-b")
		require.NoError(t, store.Save(ctx, a.Name, a))
		require.NoError(t, store.Save(ctx, b.Name, b))
		defer func() {
			_ = store.Delete(ctx, a.Name)
			_ = store.Delete(ctx, b.Name)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, a.Name)
		assert.Contains(t, names, b.Name)
		assert.IsNonDecreasing(t, names)
	})
}

// RunMachineLoaderContract verifies a read-only MachineLoader preloaded with
// exactly the documents in expected.
func RunMachineLoaderContract(t *testing.T, loader MachineLoader, expected map[string]*codec.Document) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, want := range expected {
			got, err := loader.Load(ctx, name)
			require.NoError(t, err, "unexpected error loading %s", name)
			assert.Equal(t, want.States, got.States, name)
			assert.Equal(t, want.Alphabet, got.Alphabet, name)
			assert.Equal(t, want.Initial, got.Initial, name)
			assert.Equal(t, want.Transitions, got.Transitions, name)
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Len(t, names, len(expected))
		for name := range expected {
			assert.Contains(t, names, name)
		}
		assert.IsNonDecreasing(t, names)
	})
}

package loam

import (
	"context"
	"testing"

	"github.com/aretw0/dfsm/internal/testutils"
	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/aretw0/dfsm/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turnstileMD = `---
name: turnstile
states: [Locked, Unlocked]
alphabet: [Coin, Push]
initial: Locked
final: [Unlocked]
transitions:
  - {from: Locked, on: Coin, to: Unlocked}
  - {from: Locked, on: Push, to: Locked}
  - {from: Unlocked, on: Coin, to: Unlocked}
  - {from: Unlocked, on: Push, to: Locked}
---
A coin-operated turnstile.`

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{ID: "turnstile.md", Content: turnstileMD}))

	loader := New(loam.NewTypedRepository[MachineMetadata](repo))

	expected := &codec.Document{
		States:   []string{"Locked", "Unlocked"},
		Alphabet: []string{"Coin", "Push"},
		Initial:  "Locked",
		Transitions: []codec.TransitionDoc{
			{From: "Locked", On: "Coin", To: "Unlocked"},
			{From: "Locked", On: "Push", To: "Locked"},
			{From: "Unlocked", On: "Coin", To: "Unlocked"},
			{From: "Unlocked", On: "Push", To: "Locked"},
		},
	}
	ports.RunMachineLoaderContract(t, loader, map[string]*codec.Document{"turnstile": expected})
}

func TestLoader_BodyBecomesDescription(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, core.Document{ID: "turnstile.md", Content: turnstileMD}))

	loader := New(loam.NewTypedRepository[MachineMetadata](repo))
	doc, err := loader.Load(ctx, "turnstile")
	require.NoError(t, err)
	assert.Equal(t, "A coin-operated turnstile.", doc.Description)

	def, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, "turnstile", def.Name())
}

func TestLoader_ListNormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"turnstile.md": turnstileMD,
		"gate.json": `{
  "states": ["shut", "open"],
  "alphabet": ["key"],
  "initial": "shut",
  "transitions": [{"from": "shut", "on": "key", "to_state": "open"}]
}`,
	}
	testutils.WriteFiles(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[MachineMetadata](repo))

	names, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gate", "turnstile"}, names)

	doc, err := loader.Load(context.Background(), "gate")
	require.NoError(t, err)
	assert.Equal(t, "gate", doc.Name)
	assert.Equal(t, "open", doc.Transitions[0].To)
}

func TestLoader_ListDetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	testutils.WriteFiles(t, tmpDir, map[string]string{
		"gate.md":   "---\nstates: [a]\n---\n",
		"gate.json": `{"states": ["a"]}`,
	})

	loader := New(loam.NewTypedRepository[MachineMetadata](repo))

	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_NotFound(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	loader := New(loam.NewTypedRepository[MachineMetadata](repo))

	_, err := loader.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

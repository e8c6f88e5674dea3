package dsl

import (
	"testing"

	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Turnstile(t *testing.T) {
	b := New[string, string]("turnstile")

	b.Add("Locked").
		Initial().
		On("Coin", "Unlocked").
		On("Push", "Locked")

	b.Add("Unlocked").
		Accepting().
		On("Coin", "Unlocked").
		On("Push", "Locked")

	def, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "turnstile", def.Name())
	assert.Equal(t, []string{"Locked", "Unlocked"}, def.States())
	assert.Equal(t, []string{"Coin", "Push"}, def.Alphabet())
	assert.Equal(t, "Locked", def.Initial())
	assert.Equal(t, []string{"Unlocked"}, def.Final())
	assert.Len(t, def.Transitions(), 4)
}

func TestBuilder_DefaultInitialAndExplicitSymbols(t *testing.T) {
	b := New[string, string]("partial").Symbols("y", "x")
	b.Add("A").On("x", "B")
	b.Add("B")

	def, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "A", def.Initial())
	assert.Equal(t, []string{"y", "x"}, def.Alphabet())
	assert.Empty(t, def.Final())
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New[string, string]("m")
	first := b.Add("A")
	assert.Same(t, first, b.Add("A"))
}

func TestBuilder_UndeclaredTarget(t *testing.T) {
	b := New[string, string]("typo")
	b.Add("A").On("x", "Bee")
	b.Add("B")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransitionTarget)
	assert.Contains(t, err.Error(), `"typo"`)
}

func TestBuilder_DuplicateTransition(t *testing.T) {
	b := New[string, string]("dup")
	b.Add("A").On("x", "A").On("x", "B")
	b.Add("B")

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrDuplicateTransition)
}

func TestBuilder_Empty(t *testing.T) {
	_, err := New[string, string]("empty").Build()
	assert.ErrorIs(t, err, domain.ErrEmptyStates)
}

func TestBuilder_Outputs(t *testing.T) {
	b := New[string, string]("vending")
	b.Add("Idle").Output("ready").Accepting().
		On("coin", "Paid").Emit("credit")
	b.Add("Paid").
		On("select", "Idle").Emit("dispense").
		On("refund", "Idle")

	def, err := b.Build()
	require.NoError(t, err)

	out, ok := def.StateOutput("Idle")
	assert.True(t, ok)
	assert.Equal(t, "ready", out)

	out, ok = def.TransitionOutput("Paid", "select")
	assert.True(t, ok)
	assert.Equal(t, "dispense", out)

	_, ok = def.TransitionOutput("Paid", "refund")
	assert.False(t, ok)
}

func TestBuilder_EmitWithoutTransition(t *testing.T) {
	b := New[string, string]("m")
	b.Add("A").Emit("ignored").On("x", "A")

	def, err := b.Build()
	require.NoError(t, err)
	assert.False(t, def.HasTransitionOutputs())
}

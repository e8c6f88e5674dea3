package runtime_test

import (
	"testing"

	"github.com/aretw0/dfsm/internal/runtime"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Trace_Moore(t *testing.T) {
	def, err := domain.Declare(domain.Declaration[string, string]{
		Name:     "traffic-light",
		States:   []string{"Green", "Yellow", "Red"},
		Alphabet: []string{"tick"},
		Transitions: []domain.Transition[string, string]{
			{From: "Green", On: "tick", To: "Yellow"},
			{From: "Yellow", On: "tick", To: "Red"},
			{From: "Red", On: "tick", To: "Green"},
		},
		Initial:      "Green",
		StateOutputs: map[string]any{"Green": "go", "Yellow": "slow", "Red": "stop"},
	})
	require.NoError(t, err)

	res, err := runtime.NewEngine[string, string]().Trace(def, []string{"tick", "tick"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Green", "Yellow", "Red"}, res.Trace)
	assert.Equal(t, []any{"go", "slow", "stop"}, res.Outputs)
	assert.False(t, res.Accepted)
}

func TestEngine_Trace_Mealy(t *testing.T) {
	def, err := domain.Declare(domain.Declaration[string, string]{
		Name:     "vending-machine",
		States:   []string{"Idle", "Paid"},
		Alphabet: []string{"coin", "select", "refund"},
		Transitions: []domain.Transition[string, string]{
			{From: "Idle", On: "coin", To: "Paid"},
			{From: "Paid", On: "select", To: "Idle"},
			{From: "Paid", On: "refund", To: "Idle"},
		},
		Initial: "Idle",
		Final:   []string{"Idle"},
		StateOutputs: map[string]any{
			"Idle": "ready",
		},
		TransitionOutputs: map[key]any{
			{State: "Idle", Symbol: "coin"}:   "credit",
			{State: "Paid", Symbol: "select"}: "dispense",
		},
	})
	require.NoError(t, err)

	res, err := runtime.NewEngine[string, string]().Trace(def, []string{"coin", "refund", "coin", "select"})
	require.NoError(t, err)
	// Mealy outputs win; a transition without one yields nil. The terminal
	// state still contributes its Moore output.
	assert.Equal(t, []any{"credit", nil, "credit", "dispense", "ready"}, res.Outputs)
	assert.True(t, res.Accepted)
}

func TestEngine_Trace_NoOutputs(t *testing.T) {
	def := newTurnstile(t)

	res, err := runtime.NewEngine[string, string]().Trace(def, []string{"Coin"})
	require.NoError(t, err)
	assert.Equal(t, []any{nil, nil}, res.Outputs)
}

func TestEngine_Trace_FailureHasNoOutputs(t *testing.T) {
	def := newTurnstile(t)

	res, err := runtime.NewEngine[string, string]().Trace(def, []string{"Coin", "Kick"})
	require.Error(t, err)
	assert.Nil(t, res)
}

package runtime_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/internal/runtime"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	def := newTurnstile(t).WithName("turnstile")

	var starts, ends []*domain.RunEvent
	var steps []*domain.StepEvent
	hooks := domain.LifecycleHooks{
		OnRunStart: func(e *domain.RunEvent) { starts = append(starts, e) },
		OnStep:     func(e *domain.StepEvent) { steps = append(steps, e) },
		OnRunEnd:   func(e *domain.RunEvent) { ends = append(ends, e) },
	}
	engine := runtime.NewEngine[string, string](runtime.WithHooks(hooks))

	_, err := engine.Run(def, []string{"Coin", "Push"})
	require.NoError(t, err)

	require.Len(t, starts, 1)
	assert.Equal(t, domain.EventRunStart, starts[0].Type)
	assert.Equal(t, "turnstile", starts[0].Machine)
	assert.Equal(t, 2, starts[0].InputLength)

	require.Len(t, steps, 2)
	assert.Equal(t, "Locked", steps[0].From)
	assert.Equal(t, "Coin", steps[0].Symbol)
	assert.Equal(t, "Unlocked", steps[0].To)
	assert.Equal(t, 1, steps[1].Index)

	require.Len(t, ends, 1)
	assert.Equal(t, domain.EventRunEnd, ends[0].Type)
	assert.Equal(t, 2, ends[0].Steps)
	assert.Equal(t, "Locked", ends[0].Terminal)
	assert.False(t, ends[0].Accepted)
	assert.NoError(t, ends[0].Err)
}

func TestEngine_LifecycleHooks_Failure(t *testing.T) {
	def := newTurnstile(t)

	var end *domain.RunEvent
	engine := runtime.NewEngine[string, string](runtime.WithHooks(domain.LifecycleHooks{
		OnRunEnd: func(e *domain.RunEvent) { end = e },
	}))

	_, err := engine.Run(def, []string{"Coin", "Kick"})
	require.Error(t, err)
	require.NotNil(t, end)
	assert.Equal(t, 1, end.Steps)
	assert.ErrorIs(t, end.Err, domain.ErrSymbolNotInAlphabet)
	assert.Empty(t, end.Terminal)
}

func TestEngine_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, logging.FormatJSON)
	engine := runtime.NewEngine[string, string](runtime.WithLogger(logger))

	_, err := engine.Run(newTurnstile(t), []string{"Kick"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"run failed"`)
	assert.Contains(t, buf.String(), `"symbol":"Kick"`)
}

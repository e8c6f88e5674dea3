package observability_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/internal/runtime"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/aretw0/dfsm/pkg/dsl"
	"github.com/aretw0/dfsm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnstile(t *testing.T) *domain.Definition[string, string] {
	t.Helper()
	b := dsl.New[string, string]("turnstile")
	b.Add("Locked").On("Coin", "Unlocked").On("Push", "Locked")
	b.Add("Unlocked").Accepting().On("Coin", "Unlocked").On("Push", "Locked")
	def, err := b.Build()
	require.NoError(t, err)
	return def
}

func TestMetrics_RecordsRuns(t *testing.T) {
	m := observability.NewMetrics()
	engine := runtime.NewEngine[string, string](runtime.WithHooks(m.Hooks()))
	def := turnstile(t)

	_, err := engine.Run(def, []string{"Coin"})
	require.NoError(t, err)
	_, err = engine.Run(def, []string{"Coin", "Push"})
	require.NoError(t, err)
	_, err = engine.Run(def, []string{"Kick"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("turnstile", "accepted", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("turnstile", "rejected", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("turnstile", "error", "SymbolNotInAlphabetError")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Steps.WithLabelValues("turnstile", "Locked", "Coin", "Unlocked")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Runs.WithLabelValues("turnstile", "accepted", "").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dfsm_runs_total{kind="",machine="turnstile",outcome="accepted"} 1`)
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnStep: func(*domain.StepEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{
		OnStep:   func(*domain.StepEvent) { order = append(order, "b") },
		OnRunEnd: func(*domain.RunEvent) { order = append(order, "end") },
	}

	hooks := observability.Combine(a, domain.LifecycleHooks{}, b)
	assert.Nil(t, hooks.OnRunStart)

	engine := runtime.NewEngine[string, string](runtime.WithHooks(hooks))
	_, err := engine.Run(turnstile(t), []string{"Coin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "end"}, order)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, logging.FormatText)
	engine := runtime.NewEngine[string, string](runtime.WithHooks(observability.LogHooks(logger)))

	_, err := engine.Run(turnstile(t), []string{"Coin", "Kick"})
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "msg=transition")
	assert.Contains(t, lines[0], "step=input[0]")
	assert.Contains(t, lines[1], "kind=SymbolNotInAlphabetError")
}

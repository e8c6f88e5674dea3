package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/dfsm/internal/presentation/graph"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/aretw0/dfsm/pkg/dsl"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func turnstile(t *testing.T) *domain.Definition[string, string] {
	t.Helper()
	b := dsl.New[string, string]("turnstile")
	b.Add("Locked").On("Coin", "Unlocked").On("Push", "Locked")
	b.Add("Unlocked").Accepting().On("Coin", "Unlocked").On("Push", "Locked")
	def, err := b.Build()
	require.NoError(t, err)
	return def
}

func vending(t *testing.T) *domain.Definition[string, string] {
	t.Helper()
	b := dsl.New[string, string]("vending-machine")
	b.Add("Idle").Accepting().Output("ready").On("coin", "Paid").Emit("credit")
	b.Add("Paid").On("select", "Idle").Emit("dispense").On("refund", "Idle")
	def, err := b.Build()
	require.NoError(t, err)
	return def
}

func TestGenerateMermaid_Golden(t *testing.T) {
	g := newGoldie(t)

	g.Assert(t, "turnstile_mermaid", []byte(graph.GenerateMermaid(turnstile(t), nil)))
	g.Assert(t, "vending_mermaid", []byte(graph.GenerateMermaid(vending(t), nil)))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	g := newGoldie(t)
	overlay := graph.OverlayFromTrace([]string{"Locked", "Unlocked"})

	g.Assert(t, "turnstile_mermaid_trace", []byte(graph.GenerateMermaid(turnstile(t), overlay)))
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	b := dsl.New[string, string]("quotes")
	b.Add(`say "hi"`).On(`"x"`, `say "hi"`)
	def, err := b.Build()
	require.NoError(t, err)

	got := graph.GenerateMermaid(def, nil)
	if !strings.Contains(got, `s0(("say 'hi'"))`) || !strings.Contains(got, `-- "'x'" -->`) {
		t.Errorf("GenerateMermaid() = \n%v\nwant quotes replaced", got)
	}
}

func TestOverlayFromTrace_Empty(t *testing.T) {
	if graph.OverlayFromTrace[string](nil) != nil {
		t.Error("expected nil overlay for empty trace")
	}
}

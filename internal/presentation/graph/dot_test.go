package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/dfsm/internal/presentation/graph"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDOT_Golden(t *testing.T) {
	g := newGoldie(t)

	g.Assert(t, "turnstile_dot", []byte(graph.GenerateDOT(turnstile(t), nil)))
	g.Assert(t, "vending_dot", []byte(graph.GenerateDOT(vending(t), nil)))
	g.Assert(t, "turnstile_dot_trace", []byte(graph.GenerateDOT(turnstile(t), graph.OverlayFromTrace([]string{"Locked", "Locked"}))))
}

func TestGenerateDOT_Unnamed(t *testing.T) {
	def, err := domain.New([]int{1, 2}, []rune{'a'}, map[domain.Key[int, rune]]int{{State: 1, Symbol: 'a'}: 2}, 1, []int{2})
	require.NoError(t, err)

	got := graph.GenerateDOT(def, nil)
	assert.True(t, strings.HasPrefix(got, `digraph "dfsm" {`))
	assert.Contains(t, got, `"1" -> "2" [label="97"];`)
	assert.Contains(t, got, `"2" [shape=doublecircle, label="2"];`)
}

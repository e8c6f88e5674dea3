package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tkey = domain.Key[string, string]

func turnstileTable() map[tkey]string {
	return map[tkey]string{
		{State: "Locked", Symbol: "Push"}:   "Locked",
		{State: "Locked", Symbol: "Coin"}:   "Unlocked",
		{State: "Unlocked", Symbol: "Push"}: "Locked",
		{State: "Unlocked", Symbol: "Coin"}: "Unlocked",
	}
}

func turnstile(t *testing.T) *domain.Definition[string, string] {
	t.Helper()
	def, err := domain.New(
		[]string{"Locked", "Unlocked"},
		[]string{"Coin", "Push"},
		turnstileTable(),
		"Locked",
		[]string{"Unlocked"},
	)
	require.NoError(t, err)
	return def
}

func TestNew_Turnstile(t *testing.T) {
	def := turnstile(t)

	assert.Equal(t, []string{"Locked", "Unlocked"}, def.States())
	assert.Equal(t, []string{"Coin", "Push"}, def.Alphabet())
	assert.Equal(t, "Locked", def.Initial())
	assert.Equal(t, []string{"Unlocked"}, def.Final())
	assert.Len(t, def.Transitions(), 4)

	next, ok := def.Lookup("Locked", "Coin")
	assert.True(t, ok)
	assert.Equal(t, "Unlocked", next)

	assert.True(t, def.IsAccepting("Unlocked"))
	assert.False(t, def.IsAccepting("Locked"))
}

func TestNew_DuplicateElementsCollapse(t *testing.T) {
	def, err := domain.New(
		[]string{"A", "B", "A"},
		[]string{"x", "x"},
		map[tkey]string{{State: "A", Symbol: "x"}: "B"},
		"A",
		[]string{"B", "B"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, def.States())
	assert.Equal(t, []string{"x"}, def.Alphabet())
	assert.Equal(t, []string{"B"}, def.Final())
}

func TestNew_EmptyFinalAndPartialTable(t *testing.T) {
	def, err := domain.New(
		[]string{"A", "B"},
		[]string{"x"},
		map[tkey]string{{State: "A", Symbol: "x"}: "B"},
		"A",
		nil,
	)
	require.NoError(t, err)
	assert.Empty(t, def.Final())
	_, ok := def.Lookup("B", "x")
	assert.False(t, ok)
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		states   []string
		alphabet []string
		table    map[tkey]string
		initial  string
		final    []string
		kind     error
		check    func(t *testing.T, err error)
	}{
		{
			name:     "empty states",
			states:   nil,
			alphabet: []string{"x"},
			initial:  "A",
			kind:     domain.ErrEmptyStates,
		},
		{
			name:     "empty alphabet",
			states:   []string{"A"},
			alphabet: []string{},
			initial:  "A",
			kind:     domain.ErrEmptyAlphabet,
		},
		{
			name:     "unknown initial",
			states:   []string{"A", "B"},
			alphabet: []string{"x"},
			initial:  "C",
			kind:     domain.ErrInvalidInitialState,
			check: func(t *testing.T, err error) {
				var target *domain.InvalidInitialStateError[string]
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "C", target.State)
			},
		},
		{
			name:     "unknown finals reported together",
			states:   []string{"A", "B"},
			alphabet: []string{"x"},
			initial:  "A",
			final:    []string{"Z", "B", "Y"},
			kind:     domain.ErrInvalidFinalStates,
			check: func(t *testing.T, err error) {
				var target *domain.InvalidFinalStatesError[string]
				require.True(t, errors.As(err, &target))
				assert.Equal(t, []string{"Z", "Y"}, target.States)
			},
		},
		{
			name:     "transition from unknown state",
			states:   []string{"A", "B"},
			alphabet: []string{"x"},
			table:    map[tkey]string{{State: "Q", Symbol: "x"}: "A"},
			initial:  "A",
			kind:     domain.ErrInvalidTransitionKey,
			check: func(t *testing.T, err error) {
				var target *domain.InvalidTransitionKeyError[string, string]
				require.True(t, errors.As(err, &target))
				assert.Equal(t, tkey{State: "Q", Symbol: "x"}, target.Key)
				assert.True(t, target.UnknownState)
				assert.False(t, target.UnknownSymbol)
			},
		},
		{
			name:     "transition on unknown symbol",
			states:   []string{"A", "B"},
			alphabet: []string{"x"},
			table:    map[tkey]string{{State: "A", Symbol: "y"}: "B"},
			initial:  "A",
			kind:     domain.ErrInvalidTransitionKey,
			check: func(t *testing.T, err error) {
				var target *domain.InvalidTransitionKeyError[string, string]
				require.True(t, errors.As(err, &target))
				assert.False(t, target.UnknownState)
				assert.True(t, target.UnknownSymbol)
			},
		},
		{
			name:     "transition to unknown state",
			states:   []string{"A", "B"},
			alphabet: []string{"x"},
			table:    map[tkey]string{{State: "A", Symbol: "x"}: "C"},
			initial:  "A",
			kind:     domain.ErrInvalidTransitionTarget,
			check: func(t *testing.T, err error) {
				var target *domain.InvalidTransitionTargetError[string, string]
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "C", target.Target)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := domain.New(tt.states, tt.alphabet, tt.table, tt.initial, tt.final)
			require.Error(t, err)
			assert.Nil(t, def)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, domain.ErrConstruction)
			assert.NotErrorIs(t, err, domain.ErrExecution)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestNew_RuleOrder(t *testing.T) {
	t.Run("empty states wins over empty alphabet", func(t *testing.T) {
		_, err := domain.New[string, string](nil, nil, nil, "A", []string{"Z"})
		assert.ErrorIs(t, err, domain.ErrEmptyStates)
	})

	t.Run("initial before final", func(t *testing.T) {
		_, err := domain.New([]string{"A"}, []string{"x"}, nil, "B", []string{"Z"})
		assert.ErrorIs(t, err, domain.ErrInvalidInitialState)
	})

	t.Run("final before transitions", func(t *testing.T) {
		_, err := domain.New(
			[]string{"A"},
			[]string{"x"},
			map[tkey]string{{State: "A", Symbol: "y"}: "B"},
			"A",
			[]string{"Z"},
		)
		assert.ErrorIs(t, err, domain.ErrInvalidFinalStates)
	})

	t.Run("key before target", func(t *testing.T) {
		_, err := domain.New(
			[]string{"A"},
			[]string{"x"},
			map[tkey]string{
				{State: "A", Symbol: "x"}: "Nowhere",
				{State: "B", Symbol: "x"}: "A",
			},
			"A",
			nil,
		)
		assert.ErrorIs(t, err, domain.ErrInvalidTransitionKey)
	})
}

func TestNew_DeterministicOffender(t *testing.T) {
	table := map[tkey]string{
		{State: "A", Symbol: "x"}: "Q3",
		{State: "A", Symbol: "y"}: "Q1",
		{State: "B", Symbol: "x"}: "Q2",
	}
	for i := 0; i < 20; i++ {
		_, err := domain.New([]string{"A", "B"}, []string{"x", "y"}, table, "A", nil)
		var target *domain.InvalidTransitionTargetError[string, string]
		require.True(t, errors.As(err, &target))
		assert.Equal(t, tkey{State: "A", Symbol: "x"}, target.Key)
	}
}

func TestDeclare_DuplicateTransition(t *testing.T) {
	_, err := domain.Declare(domain.Declaration[string, string]{
		States:   []string{"A", "B"},
		Alphabet: []string{"x"},
		Transitions: []domain.Transition[string, string]{
			{From: "A", On: "x", To: "A"},
			{From: "A", On: "x", To: "B"},
		},
		Initial: "A",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTransition)

	var target *domain.DuplicateTransitionError[string, string]
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "A", target.First)
	assert.Equal(t, "B", target.Second)
}

func TestDeclare_Outputs(t *testing.T) {
	base := domain.Declaration[string, string]{
		States:      []string{"A", "B"},
		Alphabet:    []string{"x"},
		Transitions: []domain.Transition[string, string]{{From: "A", On: "x", To: "B"}},
		Initial:     "A",
	}

	t.Run("valid", func(t *testing.T) {
		decl := base
		decl.StateOutputs = map[string]any{"A": 0, "B": 1}
		decl.TransitionOutputs = map[tkey]any{{State: "A", Symbol: "x"}: "go"}
		def, err := domain.Declare(decl)
		require.NoError(t, err)
		assert.True(t, def.HasStateOutputs())
		assert.True(t, def.HasTransitionOutputs())
		out, ok := def.StateOutput("B")
		assert.True(t, ok)
		assert.Equal(t, 1, out)
		out, ok = def.TransitionOutput("A", "x")
		assert.True(t, ok)
		assert.Equal(t, "go", out)
	})

	t.Run("unknown state", func(t *testing.T) {
		decl := base
		decl.StateOutputs = map[string]any{"C": 0}
		_, err := domain.Declare(decl)
		assert.ErrorIs(t, err, domain.ErrInvalidOutput)
		var target *domain.InvalidOutputError[string, string]
		require.True(t, errors.As(err, &target))
		assert.False(t, target.Transition)
		assert.Equal(t, "C", target.Key.State)
	})

	t.Run("undefined transition", func(t *testing.T) {
		decl := base
		decl.TransitionOutputs = map[tkey]any{{State: "B", Symbol: "x"}: "stop"}
		_, err := domain.Declare(decl)
		var target *domain.InvalidOutputError[string, string]
		require.True(t, errors.As(err, &target))
		assert.True(t, target.Transition)
	})
}

func TestDefinition_AccessorsReturnCopies(t *testing.T) {
	def := turnstile(t)

	states := def.States()
	states[0] = "Broken"
	alphabet := def.Alphabet()
	alphabet[0] = "Kick"
	final := def.Final()
	final[0] = "Locked"
	transitions := def.Transitions()
	transitions[0].To = "Broken"
	out := def.TransitionsFor("Locked")
	out["Coin"] = "Broken"

	assert.Equal(t, []string{"Locked", "Unlocked"}, def.States())
	assert.Equal(t, []string{"Coin", "Push"}, def.Alphabet())
	assert.True(t, def.IsAccepting("Unlocked"))
	assert.False(t, def.IsAccepting("Locked"))
	next, _ := def.Lookup("Locked", "Coin")
	assert.Equal(t, "Unlocked", next)
	assert.Equal(t, map[string]string{"Coin": "Unlocked", "Push": "Locked"}, def.TransitionsFor("Locked"))
}

func TestNew_InputContainersAreCopied(t *testing.T) {
	states := []string{"A", "B"}
	table := map[tkey]string{{State: "A", Symbol: "x"}: "B"}
	final := []string{"B"}

	def, err := domain.New(states, []string{"x"}, table, "A", final)
	require.NoError(t, err)

	states[1] = "Z"
	table[tkey{State: "A", Symbol: "x"}] = "A"
	final[0] = "A"

	assert.Equal(t, []string{"A", "B"}, def.States())
	next, _ := def.Lookup("A", "x")
	assert.Equal(t, "B", next)
	assert.True(t, def.IsAccepting("B"))
}

func TestDefinition_TransitionsForUnknownState(t *testing.T) {
	def := turnstile(t)
	out := def.TransitionsFor("Nowhere")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDefinition_WithTransition(t *testing.T) {
	def := turnstile(t)

	changed, err := def.WithTransition("Unlocked", "Coin", "Locked")
	require.NoError(t, err)

	next, _ := changed.Lookup("Unlocked", "Coin")
	assert.Equal(t, "Locked", next)
	next, _ = def.Lookup("Unlocked", "Coin")
	assert.Equal(t, "Unlocked", next, "receiver must not change")

	_, err = def.WithTransition("Locked", "Kick", "Unlocked")
	assert.ErrorIs(t, err, domain.ErrInvalidTransitionKey)
}

func TestDefinition_WithoutTransition(t *testing.T) {
	def := turnstile(t)

	partial, err := def.WithoutTransition("Locked", "Push")
	require.NoError(t, err)
	_, ok := partial.Lookup("Locked", "Push")
	assert.False(t, ok)
	_, ok = def.Lookup("Locked", "Push")
	assert.True(t, ok)
	assert.Len(t, partial.Transitions(), 3)
	assert.Len(t, def.Transitions(), 4)
}

func TestDefinition_WithFinalAndName(t *testing.T) {
	def := turnstile(t)

	both, err := def.WithFinal("Locked", "Unlocked")
	require.NoError(t, err)
	assert.True(t, both.IsAccepting("Locked"))
	assert.False(t, def.IsAccepting("Locked"))

	_, err = def.WithFinal("Open")
	assert.ErrorIs(t, err, domain.ErrInvalidFinalStates)

	named := def.WithName("turnstile")
	assert.Equal(t, "turnstile", named.Name())
	assert.Equal(t, "", def.Name())
}

func TestDefinition_NonStringLabels(t *testing.T) {
	type parity int
	const (
		even parity = iota
		odd
	)
	def, err := domain.New(
		[]parity{even, odd},
		[]rune{'0', '1'},
		map[domain.Key[parity, rune]]parity{
			{State: even, Symbol: '0'}: even,
			{State: even, Symbol: '1'}: odd,
			{State: odd, Symbol: '0'}:  odd,
			{State: odd, Symbol: '1'}:  even,
		},
		even,
		[]parity{even},
	)
	require.NoError(t, err)
	next, ok := def.Lookup(odd, '1')
	assert.True(t, ok)
	assert.Equal(t, even, next)
}

package dto_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/dfsm/internal/dto"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_Execution(t *testing.T) {
	cause := &domain.ExecutionError[string, string]{
		Index:  1,
		State:  "Unlocked",
		Symbol: "Kick",
		Trace:  []string{"Locked", "Unlocked"},
		Err:    &domain.SymbolNotInAlphabetError[string, string]{State: "Unlocked", Symbol: "Kick"},
	}

	e := dto.NewError(fmt.Errorf("machine turnstile: %w", cause))

	require.NotNil(t, e.Index)
	assert.Equal(t, 1, *e.Index)
	assert.Equal(t, "SymbolNotInAlphabetError", e.Kind)
	assert.Equal(t, "Unlocked", e.State)
	assert.Equal(t, "Kick", e.Symbol)
	assert.Equal(t, []string{"Locked", "Unlocked"}, e.Trace)
	assert.Contains(t, e.Message, "input[1]")
}

func TestNewError_Plain(t *testing.T) {
	e := dto.NewError(errors.New("boom"))
	assert.Equal(t, "boom", e.Message)
	assert.Empty(t, e.Kind)
	assert.Nil(t, e.Index)

	_, err := domain.New([]string{"A"}, []string{"x"}, nil, "B", nil)
	e = dto.NewError(err)
	assert.Equal(t, "InvalidInitialStateError", e.Kind)
	assert.Nil(t, e.Index)
}

func TestNewRunResponse(t *testing.T) {
	res := &domain.Result[string]{Trace: []string{"A", "B"}, Terminal: "B", Accepted: true}
	got := dto.NewRunResponse("m", res)
	assert.Equal(t, dto.RunResponse{Machine: "m", Trace: []string{"A", "B"}, Terminal: "B", Accepted: true}, got)
}

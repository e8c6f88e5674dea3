package runtime

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/pkg/domain"
)

// ErrNilDefinition is returned when a run is requested without a machine.
var ErrNilDefinition = errors.New("cannot execute nil machine definition")

// Engine replays symbol sequences through a machine definition.
// It holds no per-run state and never keeps a reference to a definition,
// so one Engine can serve concurrent runs over shared definitions.
type Engine[S, A comparable] struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// WithLogger sets the structured logger used for debug traces of each run.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithHooks registers lifecycle observers.
func WithHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(c *engineConfig) {
		c.hooks = hooks
	}
}

// NewEngine creates a new engine.
func NewEngine[S, A comparable](opts ...EngineOption) *Engine[S, A] {
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	return &Engine[S, A]{
		logger: cfg.logger,
		hooks:  cfg.hooks,
	}
}

// Step computes the state reached from current on symbol.
// An unknown symbol is reported before the transition lookup, since it can
// never have a transition.
func (e *Engine[S, A]) Step(def *domain.Definition[S, A], current S, symbol A) (S, error) {
	var zero S
	if def == nil {
		return zero, ErrNilDefinition
	}
	if !def.HasSymbol(symbol) {
		return zero, &domain.SymbolNotInAlphabetError[S, A]{State: current, Symbol: symbol}
	}
	next, ok := def.Lookup(current, symbol)
	if !ok {
		return zero, &domain.TransitionUndefinedError[S, A]{State: current, Symbol: symbol}
	}
	return next, nil
}

// Run folds Step over input starting from the initial state.
// It stops at the first failing step and returns a *domain.ExecutionError
// carrying the index of the offending symbol and the trace so far.
func (e *Engine[S, A]) Run(def *domain.Definition[S, A], input []A) (*domain.Result[S], error) {
	return e.run(def, input, false)
}

// Trace is Run with output collection: Result.Outputs holds the Mealy output of
// every transition taken (or, for machines without transition outputs, the
// Moore output of the state being left), followed by the Moore output of the
// terminal state.
func (e *Engine[S, A]) Trace(def *domain.Definition[S, A], input []A) (*domain.Result[S], error) {
	return e.run(def, input, true)
}

// Accepts reports whether the machine ends in an accepting state after input.
func (e *Engine[S, A]) Accepts(def *domain.Definition[S, A], input []A) (bool, error) {
	res, err := e.run(def, input, false)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

func (e *Engine[S, A]) run(def *domain.Definition[S, A], input []A, collect bool) (*domain.Result[S], error) {
	if def == nil {
		return nil, ErrNilDefinition
	}

	start := time.Now()
	e.emitRunStart(def, len(input))

	current := def.Initial()
	trace := make([]S, 1, len(input)+1)
	trace[0] = current

	var outputs []any
	if collect {
		outputs = make([]any, 0, len(input)+1)
	}

	for i, symbol := range input {
		next, err := e.Step(def, current, symbol)
		if err != nil {
			execErr := &domain.ExecutionError[S, A]{
				Index:  i,
				State:  current,
				Symbol: symbol,
				Trace:  trace,
				Err:    err,
			}
			e.logger.Debug("run failed",
				"machine", def.Name(),
				"index", i,
				"state", fmt.Sprint(current),
				"symbol", fmt.Sprint(symbol),
				"err", err)
			e.emitRunEnd(def, len(input), i, nil, start, execErr)
			return nil, execErr
		}
		if collect {
			outputs = append(outputs, stepOutput(def, current, symbol))
		}
		e.emitStep(def, i, current, symbol, next)
		trace = append(trace, next)
		current = next
	}

	res := &domain.Result[S]{
		Trace:    trace,
		Terminal: current,
		Accepted: def.IsAccepting(current),
	}
	if collect {
		final, _ := def.StateOutput(current)
		res.Outputs = append(outputs, final)
	}

	e.logger.Debug("run finished",
		"machine", def.Name(),
		"steps", len(input),
		"terminal", fmt.Sprint(current),
		"accepted", res.Accepted)
	e.emitRunEnd(def, len(input), len(input), res, start, nil)
	return res, nil
}

// stepOutput applies the output precedence: transition outputs win when the
// machine declares any, otherwise the state output of the state being left.
func stepOutput[S, A comparable](def *domain.Definition[S, A], state S, symbol A) any {
	if def.HasTransitionOutputs() {
		out, _ := def.TransitionOutput(state, symbol)
		return out
	}
	out, _ := def.StateOutput(state)
	return out
}

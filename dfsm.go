package dfsm

import (
	"log/slog"

	"github.com/aretw0/dfsm/internal/runtime"
	"github.com/aretw0/dfsm/pkg/domain"
)

// Key is a (state, symbol) transition key.
type Key[S, A comparable] = domain.Key[S, A]

// Definition is a validated, immutable machine definition.
type Definition[S, A comparable] = domain.Definition[S, A]

// Result is the outcome of a successful run.
type Result[S comparable] = domain.Result[S]

// Engine is the high-level entry point for the dfsm library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine[S, A comparable] struct {
	runtime *runtime.Engine[S, A]
}

// Option defines a functional option for configuring the Engine.
type Option func(*config)

type config struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// New creates an Engine for machines labelled with S states and A symbols.
func New[S, A comparable](opts ...Option) *Engine[S, A] {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var rtOpts []runtime.EngineOption
	if cfg.logger != nil {
		rtOpts = append(rtOpts, runtime.WithLogger(cfg.logger))
	}
	rtOpts = append(rtOpts, runtime.WithHooks(cfg.hooks))

	return &Engine[S, A]{
		runtime: runtime.NewEngine[S, A](rtOpts...),
	}
}

// Step returns the state reached from current on symbol.
func (e *Engine[S, A]) Step(def *Definition[S, A], current S, symbol A) (S, error) {
	return e.runtime.Step(def, current, symbol)
}

// Run replays input from the initial state and returns the trace, the
// terminal state and the acceptance verdict.
func (e *Engine[S, A]) Run(def *Definition[S, A], input []A) (*Result[S], error) {
	return e.runtime.Run(def, input)
}

// Trace is Run with Moore/Mealy output collection.
func (e *Engine[S, A]) Trace(def *Definition[S, A], input []A) (*Result[S], error) {
	return e.runtime.Trace(def, input)
}

// Accepts reports whether input drives the machine into an accepting state.
func (e *Engine[S, A]) Accepts(def *Definition[S, A], input []A) (bool, error) {
	return e.runtime.Accepts(def, input)
}

// Define validates the five defining fields and returns the machine.
func Define[S, A comparable](states []S, alphabet []A, transitions map[Key[S, A]]S, initial S, final []S) (*Definition[S, A], error) {
	return domain.New(states, alphabet, transitions, initial, final)
}

// Run executes def with a default engine.
func Run[S, A comparable](def *Definition[S, A], input []A) (*Result[S], error) {
	return New[S, A]().Run(def, input)
}

// Accepts runs def with a default engine and returns the verdict.
func Accepts[S, A comparable](def *Definition[S, A], input []A) (bool, error) {
	return New[S, A]().Accepts(def, input)
}

/*
Package domain contains the core model of a deterministic finite state machine.

It defines the machine definition and the validation pipeline that guards its
construction, together with the two error families reported by the library:
construction errors (the definition is malformed) and execution errors (a run
diverged from the defined machine). This package is kept pure and free of I/O,
following Hexagonal Architecture principles.

# Key Entities

  - Definition: the validated, immutable machine (states, alphabet, transitions,
    initial state, accepting states and optional Moore/Mealy outputs).
  - Declaration: the plain containers a Definition is built from.
  - Key / Transition: a (state, symbol) pair and a declared edge.
  - Result: the outcome of a successful run (trace, terminal state, verdict).
  - LifecycleHooks: observer callbacks fired by the execution engine.
*/
package domain

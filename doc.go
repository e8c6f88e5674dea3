/*
Package dfsm is a deterministic finite state machine (DFSM) evaluator.

A machine is declared once from its states, input alphabet, a (possibly
partial) transition mapping, an initial state and a set of accepting states.
The declaration is validated eagerly by an ordered pipeline; a machine that
fails validation never exists. A validated machine is immutable and can be
run any number of times, concurrently, against complete symbol sequences.

# Key Features

  - Deterministic Execution: the same machine and input always yield the same trace.
  - Generic Labels: states and symbols are any comparable type.
  - Exact Failures: every construction error names the offending element, and every
    execution error carries the index of the offending symbol and the trace so far.
  - Moore/Mealy Outputs: optional outputs per state or per transition, collected by Trace.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/dfsm"
	)

	func main() {
		turnstile, err := dfsm.Define(
			[]string{"Locked", "Unlocked"},
			[]string{"Coin", "Push"},
			map[dfsm.Key[string, string]]string{
				{State: "Locked", Symbol: "Push"}:   "Locked",
				{State: "Locked", Symbol: "Coin"}:   "Unlocked",
				{State: "Unlocked", Symbol: "Push"}: "Locked",
				{State: "Unlocked", Symbol: "Coin"}: "Unlocked",
			},
			"Locked",
			[]string{"Unlocked"},
		)
		if err != nil {
			log.Fatal(err)
		}

		res, err := dfsm.Run(turnstile, []string{"Push", "Coin"})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Terminal, res.Accepted, res.Trace)
	}
*/
package dfsm

package dfsm_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/dfsm"
	"github.com/aretw0/dfsm/pkg/domain"
)

func newTurnstile() *dfsm.Definition[string, string] {
	def, err := dfsm.Define(
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
	return def
}

// ExampleRun replays a short input through a coin-operated turnstile.
func ExampleRun() {
	turnstile := newTurnstile()

	res, err := dfsm.Run(turnstile, []string{"Push", "Coin"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Trace:", res.Trace)
	fmt.Println("Terminal:", res.Terminal)
	fmt.Println("Accepted:", res.Accepted)
	// Output:
	// Trace: [Locked Locked Unlocked]
	// Terminal: Unlocked
	// Accepted: true
}

// ExampleRun_failure shows the position information carried by an execution error.
func ExampleRun_failure() {
	turnstile := newTurnstile()

	_, err := dfsm.Run(turnstile, []string{"Coin", "Kick"})

	var execErr *domain.ExecutionError[string, string]
	if errors.As(err, &execErr) {
		fmt.Println(domain.Kind(err), "at", execErr.Index)
		fmt.Println("Trace so far:", execErr.Trace)
	}
	// Output:
	// SymbolNotInAlphabetError at 1
	// Trace so far: [Locked Unlocked]
}

// ExampleDefine_invalid shows that an invalid machine is never built.
func ExampleDefine_invalid() {
	_, err := dfsm.Define(
		[]string{"A", "B"},
		[]string{"x"},
		map[dfsm.Key[string, string]]string{{State: "A", Symbol: "x"}: "B"},
		"C",
		nil,
	)
	fmt.Println(err)
	fmt.Println(errors.Is(err, domain.ErrConstruction))
	// Output:
	// initial state C is not in the set of states
	// true
}

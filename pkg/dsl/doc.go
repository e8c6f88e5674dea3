/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing machines.

It allows developers to define machines using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for
generated machines, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/dfsm"
		"github.com/aretw0/dfsm/pkg/dsl"
	)

	func main() {
		b := dsl.New[string, string]("turnstile")

		b.Add("Locked").
			Initial().
			On("Coin", "Unlocked").
			On("Push", "Locked")

		b.Add("Unlocked").
			Accepting().
			On("Coin", "Unlocked").
			On("Push", "Locked")

		turnstile, err := b.Build()
		if err != nil {
			panic(err)
		}

		res, _ := dfsm.Run(turnstile, []string{"Coin"})
		_ = res.Accepted // true
	}
*/
package dsl

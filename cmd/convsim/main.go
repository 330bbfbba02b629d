// Command convsim drives a small ConstStep well simulation end to end,
// demonstrating the push -> advance -> convolve pipeline while emitting
// structured logs and prometheus metrics for each step.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

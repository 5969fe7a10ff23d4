// SPDX-License-Identifier: MIT

// Command kgate runs Monte-Carlo comparisons of gate strategies for the
// kernel-weighted gating combiner.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kgate:", err)
		os.Exit(1)
	}
}

// Command gwgen generates gravitational waveforms from numerical-relativity
// mode datasets or a frequency-domain generator.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

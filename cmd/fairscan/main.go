// SPDX-License-Identifier: Apache-2.0

// fairscan evaluates a data product's metadata record against the RDA FAIR
// compliance indicators.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SPDX-License-Identifier: MIT

// Command totbuild builds tensors of tensors and manipulates sparse maps
// from YAML documents.
//
//	totbuild build -f input.yaml [-o out.json] [--workers N] [--metrics]
//	totbuild compose -f maps.yaml
//	totbuild inverse -f maps.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "totbuild:", err)
		os.Exit(1)
	}
}

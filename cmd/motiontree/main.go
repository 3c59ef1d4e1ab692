// Command motiontree computes a Motion Tree decomposition between two
// conformations of a protein chain and writes the result to an output
// directory and a local SQLite cache.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := application().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

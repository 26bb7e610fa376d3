// Command cli is the notary-pricing command line interface.
package main

import (
	"os"

	"notary-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// main is the entry point for the gacscore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/gacscore/gacscore/cmd"
	"github.com/gacscore/gacscore/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

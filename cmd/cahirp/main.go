// Command cahirp applies recipe(.cahirp) files from installed mods onto a
// modded game's scripts.
package main

import (
	"fmt"
	"os"

	"github.com/aelto/cahirp/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cahirp:", err)
		os.Exit(1)
	}
}

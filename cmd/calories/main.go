package main

import (
	"os"

	"github.com/idilsaglam/calories/internal/cli"
)

func main() {
	// Everything after the program name goes to the CLI runner; with no
	// arguments it opens the interactive editor.
	os.Exit(cli.Run(os.Args[1:]))
}

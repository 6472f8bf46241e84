package main

import (
	"os"
)

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	// Subcommands close the logger themselves; this covers a failing
	// persistent pre-run.
	_ = a.closeLogger()
	if err != nil {
		os.Exit(1)
	}
}

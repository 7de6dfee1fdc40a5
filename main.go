// main is the entry point for the archstat CLI.
package main

import (
	"os"

	"github.com/archstat/archstat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

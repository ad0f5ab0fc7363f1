package main

import (
	"os"
)

func main() {
	err := rootCmd.Execute()
	// PersistentPostRun is skipped when a command fails.
	stopProfile()
	if err != nil {
		os.Exit(1)
	}
}

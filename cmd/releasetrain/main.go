package main

import (
	"os"

	"releasetrain/cmd/releasetrain/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

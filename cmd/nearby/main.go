package main

import (
	"os"

	"nearby/cmd/nearby/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

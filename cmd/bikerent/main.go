package main

import (
	"os"

	"bikerent/cmd/bikerent/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

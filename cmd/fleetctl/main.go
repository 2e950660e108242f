package main

import (
	"os"

	"github.com/ukydev/tourfleet/cmd/fleetctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

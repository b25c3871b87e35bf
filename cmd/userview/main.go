package main

import (
	"os"

	"github.com/zoobzio/projector/cmd/userview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

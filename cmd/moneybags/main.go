package main

import (
	"os"

	"github.com/moneybags-dev/moneybags/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/mwidmer/mdp/cmd/mdp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

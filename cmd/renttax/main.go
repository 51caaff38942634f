package main

import (
	"os"

	"github.com/nurpe/renttax/cmd/renttax/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

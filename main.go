package main

import (
	"os"

	"github.com/lernkraft/lernkraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

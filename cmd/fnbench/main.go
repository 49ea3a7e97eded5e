package main

import (
	"os"

	"github.com/fnbench/fnbench/cmd/fnbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

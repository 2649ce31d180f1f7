package main

import (
	"os"

	"github.com/chrissnell/youngslab/cmd/youngslab-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/Malinga14/board-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/jienckebd/devloop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/py3kit/py3kit/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/xy-planning-network/enums/internal/cli"
)

func main() {
	if err := cli.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

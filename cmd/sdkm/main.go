package main

import (
	"os"

	"github.com/sdkmhq/sdkm/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

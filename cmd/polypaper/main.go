package main

import (
	"os"

	"github.com/alejandrodnm/polypaper/cmd/polypaper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

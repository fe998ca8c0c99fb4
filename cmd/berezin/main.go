package main

import (
	"os"

	"github.com/101Room/berezin-dicts/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/zambezi-learn/zambezi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"money-calculator/cmd/moneycalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

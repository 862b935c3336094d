package main

import (
	"os"

	"github.com/leifuss/hestiavizredux/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/hadocs/docs-addon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

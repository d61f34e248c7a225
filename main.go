package main

import (
	"os"

	"github.com/adalundhe/repoprofile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

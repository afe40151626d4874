package main

import (
	"os"

	"github.com/xwill007/cursor/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/Arnav-W-Coder/LevelUp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}

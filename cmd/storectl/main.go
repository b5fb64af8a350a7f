package main

import (
	"fmt"
	"os"

	"costumes_back_end/internal/cli"
	"costumes_back_end/internal/config"
)

func main() {
	config.Load()
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

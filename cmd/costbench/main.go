package main

import (
	"fmt"
	"os"

	"dispatch-cost/cli"
)

func main() {
	cmd := cli.NewCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

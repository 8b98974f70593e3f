package main

import (
	"os"

	"github.com/compozy/products/cli"
)

func main() {
	cmd := cli.RootCmd()
	err := cmd.Execute()
	_ = cli.CloseLogOutput()
	if err != nil {
		// Errors are already printed in the active output mode
		os.Exit(1)
	}
}

// FILE: eventweaver/src/cmd/weave/main.go
package main

import (
	"fmt"
	"os"

	"eventweaver/src/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

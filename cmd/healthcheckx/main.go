package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonwraymond/healthcheckx/internal/cli"
)

func main() {
	ctx := context.Background()

	root := cli.NewRootCmd(cli.Options{})
	err := root.ExecuteContext(ctx)
	if err != nil && !cli.IsSilent(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

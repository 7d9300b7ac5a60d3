// Package cli implements the healthcheckx command line.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/jonwraymond/healthcheckx/probe/all"
)

// Options holds CLI-level configuration.
type Options struct {
	// Stdout receives reports. Default: os.Stdout
	Stdout io.Writer
	// Stderr receives logs and diagnostics. Default: os.Stderr
	Stderr io.Writer
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	root := &cobra.Command{
		Use:   "healthcheckx",
		Short: "Check the health of service dependencies",
		Long: "healthcheckx runs connectivity probes against databases, caches, brokers\n" +
			"and devices described in a YAML file and reports an overall status.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newProbesCommand())
	root.AddCommand(newVersionCommand())
	return root
}

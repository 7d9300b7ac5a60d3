package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/healthcheckx/catalog"
)

func newProbesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "List the probe types available in configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range catalog.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
			return nil
		},
	}
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var namesFile string

func init() {
	namesCmd.Flags().StringVarP(&namesFile, "file", "f", "", "list names from this env file only")
}

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Print variable names, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := workflows.Names(context.Background(), workflows.NamesOptions{Scope: scope(namesFile)})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

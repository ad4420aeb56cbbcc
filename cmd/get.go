package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var getFile string

func init() {
	getCmd.Flags().StringVarP(&getFile, "file", "f", "", "read from this env file only")
}

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print the decrypted value of a variable",
	Long: `Prints one variable's value, decrypted. By default the value comes from the
layered environment; --file reads a single file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Get(context.Background(), workflows.GetOptions{
			Scope: scope(getFile),
			Name:  args[0],
		})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}
		Logger.Infof("%s loaded from %s", result.Name, result.Source)
		fmt.Fprintln(cmd.OutOrStdout(), result.Value)
		return nil
	},
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/loader"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var dumpFile string

func init() {
	dumpCmd.Flags().StringVarP(&dumpFile, "file", "f", "", "dump this env file only")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the decrypted environment as a .env file",
	Long: `Resolves the layered environment, decrypts every value and prints
NAME=value lines in merged order. Variables that hold or name age keys are
omitted.

Examples:
  dotenvage dump > .env.resolved
  DOTENVAGE_ENV=production dotenvage dump`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Dump(context.Background(), workflows.DumpOptions{Scope: scope(dumpFile)})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}
		Logger.Infof("Dumping %d variable(s) from %d file(s)", result.Vars.Len(), len(result.Files))
		return loader.DumpTo(cmd.OutOrStdout(), result.Vars)
	},
}

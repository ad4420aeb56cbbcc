package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Print the public key of the discovered identity",
	Long: `Prints the age1... recipient of the identity key discovery selects, so it
can be shared with people who need to encrypt values for you.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.PublicKey(context.Background(), workflows.PublicKeyOptions{Dir: workDir})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}
		Logger.Infof("Identity loaded from %s", result.Origin)
		fmt.Fprintln(cmd.OutOrStdout(), result.PublicKey)
		return nil
	},
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/ui"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var (
	keygenOutput string
	keygenName   string
	keygenForce  bool
)

func init() {
	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", "", "write the key to this path")
	keygenCmd.Flags().StringVar(&keygenName, "name", "", "logical key name, selected later with AGE_KEY_NAME")
	keygenCmd.Flags().BoolVar(&keygenForce, "force", false, "overwrite an existing key file")
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new age identity",
	Long: `Generates a new age X25519 identity and saves it with mode 0600.

Without flags the key goes to the default location used by key discovery.
With --name the key is stored as <state dir>/<name>.key; with --name and
--output the mapping is recorded in config.toml.

Examples:
  dotenvage keygen
  dotenvage keygen --name myapp/production
  dotenvage keygen -o ./ci.key --name ci`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		spinner, cleanup := startSpinner("Generating age identity...", cmd.OutOrStdout())
		defer cleanup()

		result, err := workflows.Keygen(context.Background(), workflows.KeygenOptions{
			Output: keygenOutput,
			Name:   keygenName,
			Force:  keygenForce,
		})
		if err != nil {
			Logger.Errorf("Keygen failed: %v", err)
			return fail(cmd.ErrOrStderr(), err)
		}
		Logger.Infof("Key written to %s", result.Path)

		finalMessage := ui.Success.Sprint("✓") + " Generated a new age identity\n" +
			"    Key file:   " + ui.Path.Sprint(result.Path) + "\n" +
			"    Public key: " + ui.Info.Sprint(result.PublicKey)
		if result.Registered {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Registered " + ui.Name.Sprint(result.Name) +
				" in config.toml; select it with " + ui.Code.Sprintf("AGE_KEY_NAME=%s", result.Name)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

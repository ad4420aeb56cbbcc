package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/ui"
	"github.com/PolarWolf314/dotenvage/internal/utils"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var (
	encryptKeys   []string
	encryptAuto   bool
	encryptDryRun bool
)

func init() {
	encryptCmd.Flags().StringSliceVar(&encryptKeys, "keys", nil, "variables to encrypt (comma-separated or repeated)")
	encryptCmd.Flags().BoolVar(&encryptAuto, "auto", false, "also encrypt variables with sensitive-looking names (default when --keys is not given)")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "show what would be encrypted without changing files")
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [files...]",
	Short: "Encrypt sensitive values in env files in place",
	Long: `Encrypts plaintext values in env files, leaving comments, ordering and
already encrypted values untouched.

Without arguments the default file (.env.local, or [defaults] file in
config.toml) is encrypted. Arguments may be files, directories or globs.

Examples:
  dotenvage encrypt
  dotenvage encrypt .env.production
  dotenvage encrypt "**/.env.*" --keys STRIPE_KEY,DATABASE_URL --auto`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner("Encrypting environment files...", cmd.OutOrStdout())
		defer cleanup()

		result, err := workflows.Encrypt(context.Background(), workflows.EncryptOptions{
			Dir:          workDir,
			FilePatterns: args,
			Keys:         utils.SplitList(encryptKeys),
			Auto:         encryptAuto,
			DryRun:       encryptDryRun,
			Logger:       Logger,
		})
		if err != nil {
			Logger.Errorf("Encrypt failed: %v", err)
			return fail(cmd.ErrOrStderr(), err)
		}

		if result.Count() == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " Nothing to encrypt; all matching values are already encrypted"
			return nil
		}

		verb := "Encrypted"
		if result.DryRun {
			verb = ui.Warning.Sprint("[dry-run]") + " Would encrypt"
		}

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" %s %d value(s)", verb, result.Count()) + "\n"
		for _, f := range result.Files {
			if len(f.Variables) == 0 {
				continue
			}
			finalMessage += "    " + ui.Path.Sprint(f.Path) + "\n"
			finalMessage += ui.List(ui.Name, f.Variables)
		}
		finalMessage += ui.Muted.Sprint("recipient " + result.PublicKey)
		spinner.FinalMSG = finalMessage
		return nil
	},
}

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/ui"
	"github.com/PolarWolf314/dotenvage/internal/utils"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var (
	setFile    string
	setPlain   bool
	setEncrypt bool
)

func init() {
	setCmd.Flags().StringVarP(&setFile, "file", "f", "", "env file to write (default .env.local)")
	setCmd.Flags().BoolVar(&setPlain, "plain", false, "store the value unencrypted")
	setCmd.Flags().BoolVar(&setEncrypt, "encrypt", false, "encrypt the value even if the name looks benign")
	setCmd.MarkFlagsMutuallyExclusive("plain", "encrypt")
}

var setCmd = &cobra.Command{
	Use:   "set NAME[=VALUE]",
	Short: "Set a variable, encrypting it when the name is sensitive",
	Long: `Writes one variable to an env file. Values for names such as API_KEY or
DB_PASSWORD are encrypted automatically.

When VALUE is omitted it is read from stdin, or prompted for without echo
when stdin is a terminal.

Examples:
  dotenvage set PORT=3000
  dotenvage set STRIPE_SECRET_KEY            # prompts
  echo -n "$TOKEN" | dotenvage set GITHUB_TOKEN -f .env.production`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, value, hasValue, err := utils.SplitAssignment(args[0])
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}
		if !hasValue {
			value, err = readSetValue(cmd, name)
			if err != nil {
				return fail(cmd.ErrOrStderr(), err)
			}
		}

		Logger.Infof("Starting set command for %s", name)
		spinner, cleanup := startSpinner("Writing "+name+"...", cmd.OutOrStdout())
		defer cleanup()

		result, err := workflows.Set(context.Background(), workflows.SetOptions{
			Dir:     workDir,
			File:    setFile,
			Name:    name,
			Value:   value,
			Plain:   setPlain,
			Encrypt: setEncrypt,
		})
		if err != nil {
			Logger.Errorf("Set failed: %v", err)
			return fail(cmd.ErrOrStderr(), err)
		}

		state := "plaintext"
		if result.Encrypted {
			state = "encrypted"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Set " + ui.Name.Sprint(result.Name) +
			" in " + ui.Path.Sprint(result.Path) + " " + ui.Muted.Sprint(state)
		return nil
	},
}

func readSetValue(cmd *cobra.Command, name string) (string, error) {
	in := cmd.InOrStdin()
	if in != io.Reader(os.Stdin) {
		return utils.ReadValue(in)
	}
	if utils.IsTerminal() {
		return utils.ReadSecret(fmt.Sprintf("Value for %s: ", name))
	}
	data, err := utils.ReadStdin()
	if err != nil {
		return "", err
	}
	return utils.ReadValue(bytes.NewReader(data))
}
